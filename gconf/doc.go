/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Every extension keeps a single configuration object, stored under the
"_c:<package>" key. Configuration is loaded from the genesis file "conf"
section and validated before it is written.
*/
package gconf
