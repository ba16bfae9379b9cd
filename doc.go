/*

Package custody defines interfaces used throughout the vault, such as:
storage, addresses, conditions and genesis options.
The state machine itself lives in x/vault. Look into this package to get
a brief overview of the building blocks every extension relies on.

*/

package custody
