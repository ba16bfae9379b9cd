package vault

import (
	"github.com/iov-one/custody"
)

// IsAuthority returns true if the caller is the configured authority. An
// unset authority or an empty caller matches no one.
func IsAuthority(conf *Configuration, caller custody.Address) bool {
	if conf == nil || len(conf.Authority) == 0 || len(caller) == 0 {
		return false
	}
	return conf.Authority.Equals(caller)
}
