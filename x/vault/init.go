package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// Initializer loads the vault configuration from the genesis file. A
// genesis without a "vault" configuration leaves the vault uninitialized.
type Initializer struct{}

var _ custody.Initializer = (*Initializer)(nil)

// FromGenesis stores conf.vault unless the vault is already configured.
func (*Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	current, err := NewLedger().Config(db)
	if err != nil {
		return err
	}
	if current.initialized() {
		return nil
	}
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, ConfigPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return errors.Wrap(err, "vault genesis")
	}
	return nil
}
