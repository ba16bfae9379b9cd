package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use custody.Address, so address in hex, not base64
type GenesisAccount struct {
	Address custody.Address `json:"address"`
	Coins   []Coin          `json:"coins"`
}

// GenesisAllowance is an approval created at genesis.
type GenesisAllowance struct {
	Owner    custody.Address `json:"owner"`
	Operator custody.Address `json:"operator"`
	Coin
}

// Initializer fulfils the custody.Initializer interface to load data
// from the genesis file
type Initializer struct {
	Ctrl Controller
}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	ctrl := i.Ctrl
	if ctrl == nil {
		ctrl = NewController()
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cash genesis: %s", err)
	}
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis account")
		}
		for _, c := range acct.Coins {
			if err := c.Validate(); err != nil {
				return errors.Wrapf(err, "genesis account %s", acct.Address)
			}
			if err := ctrl.IssueCoins(kv, acct.Address, c.Ticker, c.Amount); err != nil {
				return err
			}
		}
	}

	var allowances []GenesisAllowance
	if err := opts.ReadOptions("allowances", &allowances); err != nil {
		return errors.Wrapf(errors.ErrInput, "allowances genesis: %s", err)
	}
	for _, a := range allowances {
		if err := ctrl.Approve(kv, a.Owner, a.Operator, a.Ticker, a.Amount); err != nil {
			return errors.Wrap(err, "genesis allowance")
		}
	}
	return nil
}
