package cash

import (
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Gateway moves assets held in cash wallets on behalf of an operator
// account. Pulls require an allowance granted by the owner to the
// operator. Pushes are paid from the operator wallet.
type Gateway struct {
	mu       sync.Mutex
	db       custody.KVStore
	ctrl     Controller
	operator custody.Address
}

// NewGateway returns a gateway over the wallets stored in db, acting as
// operator.
func NewGateway(db custody.KVStore, ctrl Controller, operator custody.Address) *Gateway {
	return &Gateway{
		db:       db,
		ctrl:     ctrl,
		operator: operator,
	}
}

// Operator returns the account the gateway acts as.
func (g *Gateway) Operator() custody.Address {
	return g.operator
}

// PullFrom moves amount of asset from the owner to the recipient, spending
// the allowance the owner granted to the operator. Nothing changes on
// failure.
func (g *Gateway) PullFrom(ctx custody.Context, asset string, from, to custody.Address, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.atomic(func(db custody.KVStore) error {
		if err := g.ctrl.SpendAllowance(db, from, g.operator, asset, amount); err != nil {
			return err
		}
		return g.ctrl.MoveCoins(db, from, to, asset, amount)
	})
	if err != nil {
		return errors.Wrapf(err, "pull %d %s from %s", amount, asset, from)
	}
	custody.GetLogger(ctx).Debug("asset pulled", "asset", asset, "from", from, "to", to, "amount", amount)
	return nil
}

// PushTo pays amount of asset from the operator wallet to the recipient.
func (g *Gateway) PushTo(ctx custody.Context, asset string, to custody.Address, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.atomic(func(db custody.KVStore) error {
		return g.ctrl.MoveCoins(db, g.operator, to, asset, amount)
	})
	if err != nil {
		return errors.Wrapf(err, "push %d %s to %s", amount, asset, to)
	}
	custody.GetLogger(ctx).Debug("asset pushed", "asset", asset, "to", to, "amount", amount)
	return nil
}

// BalanceOf returns the amount of asset held by the account.
func (g *Gateway) BalanceOf(ctx custody.Context, asset string, account custody.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctrl.Balance(g.db, account, asset)
}

// atomic runs fn on a cache of the gateway store when the store supports
// it, so that a failed transfer leaves no partial writes.
func (g *Gateway) atomic(fn func(custody.KVStore) error) error {
	cs, ok := g.db.(custody.CacheableKVStore)
	if !ok {
		return fn(g.db)
	}
	cache := cs.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
