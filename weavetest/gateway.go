package weavetest

import (
	"fmt"
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Transfer is a single movement recorded by the Gateway mock. From is nil
// for pushes.
type Transfer struct {
	Asset  string
	From   custody.Address
	To     custody.Address
	Amount uint64
}

// Gateway is an in memory asset gateway for tests.
//
// Pulls require the sender to hold enough funds, that can be granted with
// Fund. Pushes are paid out of thin air. Set Err to make every transfer
// fail, or Hook to run code (ie. call back into the caller) before each
// transfer. A transfer rejected by Hook is not recorded.
type Gateway struct {
	Err  error
	Hook func(ctx custody.Context) error

	mu        sync.Mutex
	balances  map[string]uint64
	transfers []Transfer
}

// Fund adds amount of asset to the account.
func (g *Gateway) Fund(asset string, account custody.Address, amount uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.credit(asset, account, amount)
}

func (g *Gateway) PullFrom(ctx custody.Context, asset string, from, to custody.Address, amount uint64) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := balanceKey(asset, from)
	if g.balances[key] < amount {
		return errors.Wrapf(errors.ErrAmount, "%s holds %d %s", from, g.balances[key], asset)
	}
	g.balances[key] -= amount
	g.credit(asset, to, amount)
	g.transfers = append(g.transfers, Transfer{Asset: asset, From: from, To: to, Amount: amount})
	return nil
}

func (g *Gateway) PushTo(ctx custody.Context, asset string, to custody.Address, amount uint64) error {
	if err := g.before(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.credit(asset, to, amount)
	g.transfers = append(g.transfers, Transfer{Asset: asset, To: to, Amount: amount})
	return nil
}

func (g *Gateway) BalanceOf(ctx custody.Context, asset string, account custody.Address) (uint64, error) {
	if g.Err != nil {
		return 0, g.Err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balances[balanceKey(asset, account)], nil
}

// Transfers returns all successful transfers in order.
func (g *Gateway) Transfers() []Transfer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Transfer(nil), g.transfers...)
}

func (g *Gateway) before(ctx custody.Context) error {
	if g.Hook != nil {
		if err := g.Hook(ctx); err != nil {
			return err
		}
	}
	return g.Err
}

func (g *Gateway) credit(asset string, account custody.Address, amount uint64) {
	if g.balances == nil {
		g.balances = make(map[string]uint64)
	}
	g.balances[balanceKey(asset, account)] += amount
}

func balanceKey(asset string, account custody.Address) string {
	return fmt.Sprintf("%s/%X", asset, []byte(account))
}
