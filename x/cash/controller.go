package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the functionality needed by the asset gateway and the
// genesis initializer. Anything that moves coins goes through it.
type Controller interface {
	Balance(db custody.ReadOnlyKVStore, owner custody.Address, ticker string) (uint64, error)
	MoveCoins(db custody.KVStore, src, dest custody.Address, ticker string, amount uint64) error
	IssueCoins(db custody.KVStore, dest custody.Address, ticker string, amount uint64) error
	Approve(db custody.KVStore, owner, operator custody.Address, ticker string, amount uint64) error
	Allowance(db custody.ReadOnlyKVStore, owner, operator custody.Address, ticker string) (uint64, error)
	SpendAllowance(db custody.KVStore, owner, operator custody.Address, ticker string, amount uint64) error
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default buckets.
func NewController() BaseController {
	return BaseController{
		wallets:    orm.NewModelBucket(BucketName),
		allowances: orm.NewModelBucket(AllowanceBucketName),
	}
}

// Balance returns how much of given ticker the owner holds.
func (c BaseController) Balance(db custody.ReadOnlyKVStore, owner custody.Address, ticker string) (uint64, error) {
	w, err := c.wallet(db, owner)
	if err != nil {
		return 0, err
	}
	return w.Balance(ticker), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db custody.KVStore, src, dest custody.Address, ticker string, amount uint64) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if err := sender.Subtract(ticker, amount); err != nil {
		return err
	}
	if err := c.save(db, src, sender); err != nil {
		return err
	}

	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(ticker, amount); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db custody.KVStore, dest custody.Address, ticker string, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(ticker, amount); err != nil {
		return err
	}
	return c.save(db, dest, w)
}

// Approve sets how much of given ticker the operator may pull from the
// owner. It replaces any previous approval.
func (c BaseController) Approve(db custody.KVStore, owner, operator custody.Address, ticker string, amount uint64) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	key := allowanceKey(owner, operator, ticker)
	if amount == 0 {
		if err := c.allowances.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.allowances.Put(db, key, &Allowance{Amount: amount})
}

// Allowance returns how much the operator may still pull from the owner.
func (c BaseController) Allowance(db custody.ReadOnlyKVStore, owner, operator custody.Address, ticker string) (uint64, error) {
	var a Allowance
	switch err := c.allowances.One(db, allowanceKey(owner, operator, ticker), &a); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return a.Amount, nil
}

// SpendAllowance decreases the approval by amount or fails with
// ErrInsufficientAllowance.
func (c BaseController) SpendAllowance(db custody.KVStore, owner, operator custody.Address, ticker string, amount uint64) error {
	have, err := c.Allowance(db, owner, operator, ticker)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientAllowance, "%s: approved %d, need %d", ticker, have, amount)
	}
	return c.Approve(db, owner, operator, ticker, have-amount)
}

func (c BaseController) wallet(db custody.ReadOnlyKVStore, owner custody.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.wallets.One(db, owner, &w); {
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	case err != nil:
		return nil, err
	}
	return &w, nil
}

// save stores the wallet, or removes it once it holds no coins.
func (c BaseController) save(db custody.KVStore, owner custody.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := c.wallets.Delete(db, owner); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return c.wallets.Put(db, owner, w)
}
