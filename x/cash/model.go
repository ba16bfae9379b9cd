package cash

import (
	"regexp"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// BucketName is where wallets are stored.
	BucketName = "cash"
	// AllowanceBucketName is where approvals are stored.
	AllowanceBucketName = "allowance"
)

var isTicker = regexp.MustCompile(`^[A-Z]{3,5}$`).MatchString

// ValidateTicker returns ErrTicker if given string is not an asset ticker.
func ValidateTicker(ticker string) error {
	if !isTicker(ticker) {
		return errors.Wrapf(ErrTicker, "%q", ticker)
	}
	return nil
}

// The protobuf tags of the models below follow codec.proto.

// Coin is an amount of a single asset.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (c *Coin) Reset()         { *c = Coin{} }
func (c *Coin) String() string { return proto.CompactTextString(c) }
func (*Coin) ProtoMessage()    {}

// Validate requires a known ticker and a positive amount.
func (c *Coin) Validate() error {
	if err := ValidateTicker(c.Ticker); err != nil {
		return err
	}
	if c.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero coin")
	}
	return nil
}

// Wallet holds the balances of a single account, at most one coin per
// ticker, sorted by ticker.
type Wallet struct {
	Coins []*Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString(w) }
func (*Wallet) ProtoMessage()    {}

// Validate ensures all coins are valid, sorted and unique.
func (w *Wallet) Validate() error {
	for i, c := range w.Coins {
		if c == nil {
			return errors.Wrapf(errors.ErrEmpty, "coin %d", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if i > 0 && w.Coins[i-1].Ticker >= c.Ticker {
			return errors.Wrapf(errors.ErrDuplicate, "coin %d is not sorted", i)
		}
	}
	return nil
}

// Balance returns the amount of given ticker held.
func (w *Wallet) Balance(ticker string) uint64 {
	for _, c := range w.Coins {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Add increases the balance of given ticker.
func (w *Wallet) Add(ticker string, amount uint64) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	for _, c := range w.Coins {
		if c.Ticker == ticker {
			sum := c.Amount + amount
			if sum < c.Amount {
				return errors.Wrapf(errors.ErrOverflow, "%s balance", ticker)
			}
			c.Amount = sum
			return nil
		}
	}
	w.Coins = append(w.Coins, &Coin{Ticker: ticker, Amount: amount})
	sort.Slice(w.Coins, func(i, j int) bool { return w.Coins[i].Ticker < w.Coins[j].Ticker })
	return nil
}

// Subtract decreases the balance of given ticker. A coin that reaches zero
// is removed from the wallet.
func (w *Wallet) Subtract(ticker string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	for i, c := range w.Coins {
		if c.Ticker != ticker {
			continue
		}
		if c.Amount < amount {
			return errors.Wrapf(ErrInsufficientFunds, "%s: have %d, need %d", ticker, c.Amount, amount)
		}
		c.Amount -= amount
		if c.Amount == 0 {
			w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
		}
		return nil
	}
	return errors.Wrapf(ErrInsufficientFunds, "%s: have 0, need %d", ticker, amount)
}

// Allowance is the amount an operator may still pull from an owner.
type Allowance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount"`
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Reset()         { *a = Allowance{} }
func (a *Allowance) String() string { return proto.CompactTextString(a) }
func (*Allowance) ProtoMessage()    {}

// Validate always passes. A zero allowance is removed rather than stored.
func (a *Allowance) Validate() error {
	return nil
}

// allowanceKey is owner | operator | ticker. Addresses have a fixed length.
func allowanceKey(owner, operator []byte, ticker string) []byte {
	key := make([]byte, 0, len(owner)+len(operator)+len(ticker))
	key = append(key, owner...)
	key = append(key, operator...)
	return append(key, ticker...)
}
