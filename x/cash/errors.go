package cash

import (
	"github.com/iov-one/custody/errors"
)

var (
	// ErrInsufficientFunds is returned when an account does not hold
	// enough coins.
	ErrInsufficientFunds = errors.Register(1110, "insufficient funds")

	// ErrInsufficientAllowance is returned when an operator pulls more
	// than the owner approved.
	ErrInsufficientAllowance = errors.Register(1111, "insufficient allowance")

	// ErrTicker is returned for a malformed asset ticker.
	ErrTicker = errors.Register(1112, "invalid ticker")
)
