package sigs

import (
	"github.com/iov-one/custody/errors"
)

// ErrInvalidSequence is returned when a signature nonce is out of order.
var ErrInvalidSequence = errors.Register(1120, "invalid sequence number")
