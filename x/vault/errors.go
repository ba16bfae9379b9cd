package vault

import (
	"github.com/iov-one/custody/errors"
)

var (
	// ErrTransfer is returned when the gateway fails to move assets.
	ErrTransfer = errors.Register(1100, "external transfer failed")

	// ErrAlreadyClaimed is returned when a participant claims a second
	// time.
	ErrAlreadyClaimed = errors.Register(1101, "already claimed")

	// ErrReentrant is returned when a state changing operation is called
	// while another one is in progress.
	ErrReentrant = errors.Register(1102, "reentrant call")
)

// IsPreconditionErr returns true if the operation was rejected because the
// vault or the participant was not in a state that allows it. A failed
// transfer is never a precondition error, whatever the gateway returned.
func IsPreconditionErr(err error) bool {
	if ErrTransfer.Is(err) {
		return false
	}
	return errors.ErrState.Is(err) || ErrAlreadyClaimed.Is(err)
}
