package vault

import (
	"github.com/iov-one/custody"
)

// Gateway moves assets on behalf of the vault. The vault treats any
// returned error as a failed transfer. Implementations may call back into
// the vault.
type Gateway interface {
	// PullFrom moves amount of asset from one account to another.
	PullFrom(ctx custody.Context, asset string, from, to custody.Address, amount uint64) error
	// PushTo pays amount of asset to the account, out of the reserve the
	// gateway manages for the vault.
	PushTo(ctx custody.Context, asset string, to custody.Address, amount uint64) error
	// BalanceOf returns the amount of asset held by the account.
	BalanceOf(ctx custody.Context, asset string, account custody.Address) (uint64, error)
}

// ReserveAddress is the account the vault pays rewards from. A gateway
// acting for the vault should use it as its operator.
func ReserveAddress() custody.Address {
	return custody.NewCondition("vault", "reserve", nil).Address()
}
