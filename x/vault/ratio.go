package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RatioPolicy computes the reward allocation of a participant from the
// total amount the participant deposited.
//
// A policy must be monotonic, a greater deposit never yields a smaller
// allocation, and must not allocate more than was deposited.
type RatioPolicy interface {
	Allocate(deposited uint64) (uint64, error)
}

// IdentityRatio allocates one reward unit per deposited unit.
type IdentityRatio struct{}

var _ RatioPolicy = IdentityRatio{}

// Allocate returns deposited.
func (IdentityRatio) Allocate(deposited uint64) (uint64, error) {
	return deposited, nil
}

// FractionRatio allocates a fixed fraction of the deposit, rounded down.
type FractionRatio struct {
	custody.Fraction
}

var _ RatioPolicy = FractionRatio{}

// Validate rejects fractions that are not in [0, 1].
func (r FractionRatio) Validate() error {
	if err := r.Fraction.Validate(); err != nil {
		return err
	}
	if r.Numerator > r.Denominator {
		return errors.Wrapf(errors.ErrState, "ratio %s exceeds 1", r.Fraction.String())
	}
	return nil
}

// Allocate returns floor(deposited * numerator / denominator).
func (r FractionRatio) Allocate(deposited uint64) (uint64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	return r.MulUint64(deposited)
}
