package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authorize verifies all signatures over the payload and returns a context
// carrying their signers. At least one signature is required. Nonces are
// incremented in db, so a signature can be used only once.
func Authorize(ctx custody.Context, db custody.KVStore, payload []byte, chainID string, sigs ...*StdSignature) (custody.Context, error) {
	if len(sigs) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	signers := make([]custody.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrap(err, "cannot verify signature")
		}
		signers = append(signers, signer)
	}
	return withSigners(ctx, signers), nil
}

// Authenticate exposes the signers verified by Authorize.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]custody.Condition)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
