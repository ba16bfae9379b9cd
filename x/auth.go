package x

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Authenticator tells who authorized the operation carried by a context.
// Components receive it in their constructor so that the signature scheme
// can be replaced, ie. by a mock in tests.
type Authenticator interface {
	// GetConditions returns all fulfilled conditions. The first one is
	// the main signer.
	GetConditions(custody.Context) []custody.Condition
	// HasAddress returns true if any condition matches the address.
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator accepting what any of impls accepts.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions returns conditions of all authenticators in order. A
// condition reported more than once is returned once.
func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var res []custody.Condition
	seen := make(map[string]struct{})
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if _, ok := seen[string(c)]; ok {
				continue
			}
			seen[string(c)] = struct{}{}
			res = append(res, c)
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx custody.Context, auth Authenticator) []custody.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]custody.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// MainSigner returns the first condition or nil.
func MainSigner(ctx custody.Context, auth Authenticator) custody.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// Caller returns the address of the main signer. ErrUnauthorized is
// returned if the context is not signed.
func Caller(ctx custody.Context, auth Authenticator) (custody.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}
