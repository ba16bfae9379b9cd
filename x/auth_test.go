package x

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	ctx1 := &weavetest.CtxAuth{Key: "foo"}
	ctx2 := &weavetest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          custody.Context
		auth         Authenticator
		mainSigner   custody.Condition
		wantInCtx    custody.Condition
		wantNotInCtx custody.Condition
		wantAll      []custody.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &weavetest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &weavetest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []custody.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&weavetest.Auth{Signer: b},
				&weavetest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []custody.Condition{b, a},
		},
		"chained duplicates are reported once": {
			ctx: ctx1.SetConditions(context.Background(), a),
			auth: ChainAuth(
				ctx1,
				&weavetest.Auth{Signers: []custody.Condition{a, b}}),
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []custody.Condition{a, b},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []custody.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			addrs := GetAddresses(tc.ctx, tc.auth)
			assert.Equal(t, len(all), len(addrs))
			for i, cond := range all {
				assert.Equal(t, cond.Address(), addrs[i])
			}
		})
	}
}

func TestCaller(t *testing.T) {
	a := weavetest.NewCondition()
	auth := &weavetest.CtxAuth{Key: "caller"}

	_, err := Caller(context.Background(), auth)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	addr, err := Caller(auth.SetConditions(context.Background(), a), auth)
	assert.Nil(t, err)
	assert.Equal(t, a.Address(), addr)
}
