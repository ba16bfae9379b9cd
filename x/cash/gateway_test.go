package cash

import (
	"context"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayPull(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	ctrl := NewController()
	operator := weavetest.NewCondition().Address()
	owner := weavetest.NewCondition().Address()
	brand := weavetest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, owner, "USDT", 1000))
	gw := NewGateway(db, ctrl, operator)

	// without an approval nothing moves
	err := gw.PullFrom(ctx, "USDT", owner, brand, 100)
	assert.True(t, ErrInsufficientAllowance.Is(err), "got %+v", err)

	require.NoError(t, ctrl.Approve(db, owner, operator, "USDT", 2000))

	// approved but not funded, allowance must not be spent
	err = gw.PullFrom(ctx, "USDT", owner, brand, 1500)
	assert.True(t, ErrInsufficientFunds.Is(err), "got %+v", err)
	allowance, err := ctrl.Allowance(db, owner, operator, "USDT")
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), allowance)

	require.NoError(t, gw.PullFrom(ctx, "USDT", owner, brand, 400))
	bal, err := gw.BalanceOf(ctx, "USDT", owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), bal)
	bal, err = gw.BalanceOf(ctx, "USDT", brand)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), bal)
	allowance, err = ctrl.Allowance(db, owner, operator, "USDT")
	require.NoError(t, err)
	assert.Equal(t, uint64(1600), allowance)
}

func TestGatewayPush(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	operator := weavetest.NewCondition().Address()
	user := weavetest.NewCondition().Address()
	gw := NewGateway(db, ctrl, operator)
	assert.Equal(t, operator, gw.Operator())

	err := gw.PushTo(context.Background(), "PROJ", user, 50)
	assert.True(t, ErrInsufficientFunds.Is(err), "got %+v", err)

	require.NoError(t, ctrl.IssueCoins(db, operator, "PROJ", 50))
	require.NoError(t, gw.PushTo(context.Background(), "PROJ", user, 50))
	bal, err := gw.BalanceOf(context.Background(), "PROJ", user)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), bal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, gw.PushTo(ctx, "PROJ", operator, 1))
}
