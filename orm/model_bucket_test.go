package orm

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("frac")

	half := &custody.Fraction{Numerator: 1, Denominator: 2}
	assert.Nil(t, b.Put(db, []byte("half"), half))

	var got custody.Fraction
	assert.Nil(t, b.One(db, []byte("half"), &got))
	assert.Equal(t, *half, got)
	assert.Nil(t, b.Has(db, []byte("half")))

	err := b.One(db, []byte("missing"), &got)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("missing")))

	// invalid models are never stored
	err = b.Put(db, []byte("bad"), &custody.Fraction{Numerator: 1})
	assert.IsErr(t, errors.ErrState, err)
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("bad")))

	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, half))

	assert.Nil(t, b.Delete(db, []byte("half")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("half")))
}

func TestModelBucketForEach(t *testing.T) {
	db := store.MemStore()
	fracs := NewModelBucket("frac")
	other := NewModelBucket("fraction")

	assert.Nil(t, fracs.Put(db, []byte("b"), &custody.Fraction{Numerator: 2, Denominator: 3}))
	assert.Nil(t, fracs.Put(db, []byte("a"), &custody.Fraction{Numerator: 1, Denominator: 3}))
	// a bucket with a name sharing the prefix must not be visited
	assert.Nil(t, other.Put(db, []byte("c"), &custody.Fraction{Numerator: 5, Denominator: 7}))

	var (
		keys []string
		nums []uint32
		f    custody.Fraction
	)
	err := fracs.ForEach(db, &f, func(key []byte) error {
		keys = append(keys, string(key))
		nums = append(nums, f.Numerator)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []uint32{1, 2}, nums)

	stop := errors.ErrHuman.New("stop")
	calls := 0
	err = fracs.ForEach(db, &f, func([]byte) error {
		calls++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("x") })
	assert.Panics(t, func() { NewBucket("With-Dash") })
	assert.Equal(t, []byte("vault:abc"), NewBucket("vault").DBKey([]byte("abc")))
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("vault;"), prefixEnd([]byte("vault:")))
	assert.Equal(t, []byte{0x01}, prefixEnd([]byte{0x00, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
