package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t testing.TB, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	val, err := kv.Get(key)
	require.NoError(t, err)
	return val
}

func has(t testing.TB, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

func TestBTreeCacheGetSet(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, get(t, base, k))
	assert.False(t, has(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, get(t, base, k))
	assert.True(t, has(t, base, k))

	// a nested cache sees the parent data
	cache := base.CacheWrap()
	assert.Equal(t, v, get(t, cache, k))

	// but its own writes are only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, get(t, cache, k2))
	assert.Nil(t, get(t, base, k2))
	assert.False(t, has(t, base, k2))

	require.NoError(t, cache.Write())
	assert.Equal(t, v, get(t, base, k))
	assert.Equal(t, v2, get(t, base, k2))

	// a discarded cache leaves no trace
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assert.Nil(t, get(t, base, k3))
	assert.Equal(t, v, get(t, base, k))

	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	assert.Nil(t, get(t, base, k))
	assert.Equal(t, v2, get(t, base, k2))
	assert.Nil(t, get(t, base, k3))
}

func TestBTreeCacheConflicts(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}

	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{setOp(ks[1], vs[1]), setOp(ks[2], vs[2])},
			childOps:      []Op{setOp(ks[1], vs[11]), setOp(ks[3], vs[7]), delOp(ks[2])},
			parentQueries: []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			childQueries:  []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
		"delete then set again": {
			parentOps:     []Op{setOp(ks[4], vs[4])},
			childOps:      []Op{delOp(ks[4]), setOp(ks[4], vs[5])},
			parentQueries: []Model{pair(ks[4], vs[4])},
			childQueries:  []Model{pair(ks[4], vs[5])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				assert.Equal(t, q.Value, get(t, parent, q.Key))
				assert.Equal(t, q.Value != nil, has(t, parent, q.Key))
			}
			for _, q := range tc.childQueries {
				assert.Equal(t, q.Value, get(t, child, q.Key))
				assert.Equal(t, q.Value != nil, has(t, child, q.Key))
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				assert.Equal(t, q.Value, get(t, parent, q.Key))
				assert.Equal(t, q.Value != nil, has(t, parent, q.Key))
			}
		})
	}
}

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i] = pair(ks[i], vs[i])
	}
	verifyIterator(t, models, NewSliceIterator(models))

	trash := NewSliceIterator(models)
	assert.True(t, trash.Valid())
	trash.Close()
	assert.False(t, trash.Valid())
	assert.Error(t, trash.Next())
}

func TestBTreeCacheBasicIterator(t *testing.T) {
	const (
		size        = 50
		deleteCount = 20
		totalSize   = size + deleteCount
	)

	models := make([]Model, totalSize)
	for i := 0; i < totalSize; i++ {
		models[i] = pair(randBytes(8), randBytes(40))
	}

	base := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	for _, m := range models {
		require.NoError(t, base.Set(m.Key, m.Value))
	}
	for _, m := range models[:deleteCount] {
		require.NoError(t, base.Delete(m.Key))
	}
	models = sorted(models[deleteCount:])

	verifyIterator(t, models, iter(t, base, nil, nil))
	verifyIterator(t, models[10:], iter(t, base, models[10].Key, nil))
	verifyIterator(t, models[:size-8], iter(t, base, nil, models[size-8].Key))
	verifyIterator(t, models[17:28], iter(t, base, models[17].Key, models[28].Key))

	verifyIterator(t, reverse(models), riter(t, base, nil, nil))
	verifyIterator(t, reverse(models[34:]), riter(t, base, models[34].Key, nil))
	verifyIterator(t, reverse(models[:19]), riter(t, base, nil, models[19].Key))
	verifyIterator(t, reverse(models[6:26]), riter(t, base, models[6].Key, models[26].Key))
}

// TestBTreeCacheIterator iterates over ranges that span both the parent
// and child caches, combining overwrites and deletes.
func TestBTreeCacheIterator(t *testing.T) {
	parent := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, parent.Set([]byte(k), []byte("parent-"+k)))
	}

	child := parent.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("child-b")))
	require.NoError(t, child.Set([]byte("c"), []byte("child-c")))
	require.NoError(t, child.Delete([]byte("e")))
	require.NoError(t, child.Set([]byte("h"), []byte("child-h")))

	want := []Model{
		pair([]byte("a"), []byte("parent-a")),
		pair([]byte("b"), []byte("child-b")),
		pair([]byte("c"), []byte("child-c")),
		pair([]byte("g"), []byte("parent-g")),
		pair([]byte("h"), []byte("child-h")),
	}
	verifyIterator(t, want, iter(t, child, nil, nil))
	verifyIterator(t, want[1:3], iter(t, child, []byte("b"), []byte("d")))
	verifyIterator(t, reverse(want), riter(t, child, nil, nil))

	dump, err := Dump(child)
	require.NoError(t, err)
	assert.Equal(t, want, dump)

	// parent is not affected until the child is written
	dump, err = Dump(parent)
	require.NoError(t, err)
	assert.Len(t, dump, 4)
}

func iter(t testing.TB, kv ReadOnlyKVStore, start, end []byte) Iterator {
	it, err := kv.Iterator(start, end)
	require.NoError(t, err)
	return it
}

func riter(t testing.TB, kv ReadOnlyKVStore, start, end []byte) Iterator {
	it, err := kv.ReverseIterator(start, end)
	require.NoError(t, err)
	return it
}

func verifyIterator(t *testing.T, models []Model, it Iterator) {
	t.Helper()
	for i := 0; i < len(models); i++ {
		require.True(t, it.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, it.Key(), "%d", i)
		assert.Equal(t, models[i].Value, it.Value(), "%d", i)
		require.NoError(t, it.Next())
	}
	assert.False(t, it.Valid())
	it.Close()
}

func sorted(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func pair(k, v []byte) Model { return Model{Key: k, Value: v} }
func setOp(k, v []byte) Op   { return Op{kind: setKind, key: k, value: v} }
func delOp(k []byte) Op      { return Op{kind: delKind, key: k} }

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
