package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Message
}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db custody.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists and
	// ErrNotFound if it does not.
	Has(db custody.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// first.
	Put(db custody.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db custody.KVStore, key []byte) error

	// ForEach loads every stored entity into dest and calls fn with its
	// key. Entities are visited in ascending key order.
	ForEach(db custody.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error
}

// NewModelBucket returns a ModelBucket storing models under given bucket
// name.
func NewModelBucket(name string) ModelBucket {
	return &modelBucket{b: NewBucket(name)}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := custody.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db custody.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s key %X", mb.b.Name(), key)
	}
	return nil
}

func (mb *modelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := custody.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db custody.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) ForEach(db custody.ReadOnlyKVStore, dest Model, fn func(key []byte) error) error {
	return mb.b.ForEach(db, func(key, value []byte) error {
		if err := custody.Unmarshal(value, dest); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
		}
		return fn(key)
	})
}
