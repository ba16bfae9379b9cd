package store

import (
	"bytes"
)

// mergeIterator combines cached items with the iterator of the backing
// store. Cached entries win over parent entries with the same key and
// deleted entries hide them. The parent iterator is consumed and closed.
//
// Both sources must be sorted in the same direction, descending if
// reverse is set.
func mergeIterator(items []cacheItem, parent Iterator, reverse bool) (Iterator, error) {
	defer parent.Close()

	var out []Model
	for parent.Valid() || len(items) > 0 {
		if !parent.Valid() {
			out = appendItem(out, items[0])
			items = items[1:]
			continue
		}

		pkey := parent.Key()
		if len(items) == 0 {
			out = append(out, Model{Key: pkey, Value: parent.Value()})
			if err := parent.Next(); err != nil {
				return nil, err
			}
			continue
		}

		cmp := bytes.Compare(pkey, items[0].key)
		if reverse {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			out = append(out, Model{Key: pkey, Value: parent.Value()})
			if err := parent.Next(); err != nil {
				return nil, err
			}
		case cmp > 0:
			out = appendItem(out, items[0])
			items = items[1:]
		default:
			out = appendItem(out, items[0])
			items = items[1:]
			if err := parent.Next(); err != nil {
				return nil, err
			}
		}
	}
	return NewSliceIterator(out), nil
}

func appendItem(out []Model, it cacheItem) []Model {
	if it.deleted {
		return out
	}
	return append(out, Model{Key: it.key, Value: it.value})
}
