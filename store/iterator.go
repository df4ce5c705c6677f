package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/craig-iam-smith/graphene/errors"
)

// ascendBtree collects all cached items within the requested range in
// ascending order. The iteration contract forbids writes while an iterator
// is held so materializing the range upfront is safe.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	if start == nil && end == nil {
		bt.Ascend(insert)
	} else if start == nil { // end != nil
		bt.AscendLessThan(bkey{end}, insert)
	} else if end == nil { // start != nil
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	} else { // both != nil
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// descendBtree collects all cached items within the requested range in
// descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	if start == nil && end == nil {
		bt.Descend(insert)
	} else if start == nil { // end != nil
		bt.DescendLessOrEqual(bkeyLess{end}, insert)
	} else if end == nil { // start != nil
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	} else { // both != nil
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
	}
	return items
}

// mergeIterators combines cached items with results of the parent iterator,
// taking into consideration overwrites and deletes. The parent iterator is
// fully drained and released.
func mergeIterators(cached []btree.Item, parent Iterator, reverse bool) (Iterator, error) {
	defer parent.Release()

	var drained []Model
	for {
		key, value, err := parent.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				break
			}
			return nil, err
		}
		drained = append(drained, Model{Key: key, Value: value})
	}

	res := make([]Model, 0, len(cached)+len(drained))

	appendCached := func(item btree.Item) {
		// Deleted entries drop out of the result.
		if s, ok := item.(setItem); ok {
			res = append(res, Model{Key: s.Key(), Value: s.value})
		}
	}

	var i, j int
	for i < len(cached) && j < len(drained) {
		cmp := bytes.Compare(cached[i].(keyer).Key(), drained[j].Key)
		if reverse {
			cmp = -cmp
		}
		switch {
		case cmp < 0:
			appendCached(cached[i])
			i++
		case cmp > 0:
			res = append(res, drained[j])
			j++
		default:
			// Cache state shadows the backing store.
			appendCached(cached[i])
			i++
			j++
		}
	}
	for ; i < len(cached); i++ {
		appendCached(cached[i])
	}
	for ; j < len(drained); j++ {
		res = append(res, drained[j])
	}

	return NewSliceIterator(res), nil
}
