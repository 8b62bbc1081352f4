package dock

import (
	"strconv"

	"dock-cli/internal/model"
)

// OrderModel owns the canonical order of item ids. Every mutation is a permutation:
// the set of ids never changes after construction.
type OrderModel struct {
	ids []model.ItemID
	pos map[model.ItemID]int
}

func NewOrderModel(ids []model.ItemID) (*OrderModel, error) {
	o := &OrderModel{
		ids: append([]model.ItemID(nil), ids...),
		pos: make(map[model.ItemID]int, len(ids)),
	}
	for i, id := range o.ids {
		if _, dup := o.pos[id]; dup {
			return nil, model.DuplicateIDError{ID: id}
		}
		o.pos[id] = i
	}
	return o, nil
}

func (o *OrderModel) Len() int { return len(o.ids) }

func (o *OrderModel) Contains(id model.ItemID) bool {
	_, ok := o.pos[id]
	return ok
}

// IndexOf returns the current index of id.
func (o *OrderModel) IndexOf(id model.ItemID) (int, error) {
	i, ok := o.pos[id]
	if !ok {
		return -1, NotFoundError{ID: id}
	}
	return i, nil
}

// At returns the id at index i.
func (o *OrderModel) At(i int) (model.ItemID, bool) {
	if i < 0 || i >= len(o.ids) {
		return "", false
	}
	return o.ids[i], true
}

// Sequence returns a copy of the current order.
func (o *OrderModel) Sequence() []model.ItemID {
	return append([]model.ItemID(nil), o.ids...)
}

// Move removes id from index from and reinserts it at index to, where to is expressed in the
// index space after removal (so the item ends up at exactly index to). It reports whether the
// order changed.
func (o *OrderModel) Move(id model.ItemID, from, to int) (bool, error) {
	cur, ok := o.pos[id]
	if !ok {
		return false, NotFoundError{ID: id}
	}
	n := len(o.ids)
	if from < 0 || from >= n {
		return false, IndexError{Op: "move from", Index: from, Len: n}
	}
	if cur != from {
		return false, IndexError{Op: "move from (item is at " + strconv.Itoa(cur) + ")", Index: from, Len: n}
	}
	if to < 0 || to >= n {
		return false, IndexError{Op: "move to", Index: to, Len: n}
	}
	if from == to {
		return false, nil
	}

	if from < to {
		copy(o.ids[from:to], o.ids[from+1:to+1])
	} else {
		copy(o.ids[to+1:from+1], o.ids[to:from])
	}
	o.ids[to] = id

	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		o.pos[o.ids[i]] = i
	}
	return true, nil
}
