package tui

import (
	"time"

	"dock-cli/internal/dock"
	"dock-cli/internal/model"
)

// slide animates a tile between slots after a push-aside or a restore. It is purely a
// rendering transition; the order model has already moved.
type slide struct {
	from  dock.Point
	start time.Time
}

type slideTracker struct {
	duration time.Duration
	index    map[model.ItemID]int
	slides   map[model.ItemID]slide
}

func newSlideTracker(order []model.ItemID, d time.Duration) *slideTracker {
	st := &slideTracker{
		duration: d,
		index:    make(map[model.ItemID]int, len(order)),
		slides:   map[model.ItemID]slide{},
	}
	for i, id := range order {
		st.index[id] = i
	}
	return st
}

// observe starts a slide for every item whose index changed since the last call.
// l is strip-relative (zero origin).
func (st *slideTracker) observe(order []model.ItemID, l dock.Layout, now time.Time) {
	for i, id := range order {
		prev, ok := st.index[id]
		st.index[id] = i
		if !ok || prev == i || st.duration <= 0 {
			continue
		}
		// Start from wherever the tile is drawn right now so chained moves stay smooth.
		st.slides[id] = slide{from: st.position(id, prev, l, now), start: now}
	}
}

// land cancels any slide for id. A landed flight already drew the item at its slot, so a
// restoring move must not animate it again from the slot it was dropped in.
func (st *slideTracker) land(id model.ItemID) {
	delete(st.slides, id)
}

// position is the strip-relative origin of the tile for id, currently at index.
func (st *slideTracker) position(id model.ItemID, index int, l dock.Layout, now time.Time) dock.Point {
	to := l.SlotOrigin(index)
	s, ok := st.slides[id]
	if !ok {
		return to
	}
	p := float64(now.Sub(s.start)) / float64(st.duration)
	if p >= 1 {
		return to
	}
	if p < 0 {
		p = 0
	}
	return dock.Point{
		X: s.from.X + int(float64(to.X-s.from.X)*p),
		Y: s.from.Y + int(float64(to.Y-s.from.Y)*p),
	}
}

// active prunes finished slides and reports whether any remain.
func (st *slideTracker) active(now time.Time) bool {
	for id, s := range st.slides {
		if now.Sub(s.start) >= st.duration {
			delete(st.slides, id)
		}
	}
	return len(st.slides) > 0
}
