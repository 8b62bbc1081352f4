package dock

import (
	"time"

	"dock-cli/internal/model"
)

// FlightFrame is the flight overlay for one render pass.
type FlightFrame struct {
	ItemID      model.ItemID `json:"itemId" toml:"item_id"`
	Pos         Point        `json:"pos" toml:"pos"`
	Progress    float64      `json:"progress" toml:"progress"`
	TargetIndex int          `json:"targetIndex" toml:"target_index"`
}

// Frame is a consistent copy of the strip state at one instant. Renderers work from a
// Frame so a pass never sees a half-applied move.
type Frame struct {
	At        time.Time      `json:"at" toml:"at"`
	Order     []model.ItemID `json:"order" toml:"order"`
	Hidden    []model.ItemID `json:"hidden" toml:"hidden"`
	Hovered   int            `json:"hovered" toml:"hovered"`
	Dragging  model.ItemID   `json:"dragging,omitempty" toml:"dragging,omitempty"`
	DragState DragState      `json:"dragState" toml:"drag_state"`
	Ghost     *Point         `json:"ghost,omitempty" toml:"ghost,omitempty"`
	Flight    *FlightFrame   `json:"flight,omitempty" toml:"flight,omitempty"`
	Layout    Layout         `json:"-" toml:"-"`
	LayoutOK  bool           `json:"layoutOk" toml:"layout_ok"`

	Items *model.Catalog `json:"-" toml:"-"`

	hidden map[model.ItemID]struct{}
}

func (s DragState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// IsHidden reports whether id is owned by the flight overlay in this frame.
func (f Frame) IsHidden(id model.ItemID) bool {
	_, ok := f.hidden[id]
	return ok
}

// HoveredItem is the item whose tile should show hover affordances, if any. The dragged and
// flying items never count as hovered.
func (f Frame) HoveredItem() (model.ItemID, bool) {
	if f.Hovered < 0 || f.Hovered >= len(f.Order) {
		return "", false
	}
	id := f.Order[f.Hovered]
	if id == f.Dragging || f.IsHidden(id) {
		return "", false
	}
	return id, true
}

// Snapshot captures the strip for a render pass at now.
func (s *Strip) Snapshot(now time.Time) Frame {
	l, err := s.Layout()
	fr := Frame{
		At:        now,
		Order:     s.order.Sequence(),
		Hidden:    s.hidden.IDs(),
		Hovered:   s.hover.Index(),
		DragState: s.drag.State(),
		Layout:    l,
		LayoutOK:  err == nil,
		Items:     s.catalog,
		hidden:    make(map[model.ItemID]struct{}, s.hidden.Len()),
	}
	for _, id := range fr.Hidden {
		fr.hidden[id] = struct{}{}
	}
	if s.drag.State() != DragIdle {
		fr.Dragging = s.drag.ItemID()
	}
	if s.drag.Active() {
		g := s.drag.Ghost()
		fr.Ghost = &g
	}
	if f, ok := s.flights.Active(); ok {
		fr.Flight = &FlightFrame{
			ItemID:      f.ItemID,
			Pos:         f.Position(now),
			Progress:    f.Progress(now),
			TargetIndex: f.TargetIndex,
		}
	}
	return fr
}

// RenderFunc draws one item. isDragging is true for the drag ghost and the flight overlay.
type RenderFunc[V any] func(item model.Item, isDragging, isHovered bool) V

// Placed is a rendered visual together with where it goes.
type Placed[V any] struct {
	ItemID model.ItemID
	// Index is the slot for in-place visuals and NoIndex for overlays.
	Index int
	Pos   Point
	View  V
}

// RenderPass is the output of Render: in-place slots in order, then the overlays drawn above.
type RenderPass[V any] struct {
	Slots   []Placed[V]
	Ghost   *Placed[V]
	Overlay *Placed[V]
}

// Render calls fn for every visible slot and once more for the drag ghost and the flight
// overlay. Hidden items are skipped in place. The dragged item keeps its slot as a placeholder
// drawn with isDragging set.
func Render[V any](fr Frame, fn RenderFunc[V]) RenderPass[V] {
	var pass RenderPass[V]
	hovered, hasHover := fr.HoveredItem()
	for i, id := range fr.Order {
		if fr.IsHidden(id) {
			continue
		}
		it, ok := fr.Items.Get(id)
		if !ok {
			continue
		}
		dragging := fr.Ghost != nil && id == fr.Dragging
		pass.Slots = append(pass.Slots, Placed[V]{
			ItemID: id,
			Index:  i,
			Pos:    fr.Layout.SlotOrigin(i),
			View:   fn(it, dragging, hasHover && id == hovered),
		})
	}
	if fr.Ghost != nil {
		if it, ok := fr.Items.Get(fr.Dragging); ok {
			pass.Ghost = &Placed[V]{ItemID: it.ID, Index: NoIndex, Pos: *fr.Ghost, View: fn(it, true, false)}
		}
	}
	if fr.Flight != nil {
		if it, ok := fr.Items.Get(fr.Flight.ItemID); ok {
			pass.Overlay = &Placed[V]{ItemID: it.ID, Index: NoIndex, Pos: fr.Flight.Pos, View: fn(it, true, false)}
		}
	}
	return pass
}
