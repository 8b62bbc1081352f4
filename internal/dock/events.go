package dock

import (
	"time"

	"dock-cli/internal/model"
)

// EventKind names a change published by the strip. Render paths subscribe and redraw
// only for the kinds they care about.
type EventKind int

const (
	EventOrderChanged EventKind = iota + 1
	EventHiddenChanged
	EventHoverChanged
	EventDragStarted
	EventDragMoved
	EventDragEnded
	EventFlightStarted
	EventFlightTick
	EventFlightLanded
)

func (k EventKind) String() string {
	switch k {
	case EventOrderChanged:
		return "order-changed"
	case EventHiddenChanged:
		return "hidden-changed"
	case EventHoverChanged:
		return "hover-changed"
	case EventDragStarted:
		return "drag-started"
	case EventDragMoved:
		return "drag-moved"
	case EventDragEnded:
		return "drag-ended"
	case EventFlightStarted:
		return "flight-started"
	case EventFlightTick:
		return "flight-tick"
	case EventFlightLanded:
		return "flight-landed"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event carries the minimum needed to react to a change; subscribers read the rest from
// a Frame. Index fields use NoIndex when not applicable.
type Event struct {
	Kind   EventKind    `json:"kind"`
	ItemID model.ItemID `json:"itemId,omitempty"`
	From   int          `json:"from"`
	To     int          `json:"to"`
	// Forced is set on EventFlightLanded when the flight was completed early.
	Forced bool      `json:"forced,omitempty"`
	At     time.Time `json:"at"`
}

type subscriber struct {
	id uint32
	fn func(Event)
}

// Bus is a synchronous observer registry. Publish calls subscribers in registration order
// before returning, so a change and its notification are observed together.
type Bus struct {
	subs   []subscriber
	nextID uint32
}

// Subscription removes its callback when cancelled.
type Subscription struct {
	id  uint32
	bus *Bus
}

func (b *Bus) Subscribe(fn func(Event)) Subscription {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return Subscription{id: id, bus: b}
}

// Cancel unregisters the callback. Cancelling twice is harmless.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	subs := s.bus.subs
	for i := range subs {
		if subs[i].id == s.id {
			copy(subs[i:], subs[i+1:])
			subs[len(subs)-1] = subscriber{}
			s.bus.subs = subs[:len(subs)-1]
			return
		}
	}
}

func (b *Bus) Publish(ev Event) {
	// Snapshot so a subscriber may cancel itself while being called.
	subs := append([]subscriber(nil), b.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}
