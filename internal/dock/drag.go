package dock

import (
	"fmt"

	"dock-cli/internal/model"
)

// DragState is the lifecycle of a DragSession.
type DragState int

const (
	DragIdle DragState = iota
	// DragActive: the pointer moved past the threshold and the item follows it.
	DragActive
	// DragSettling: the pointer was released and a flight is bringing the item home.
	DragSettling
)

func (s DragState) String() string {
	switch s {
	case DragActive:
		return "active"
	case DragSettling:
		return "settling"
	default:
		return "idle"
	}
}

// DragSession tracks the provenance of the single in-progress drag.
type DragSession struct {
	state  DragState
	itemID model.ItemID
	origin int
	// grab is the pointer position relative to the slot origin at drag start, so the ghost
	// keeps the same relative placement under the pointer.
	grab    Point
	pointer Point
	// lastSlot is the last slot the pointer was accepted into (push-aside), or NoIndex.
	lastSlot int
}

func NewDragSession() *DragSession {
	return &DragSession{origin: NoIndex, lastSlot: NoIndex}
}

func (d *DragSession) State() DragState     { return d.state }
func (d *DragSession) ItemID() model.ItemID { return d.itemID }
func (d *DragSession) Origin() int          { return d.origin }
func (d *DragSession) Pointer() Point       { return d.pointer }
func (d *DragSession) Grab() Point          { return d.grab }

// Active reports whether the pointer currently drives the item.
func (d *DragSession) Active() bool { return d.state == DragActive }

// Owns reports whether id belongs to a session that has not returned to idle.
func (d *DragSession) Owns(id model.ItemID) bool {
	return d.state != DragIdle && d.itemID == id
}

// Begin enters Active for id, recording its origin index.
func (d *DragSession) Begin(id model.ItemID, origin int, grab, pointer Point) error {
	if d.state != DragIdle {
		return fmt.Errorf("drag already %s for %s", d.state, d.itemID)
	}
	d.state = DragActive
	d.itemID = id
	d.origin = origin
	d.grab = grab
	d.pointer = pointer
	d.lastSlot = origin
	return nil
}

// Update records the live pointer position.
func (d *DragSession) Update(pointer Point) {
	if d.state != DragActive {
		return
	}
	d.pointer = pointer
}

// accept records slot as the latest push-aside target. It reports false when the pointer is
// still in the slot that was last accepted, so each distinct slot crossing is handled once.
func (d *DragSession) accept(slot int) bool {
	if d.state != DragActive || slot == d.lastSlot {
		return false
	}
	d.lastSlot = slot
	return true
}

// Ghost is the top-left of the item visual while it follows the pointer.
func (d *DragSession) Ghost() Point {
	return d.pointer.Sub(d.grab)
}

// Settle moves an active session to Settling (release with a flight in progress).
func (d *DragSession) Settle() {
	if d.state == DragActive {
		d.state = DragSettling
	}
}

// End returns the session to Idle and forgets its item.
func (d *DragSession) End() {
	d.state = DragIdle
	d.itemID = ""
	d.origin = NoIndex
	d.grab = Point{}
	d.pointer = Point{}
	d.lastSlot = NoIndex
}
