package dock

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dock-cli/internal/model"
)

// Measurer reports the screen position of slot 0's origin. It is queried on every geometry
// use; implementations return LayoutUnavailableError until the strip has been drawn once.
type Measurer interface {
	MeasureStripOrigin() (Point, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func() (Point, error)

func (f MeasureFunc) MeasureStripOrigin() (Point, error) { return f() }

// FixedOrigin is a Measurer for a strip that never moves (tests, headless replay).
type FixedOrigin Point

func (p FixedOrigin) MeasureStripOrigin() (Point, error) { return Point(p), nil }

type Options struct {
	Measurer    Measurer
	SlotWidth   int
	SlotHeight  int
	Orientation Orientation
	// DragThreshold is the pointer travel (cells, Chebyshev distance) that turns a press
	// into a drag.
	DragThreshold int
	// Hysteresis is the band (cells) around slot boundaries that does not trigger push-aside.
	Hysteresis     int
	FlightDuration time.Duration
	// Strict surfaces NotFoundError to callers instead of logging and ignoring it.
	Strict bool
	Logger *slog.Logger
}

const (
	DefaultSlotWidth      = 10
	DefaultSlotHeight     = 5
	DefaultDragThreshold  = 1
	DefaultHysteresis     = 1
	DefaultFlightDuration = 350 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.SlotWidth <= 0 {
		o.SlotWidth = DefaultSlotWidth
	}
	if o.SlotHeight <= 0 {
		o.SlotHeight = DefaultSlotHeight
	}
	if o.DragThreshold <= 0 {
		o.DragThreshold = DefaultDragThreshold
	}
	if o.Hysteresis < 0 {
		o.Hysteresis = 0
	}
	if o.FlightDuration < 0 {
		o.FlightDuration = 0
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// press is a pointer-down on an item that has not yet moved past the drag threshold.
type press struct {
	id model.ItemID
	at Point
}

// Strip wires the order model, drag session, hover tracker, hidden set and flight scheduler
// together and exposes the pointer event contract. It is not safe for concurrent use; all
// calls are expected from one event loop.
type Strip struct {
	opts    Options
	log     *slog.Logger
	catalog *model.Catalog
	order   *OrderModel
	hidden  *HiddenSet
	hover   *HoverTracker
	drag    *DragSession
	flights *FlightScheduler
	bus     *Bus

	press *press
}

// NewStrip builds a strip over items in their initial order.
func NewStrip(items []model.Item, opts Options) (*Strip, error) {
	opts = opts.withDefaults()
	cat, items, err := model.NewCatalog(items)
	if err != nil {
		return nil, err
	}
	ids := make([]model.ItemID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	order, err := NewOrderModel(ids)
	if err != nil {
		return nil, err
	}
	s := &Strip{
		opts:    opts,
		log:     opts.Logger,
		catalog: cat,
		order:   order,
		hidden:  NewHiddenSet(),
		hover:   NewHoverTracker(),
		drag:    NewDragSession(),
		bus:     &Bus{},
	}
	s.flights = NewFlightScheduler(s.order, s.hidden, s.bus, opts.FlightDuration, s.log)
	s.bus.Subscribe(s.onEvent)
	return s, nil
}

func (s *Strip) onEvent(ev Event) {
	if ev.Kind != EventFlightLanded {
		return
	}
	if s.drag.State() == DragSettling && s.drag.ItemID() == ev.ItemID {
		s.drag.End()
	}
}

// Subscribe registers fn for every published Event.
func (s *Strip) Subscribe(fn func(Event)) Subscription { return s.bus.Subscribe(fn) }

func (s *Strip) Catalog() *model.Catalog     { return s.catalog }
func (s *Strip) Order() []model.ItemID       { return s.order.Sequence() }
func (s *Strip) Len() int                    { return s.order.Len() }
func (s *Strip) Hovered() int                { return s.hover.Index() }
func (s *Strip) DragState() DragState        { return s.drag.State() }
func (s *Strip) Flight() (FlightState, bool) { return s.flights.Active() }
func (s *Strip) Options() Options            { return s.opts }

func (s *Strip) IndexOf(id model.ItemID) (int, error) { return s.order.IndexOf(id) }

// Layout measures the strip and returns this pass's slot geometry. On error the returned
// Layout still carries slot size and count, with a zero origin.
func (s *Strip) Layout() (Layout, error) {
	l := Layout{
		SlotWidth:   s.opts.SlotWidth,
		SlotHeight:  s.opts.SlotHeight,
		Count:       s.order.Len(),
		Orientation: s.opts.Orientation,
	}
	if s.opts.Measurer == nil {
		return l, LayoutUnavailableError{Reason: "no measurer"}
	}
	origin, err := s.opts.Measurer.MeasureStripOrigin()
	if err != nil {
		var lu LayoutUnavailableError
		if !errors.As(err, &lu) {
			err = LayoutUnavailableError{Reason: err.Error()}
		}
		return l, err
	}
	l.Origin = origin
	return l, nil
}

// HitTest returns the visible item under p.
func (s *Strip) HitTest(p Point) (model.ItemID, int, bool) {
	l, err := s.Layout()
	if err != nil {
		return "", NoIndex, false
	}
	i, ok := l.IndexAtOffset(p)
	if !ok {
		return "", NoIndex, false
	}
	id, ok := s.order.At(i)
	if !ok || s.hidden.Has(id) {
		return "", NoIndex, false
	}
	return id, i, true
}

// fail applies the NotFound policy: strict mode returns the error, lenient mode logs it
// and turns the call into a no-op.
func (s *Strip) fail(op string, err error) error {
	if s.opts.Strict {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Warn("ignored invalid call", "op", op, "error", err)
	return nil
}

func (s *Strip) publish(kind EventKind, id model.ItemID, from, to int, now time.Time) {
	s.bus.Publish(Event{Kind: kind, ItemID: id, From: from, To: to, At: now})
}

// PointerEnter is delivered when the pointer enters slot index.
func (s *Strip) PointerEnter(index int, now time.Time) {
	if index < 0 || index >= s.order.Len() {
		return
	}
	prev := s.hover.Index()
	if s.hover.Enter(index) {
		s.publish(EventHoverChanged, "", prev, index, now)
	}
}

// PointerExit is delivered when the pointer leaves slot index.
func (s *Strip) PointerExit(index int, now time.Time) {
	if s.hover.Exit(index) {
		s.publish(EventHoverChanged, "", index, NoIndex, now)
	}
}

// trackHover turns a pointer position into enter/exit events.
func (s *Strip) trackHover(p Point, now time.Time) {
	prev := s.hover.Index()
	next := NoIndex
	if l, err := s.Layout(); err == nil {
		if i, ok := l.IndexAtOffset(p); ok {
			next = i
		}
	}
	if next == prev {
		return
	}
	if prev != NoIndex {
		s.PointerExit(prev, now)
	}
	if next != NoIndex {
		s.PointerEnter(next, now)
	}
}

// PointerDown records a press on id. The drag begins only once the pointer moves past the
// threshold.
func (s *Strip) PointerDown(id model.ItemID, p Point, now time.Time) error {
	if !s.order.Contains(id) {
		return s.fail("pointer down", NotFoundError{ID: id})
	}
	if s.hidden.Has(id) || s.drag.Active() {
		return nil
	}
	s.press = &press{id: id, at: p}
	return nil
}

// PointerMove updates hover and drives the press → drag → push-aside progression.
func (s *Strip) PointerMove(p Point, now time.Time) error {
	s.trackHover(p, now)
	if s.drag.Active() {
		s.DragHover(p, now)
		return nil
	}
	if s.press == nil {
		return nil
	}
	if chebyshev(p.Sub(s.press.at)) < s.opts.DragThreshold {
		return nil
	}
	if err := s.DragStart(s.press.id, p, now); err != nil {
		return err
	}
	s.DragHover(p, now)
	return nil
}

// PointerUp ends a press (a click, no-op) or a drag (drop).
func (s *Strip) PointerUp(p Point, now time.Time) error {
	s.press = nil
	if !s.drag.Active() {
		return nil
	}
	inside := true
	if l, err := s.Layout(); err == nil {
		inside = l.Contains(p)
	}
	return s.DragEnd(s.drag.ItemID(), p, inside, now)
}

// DragStart begins dragging id with the pointer at p. A flight still settling from an earlier
// drop is force-landed first so only one session exists.
func (s *Strip) DragStart(id model.ItemID, p Point, now time.Time) error {
	origin, err := s.order.IndexOf(id)
	if err != nil {
		return s.fail("drag start", err)
	}
	if s.hidden.Has(id) {
		return nil
	}
	switch s.drag.State() {
	case DragActive:
		return nil
	case DragSettling:
		s.flights.Complete(now)
		if s.drag.State() != DragIdle {
			s.drag.End()
		}
		// Landing may have restored the settling item and shifted id.
		if origin, err = s.order.IndexOf(id); err != nil {
			return s.fail("drag start", err)
		}
	}

	pressAt := p
	if s.press != nil && s.press.id == id {
		pressAt = s.press.at
	}
	s.press = nil

	var grab Point
	if l, err := s.Layout(); err == nil {
		grab = pressAt.Sub(l.SlotOrigin(origin))
	}
	if err := s.drag.Begin(id, origin, grab, p); err != nil {
		return err
	}
	s.log.Debug("drag start", "item", id, "origin", origin)
	s.publish(EventDragStarted, id, origin, origin, now)
	return nil
}

// DragHover follows the pointer during an active drag and applies push-aside when it settles
// into a different slot.
func (s *Strip) DragHover(p Point, now time.Time) {
	if !s.drag.Active() {
		return
	}
	s.drag.Update(p)
	s.publish(EventDragMoved, s.drag.ItemID(), NoIndex, NoIndex, now)

	l, err := s.Layout()
	if err != nil {
		return
	}
	slot, ok := l.IndexAtOffsetInset(p, s.opts.Hysteresis)
	if !ok || !s.drag.accept(slot) {
		return
	}
	id := s.drag.ItemID()
	cur, err := s.order.IndexOf(id)
	if err != nil {
		return
	}
	changed, err := s.order.Move(id, cur, slot)
	if err != nil {
		s.log.Warn("push-aside failed", "item", id, "error", err)
		return
	}
	if changed {
		s.publish(EventOrderChanged, id, cur, slot, now)
	}
}

// DragEnd drops the dragged item at dropPos. Inside the strip the item flies to the slot the
// push-aside left it in; outside it flies back to its origin and the order is restored when
// the flight lands.
func (s *Strip) DragEnd(id model.ItemID, dropPos Point, inside bool, now time.Time) error {
	if !s.order.Contains(id) {
		return s.fail("drag end", NotFoundError{ID: id})
	}
	if !s.drag.Active() || s.drag.ItemID() != id {
		s.log.Debug("drag end without active drag", "item", id)
		return nil
	}
	s.drag.Update(dropPos)
	origin := s.drag.Origin()
	req := FlightRequest{ItemID: id, From: s.drag.Ghost()}
	if inside {
		cur, _ := s.order.IndexOf(id)
		req.TargetIndex = cur
	} else {
		req.TargetIndex = origin
		req.Restore = true
	}

	s.drag.Settle()
	s.publish(EventDragEnded, id, origin, req.TargetIndex, now)

	l, lerr := s.Layout()
	if _, err := s.flights.Start(req, l, lerr, now); err != nil {
		s.drag.End()
		return s.fail("drag end", err)
	}
	return nil
}

// CancelDrag abandons a press or an active drag; an active drag flies home as if dropped
// outside the strip.
func (s *Strip) CancelDrag(now time.Time) error {
	s.press = nil
	if !s.drag.Active() {
		return nil
	}
	return s.DragEnd(s.drag.ItemID(), s.drag.Pointer(), false, now)
}

// Tick advances the flight. It reports whether another tick is needed.
func (s *Strip) Tick(now time.Time) bool {
	return s.flights.Tick(now)
}

// Settle force-lands any flight in the air.
func (s *Strip) Settle(now time.Time) bool {
	return s.flights.Complete(now)
}

func chebyshev(d Point) int {
	x, y := d.X, d.Y
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	if x > y {
		return x
	}
	return y
}
