package dock

import (
	"log/slog"
	"math"
	"time"

	"dock-cli/internal/model"
)

// FlightRequest asks the scheduler to fly one item into a slot.
type FlightRequest struct {
	ItemID      model.ItemID
	From        Point
	TargetIndex int
	// Restore makes the landing issue the move back to TargetIndex. Drops outside the strip
	// set it: nothing corrected the speculative order while the pointer was out of bounds.
	Restore bool
}

// FlightState is the single active flight.
type FlightState struct {
	Seq         uint64        `json:"seq"`
	ItemID      model.ItemID  `json:"itemId"`
	From        Point         `json:"from"`
	To          Point         `json:"to"`
	TargetIndex int           `json:"targetIndex"`
	Restore     bool          `json:"restore,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

// Progress is the linear time fraction in [0,1].
func (f FlightState) Progress(now time.Time) float64 {
	if f.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(f.StartedAt)) / float64(f.Duration)
	return math.Max(0, math.Min(1, t))
}

// Position is the eased overlay origin at now.
func (f FlightState) Position(now time.Time) Point {
	e := easeInOutCubic(f.Progress(now))
	return Point{
		X: f.From.X + int(math.Round(float64(f.To.X-f.From.X)*e)),
		Y: f.From.Y + int(math.Round(float64(f.To.Y-f.From.Y)*e)),
	}
}

func (f FlightState) done(now time.Time) bool {
	return f.Duration <= 0 || !now.Before(f.StartedAt.Add(f.Duration))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// FlightScheduler owns the one-slot flight and reconciles hidden/order state when it lands.
type FlightScheduler struct {
	order    *OrderModel
	hidden   *HiddenSet
	bus      *Bus
	log      *slog.Logger
	duration time.Duration

	active *FlightState
	seq    uint64
}

func NewFlightScheduler(order *OrderModel, hidden *HiddenSet, bus *Bus, duration time.Duration, log *slog.Logger) *FlightScheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FlightScheduler{order: order, hidden: hidden, bus: bus, log: log, duration: duration}
}

// Active returns the current flight, if any.
func (s *FlightScheduler) Active() (FlightState, bool) {
	if s.active == nil {
		return FlightState{}, false
	}
	return *s.active, true
}

// Start launches a flight. layoutErr is the result of measuring the strip for this pass; when
// it is non-nil the flight degrades to a zero-duration jump that lands before Start returns.
func (s *FlightScheduler) Start(req FlightRequest, layout Layout, layoutErr error, now time.Time) (FlightState, error) {
	if !s.order.Contains(req.ItemID) {
		return FlightState{}, NotFoundError{ID: req.ItemID}
	}

	if s.active != nil {
		s.log.Debug("flight force-completed", "item", s.active.ItemID, "next", req.ItemID)
		s.land(now, true)
	}

	target := clampIndex(req.TargetIndex, s.order.Len())
	if target != req.TargetIndex {
		s.log.Warn("flight target clamped", "item", req.ItemID, "target", req.TargetIndex, "clamped", target)
	}

	s.seq++
	f := FlightState{
		Seq:         s.seq,
		ItemID:      req.ItemID,
		From:        req.From,
		To:          req.From,
		TargetIndex: target,
		Restore:     req.Restore,
		StartedAt:   now,
		Duration:    s.duration,
	}
	if layoutErr != nil {
		s.log.Debug("flight without layout", "item", req.ItemID, "error", layoutErr)
		f.Duration = 0
	} else {
		f.To = layout.SlotOrigin(target)
	}

	if s.hidden.Add(f.ItemID) {
		s.bus.Publish(Event{Kind: EventHiddenChanged, ItemID: f.ItemID, From: NoIndex, To: NoIndex, At: now})
	}
	s.active = &f
	s.bus.Publish(Event{Kind: EventFlightStarted, ItemID: f.ItemID, From: NoIndex, To: target, At: now})

	if f.Duration <= 0 {
		s.land(now, false)
	}
	return f, nil
}

// Tick advances the active flight and lands it once its duration has elapsed.
// It reports whether a flight is still in the air afterwards.
func (s *FlightScheduler) Tick(now time.Time) bool {
	if s.active == nil {
		return false
	}
	if s.active.done(now) {
		s.land(now, false)
		return false
	}
	s.bus.Publish(Event{Kind: EventFlightTick, ItemID: s.active.ItemID, From: NoIndex, To: s.active.TargetIndex, At: now})
	return true
}

// Complete force-lands the active flight, if any.
func (s *FlightScheduler) Complete(now time.Time) bool {
	if s.active == nil {
		return false
	}
	s.land(now, true)
	return true
}

func (s *FlightScheduler) land(now time.Time, forced bool) {
	f := *s.active
	s.active = nil

	if f.Restore {
		s.restore(f, now)
	}
	if s.hidden.Remove(f.ItemID) {
		s.bus.Publish(Event{Kind: EventHiddenChanged, ItemID: f.ItemID, From: NoIndex, To: NoIndex, At: now})
	}
	s.bus.Publish(Event{Kind: EventFlightLanded, ItemID: f.ItemID, From: NoIndex, To: f.TargetIndex, Forced: forced, At: now})
}

func (s *FlightScheduler) restore(f FlightState, now time.Time) {
	cur, err := s.order.IndexOf(f.ItemID)
	if err != nil {
		s.log.Warn("restore skipped", "item", f.ItemID, "error", err)
		return
	}
	to := clampIndex(f.TargetIndex, s.order.Len())
	changed, err := s.order.Move(f.ItemID, cur, to)
	if err != nil {
		s.log.Warn("restore failed", "item", f.ItemID, "error", err)
		return
	}
	if changed {
		s.bus.Publish(Event{Kind: EventOrderChanged, ItemID: f.ItemID, From: cur, To: to, At: now})
	}
}
