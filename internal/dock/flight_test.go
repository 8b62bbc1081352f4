package dock

import (
	"slices"
	"testing"
	"time"

	"dock-cli/internal/model"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	events []Event
}

func (r *recorder) record(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recorder) indexOf(kind EventKind, id model.ItemID) int {
	for i, ev := range r.events {
		if ev.Kind == kind && ev.ItemID == id {
			return i
		}
	}
	return -1
}

func newScheduler(t *testing.T, d time.Duration) (*FlightScheduler, *OrderModel, *HiddenSet, *recorder) {
	t.Helper()
	order := mustOrder(t, "a", "b", "c", "d")
	hidden := NewHiddenSet()
	bus := &Bus{}
	rec := &recorder{}
	bus.Subscribe(rec.record)
	return NewFlightScheduler(order, hidden, bus, d, nil), order, hidden, rec
}

var testLayout = Layout{Origin: Point{X: 2, Y: 1}, SlotWidth: 10, SlotHeight: 3, Count: 4}

func TestFlight_HiddenDuringFlight(t *testing.T) {
	t.Parallel()
	fs, _, hidden, rec := newScheduler(t, 100*time.Millisecond)

	f, err := fs.Start(FlightRequest{ItemID: "b", From: Point{X: 40, Y: 9}, TargetIndex: 1}, testLayout, nil, t0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.To != testLayout.SlotOrigin(1) {
		t.Fatalf("flight end: got %v want %v", f.To, testLayout.SlotOrigin(1))
	}
	if !hidden.Has("b") {
		t.Fatalf("expected b hidden once the flight started")
	}
	if !fs.Tick(t0.Add(50 * time.Millisecond)) {
		t.Fatalf("expected flight still in the air at 50ms")
	}
	if !hidden.Has("b") {
		t.Fatalf("expected b hidden mid-flight")
	}
	if fs.Tick(t0.Add(100 * time.Millisecond)) {
		t.Fatalf("expected flight landed at 100ms")
	}
	if hidden.Has("b") {
		t.Fatalf("expected b visible after landing")
	}
	if _, ok := fs.Active(); ok {
		t.Fatalf("expected no active flight after landing")
	}
	want := []EventKind{EventHiddenChanged, EventFlightStarted, EventFlightTick, EventHiddenChanged, EventFlightLanded}
	if got := rec.kinds(); !slices.Equal(got, want) {
		t.Fatalf("events: got %v want %v", got, want)
	}
}

func TestFlight_StartForceCompletesPrevious(t *testing.T) {
	t.Parallel()
	fs, _, hidden, rec := newScheduler(t, time.Second)

	if _, err := fs.Start(FlightRequest{ItemID: "a", TargetIndex: 0}, testLayout, nil, t0); err != nil {
		t.Fatalf("Start a: %v", err)
	}
	if _, err := fs.Start(FlightRequest{ItemID: "b", TargetIndex: 1}, testLayout, nil, t0.Add(10*time.Millisecond)); err != nil {
		t.Fatalf("Start b: %v", err)
	}

	landed := rec.indexOf(EventFlightLanded, "a")
	started := rec.indexOf(EventFlightStarted, "b")
	if landed < 0 || started < 0 || landed > started {
		t.Fatalf("expected a to land before b starts; events %v", rec.kinds())
	}
	if !rec.events[landed].Forced {
		t.Fatalf("expected a's landing to be forced")
	}
	if hidden.Has("a") || !hidden.Has("b") {
		t.Fatalf("hidden: got %v want [b]", hidden.IDs())
	}
	if f, ok := fs.Active(); !ok || f.ItemID != "b" {
		t.Fatalf("active flight: got %v,%v want b", f.ItemID, ok)
	}
}

func TestFlight_RestoreOnLanding(t *testing.T) {
	t.Parallel()
	fs, order, _, rec := newScheduler(t, 100*time.Millisecond)

	// Push-aside left b at index 2.
	if _, err := order.Move("b", 1, 2); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := fs.Start(FlightRequest{ItemID: "b", TargetIndex: 1, Restore: true}, testLayout, nil, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := order.Sequence(); !slices.Equal(got, ids("a", "c", "b", "d")) {
		t.Fatalf("order must not change before landing; got %v", got)
	}
	fs.Tick(t0.Add(time.Second))
	if got := order.Sequence(); !slices.Equal(got, ids("a", "b", "c", "d")) {
		t.Fatalf("order after landing: got %v", got)
	}
	if oc := rec.indexOf(EventOrderChanged, "b"); oc < 0 || oc > rec.indexOf(EventFlightLanded, "b") {
		t.Fatalf("order change must be published before the landing; events %v", rec.kinds())
	}
}

func TestFlight_ClampsTarget(t *testing.T) {
	t.Parallel()
	fs, _, _, _ := newScheduler(t, time.Second)
	f, err := fs.Start(FlightRequest{ItemID: "a", TargetIndex: 9}, testLayout, nil, t0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.TargetIndex != 3 || f.To != testLayout.SlotOrigin(3) {
		t.Fatalf("clamped flight: got index %d to %v", f.TargetIndex, f.To)
	}
}

func TestFlight_LayoutUnavailableLandsImmediately(t *testing.T) {
	t.Parallel()
	fs, _, hidden, rec := newScheduler(t, time.Second)
	from := Point{X: 7, Y: 7}
	f, err := fs.Start(FlightRequest{ItemID: "c", From: from, TargetIndex: 2}, Layout{}, LayoutUnavailableError{Reason: "not drawn"}, t0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.Duration != 0 || f.To != from {
		t.Fatalf("degraded flight: got duration %v to %v", f.Duration, f.To)
	}
	if _, ok := fs.Active(); ok {
		t.Fatalf("expected zero-duration flight to land inside Start")
	}
	if hidden.Len() != 0 {
		t.Fatalf("expected hidden set empty; got %v", hidden.IDs())
	}
	if rec.indexOf(EventFlightLanded, "c") < 0 {
		t.Fatalf("expected a landing event; got %v", rec.kinds())
	}
}

func TestFlight_UnknownItem(t *testing.T) {
	t.Parallel()
	fs, _, hidden, _ := newScheduler(t, time.Second)
	if _, err := fs.Start(FlightRequest{ItemID: "zz"}, testLayout, nil, t0); err == nil {
		t.Fatalf("expected NotFoundError")
	}
	if hidden.Len() != 0 {
		t.Fatalf("unknown item must not be hidden")
	}
}

func TestFlightState_Position(t *testing.T) {
	t.Parallel()
	f := FlightState{From: Point{X: 22, Y: 9}, To: Point{X: 12, Y: 1}, StartedAt: t0, Duration: 100 * time.Millisecond}
	if got := f.Position(t0); got != f.From {
		t.Fatalf("start: got %v want %v", got, f.From)
	}
	if got, want := f.Position(t0.Add(50*time.Millisecond)), (Point{X: 17, Y: 5}); got != want {
		t.Fatalf("midpoint: got %v want %v", got, want)
	}
	if got := f.Position(t0.Add(time.Hour)); got != f.To {
		t.Fatalf("end: got %v want %v", got, f.To)
	}
	if got := f.Progress(t0.Add(-time.Second)); got != 0 {
		t.Fatalf("progress before start: got %v want 0", got)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	t.Parallel()
	if easeInOutCubic(0) != 0 || easeInOutCubic(1) != 1 || easeInOutCubic(0.5) != 0.5 {
		t.Fatalf("ease endpoints: %v %v %v", easeInOutCubic(0), easeInOutCubic(0.5), easeInOutCubic(1))
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := easeInOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease must be monotonic: f(%d/100)=%v < %v", i, v, prev)
		}
		prev = v
	}
}
