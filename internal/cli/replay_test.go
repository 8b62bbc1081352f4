package cli

import (
	"strings"
	"testing"
	"time"

	"dock-cli/internal/config"
	"dock-cli/internal/dock"
	"dock-cli/internal/model"
)

const dragInsideScript = `
[[step]]
at = "0ms"
op = "down"
item = "term"
x = 2
y = 2

[[step]]
at = "10ms"
op = "move"
x = 3
y = 2

[[step]]
at = "20ms"
op = "move"
x = 24
y = 2

[[step]]
at = "30ms"
op = "up"
x = 24
y = 2
`

func mustScript(t *testing.T, src string) replayScript {
	t.Helper()
	sc, err := parseReplayScript(strings.NewReader(src), "test")
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	return sc
}

func mustDefaults(t *testing.T) config.Config {
	t.Helper()
	isolate(t)
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	return cfg
}

func kinds(evs []replayEvent) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func orderString(ids []model.ItemID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}

func TestRunScript_DropInsideReorders(t *testing.T) {
	cfg := mustDefaults(t)

	res, err := runScript(mustScript(t, dragInsideScript), cfg, config.DefaultItems(), nil, replayOptions{Settle: true})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if got, want := orderString(res.Order), "files,web,term,mail,music,notes"; got != want {
		t.Fatalf("order: got %s want %s", got, want)
	}
	if res.Frame.DragState != dock.DragIdle || len(res.Frame.Hidden) != 0 || res.Frame.Flight != nil {
		t.Fatalf("expected a settled frame, got %+v", res.Frame)
	}

	got := strings.Join(kinds(res.Events), " ")
	for _, want := range []string{"drag-started", "order-changed", "drag-ended", "flight-started", "flight-landed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in events: %s", want, got)
		}
	}
	if strings.Contains(got, "flight-tick") || strings.Contains(got, "drag-moved") {
		t.Fatalf("tick events should be filtered: %s", got)
	}
	last := res.Events[len(res.Events)-1]
	if last.Kind != "flight-landed" || last.Forced || last.To != 2 {
		t.Fatalf("unexpected landing: %+v", last)
	}
	if last.At != (30*time.Millisecond + cfg.Flight.Duration).String() {
		t.Fatalf("landing time: got %s", last.At)
	}
}

func TestRunScript_DropOutsideRestores(t *testing.T) {
	cfg := mustDefaults(t)
	src := strings.Replace(dragInsideScript, "op = \"up\"\nx = 24\ny = 2", "op = \"up\"\nx = 24\ny = 40", 1)

	res, err := runScript(mustScript(t, src), cfg, config.DefaultItems(), nil, replayOptions{Settle: true})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if got, want := orderString(res.Order), "term,files,web,mail,music,notes"; got != want {
		t.Fatalf("order: got %s want %s", got, want)
	}
}

func TestRunScript_NoSettleLeavesFlightInAir(t *testing.T) {
	cfg := mustDefaults(t)

	res, err := runScript(mustScript(t, dragInsideScript), cfg, config.DefaultItems(), nil, replayOptions{KeepTicks: true})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if res.Frame.Flight == nil || res.Frame.Flight.ItemID != "term" {
		t.Fatalf("expected term in flight, got %+v", res.Frame.Flight)
	}
	if res.Frame.DragState != dock.DragSettling {
		t.Fatalf("drag state: got %s", res.Frame.DragState)
	}
	if !strings.Contains(strings.Join(kinds(res.Events), " "), "drag-moved") {
		t.Fatalf("expected drag-moved with KeepTicks")
	}
}

func TestRunScript_Origin(t *testing.T) {
	cfg := mustDefaults(t)
	src := "origin = { x = 100, y = 10 }\n" + dragInsideScript

	res, err := runScript(mustScript(t, src), cfg, config.DefaultItems(), nil, replayOptions{Settle: true})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	// The same coordinates miss the shifted strip, so the drop counts as outside.
	if got, want := orderString(res.Order), "term,files,web,mail,music,notes"; got != want {
		t.Fatalf("order: got %s want %s", got, want)
	}
	if !res.Frame.LayoutOK || res.Frame.Layout.Origin != (dock.Point{X: 100, Y: 10}) {
		t.Fatalf("layout: %+v ok=%v", res.Frame.Layout, res.Frame.LayoutOK)
	}
}

func TestRunScript_StrictUnknownItem(t *testing.T) {
	cfg := mustDefaults(t)
	sc := mustScript(t, "[[step]]\nop = \"down\"\nitem = \"nope\"\n")

	if _, err := runScript(sc, cfg, config.DefaultItems(), nil, replayOptions{}); err != nil {
		t.Fatalf("lenient mode should ignore unknown items: %v", err)
	}

	cfg.Engine.Strict = true
	_, err := runScript(sc, cfg, config.DefaultItems(), nil, replayOptions{})
	if err == nil {
		t.Fatalf("expected strict error")
	}
	if !strings.Contains(err.Error(), "step 1 (down)") || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunScript_ExplicitDragOps(t *testing.T) {
	cfg := mustDefaults(t)
	sc := mustScript(t, `
[[step]]
op = "drag-start"
item = "notes"
x = 55
y = 2

[[step]]
at = "5ms"
op = "drag-hover"
x = 5
y = 2

[[step]]
at = "10ms"
op = "drag-end"
item = "notes"
x = 5
y = 2
inside = false

[[step]]
at = "11ms"
op = "settle"
`)

	res, err := runScript(sc, cfg, config.DefaultItems(), nil, replayOptions{})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if got, want := orderString(res.Order), "term,files,web,mail,music,notes"; got != want {
		t.Fatalf("order: got %s want %s", got, want)
	}
	last := res.Events[len(res.Events)-1]
	if last.Kind != "flight-landed" || !last.Forced {
		t.Fatalf("expected a forced landing, got %+v", last)
	}
}

func TestParseReplayScript_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "[[step]]\nop = \"down\"\nitme = \"a\"\n",
		"time goes back": "[[step]]\nat = \"10ms\"\nop = \"tick\"\n\n[[step]]\nat = \"5ms\"\nop = \"tick\"\n",
		"invalid toml":   "[[step]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseReplayScript(strings.NewReader(src), "test"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestApplyStep_Errors(t *testing.T) {
	s, err := dock.NewStrip(config.DefaultItems(), dock.Options{Measurer: dock.FixedOrigin{}})
	if err != nil {
		t.Fatalf("NewStrip: %v", err)
	}
	if err := applyStep(s, replayStep{Op: "wiggle"}, replayEpoch); err == nil {
		t.Fatalf("expected unknown op error")
	}
	if err := applyStep(s, replayStep{Op: "down"}, replayEpoch); err == nil {
		t.Fatalf("expected missing item error")
	}
}

func TestReplayCmd(t *testing.T) {
	home := isolate(t)
	p := writeFile(t, home, "drag.toml", dragInsideScript)

	out, _, err := runCLI(t, []string{"replay", p})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	d, _ := mustData(t, out).(map[string]any)
	order, _ := d["order"].([]any)
	if len(order) != 6 || order[2] != "term" {
		t.Fatalf("order: %#v", order)
	}
	frame, _ := d["frame"].(map[string]any)
	if frame["dragState"] != "idle" {
		t.Fatalf("frame: %#v", frame)
	}

	out, _, err = runCLI(t, []string{"--format", "toml", "replay", p})
	if err != nil {
		t.Fatalf("replay toml: %v", err)
	}
	if !strings.Contains(string(out), `kind = "flight-landed"`) {
		t.Fatalf("unexpected toml:\n%s", string(out))
	}
}

func TestRunScript_SettleKeepsLaterSteps(t *testing.T) {
	cfg := mustDefaults(t)
	src := dragInsideScript + `
[[step]]
at = "1s"
op = "enter"
index = 4
`

	res, err := runScript(mustScript(t, src), cfg, config.DefaultItems(), nil, replayOptions{Settle: true})
	if err != nil {
		t.Fatalf("runScript: %v", err)
	}
	if want := replayEpoch.Add(time.Second); !res.Frame.At.Equal(want) {
		t.Fatalf("frame at: got %s want %s", res.Frame.At, want)
	}
	if res.Frame.Flight != nil || res.Frame.Hovered != 4 {
		t.Fatalf("expected a landed flight and slot 4 hovered, got %+v", res.Frame)
	}

	var hover []replayEvent
	for _, ev := range res.Events {
		if ev.Kind == "hover-changed" {
			hover = append(hover, ev)
		}
	}
	if len(hover) == 0 {
		t.Fatalf("expected hover events")
	}
	for _, ev := range hover {
		if ev.At == "" {
			t.Fatalf("hover event without a time: %+v", ev)
		}
	}
	if last := hover[len(hover)-1]; last.At != "1s" || last.To != 4 {
		t.Fatalf("last hover: got %+v", last)
	}
}
