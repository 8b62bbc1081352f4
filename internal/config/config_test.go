package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dock-cli/internal/dock"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOCK_CONFIG", "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Strip.SlotWidth != dock.DefaultSlotWidth || c.Strip.SlotHeight != dock.DefaultSlotHeight {
		t.Fatalf("slot size: got %dx%d", c.Strip.SlotWidth, c.Strip.SlotHeight)
	}
	if c.Flight.Duration != dock.DefaultFlightDuration {
		t.Fatalf("flight duration: got %s want %s", c.Flight.Duration, dock.DefaultFlightDuration)
	}
	if c.Flight.FrameInterval != 16*time.Millisecond {
		t.Fatalf("frame interval: got %s", c.Flight.FrameInterval)
	}
	if c.UI.Glyphs != "unicode" || !c.UI.Tooltips || c.Engine.Strict {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "dock.toml")
	src := `
[strip]
slot_width = 12
orientation = "vertical"

[flight]
duration = "200ms"

[items]
file = "items.toml"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DOCK_CONFIG", path)
	t.Setenv("DOCK_ENGINE_STRICT", "true")
	t.Setenv("DOCK_DRAG_HYSTERESIS", "2")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Strip.SlotWidth != 12 || c.Strip.Orientation != "vertical" {
		t.Fatalf("strip: got %+v", c.Strip)
	}
	if c.Flight.Duration != 200*time.Millisecond {
		t.Fatalf("duration: got %s want 200ms", c.Flight.Duration)
	}
	if !c.Engine.Strict || c.Drag.Hysteresis != 2 {
		t.Fatalf("env overrides: strict %v hysteresis %d", c.Engine.Strict, c.Drag.Hysteresis)
	}
	if c.Items.File != "items.toml" {
		t.Fatalf("items.file: got %q", c.Items.File)
	}

	opts := c.EngineOptions(nil)
	if opts.Orientation != dock.Vertical || opts.SlotWidth != 12 || !opts.Strict {
		t.Fatalf("engine options: got %+v", opts)
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("DOCK_STRIP_ORIENTATION", "diagonal")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown orientation")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	home := isolate(t)
	if _, err := Load(filepath.Join(home, "nope.toml")); err == nil {
		t.Fatalf("expected error for a missing explicit config file")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	home := isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Strip.SlotHeight = 7
	c.Flight.Duration = 750 * time.Millisecond
	c.UI.Glyphs = "ascii"

	path, err := Save(c, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(home, ".config", "dock", "config.toml"); path != want {
		t.Fatalf("path: got %s want %s", path, want)
	}
	got, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Strip.SlotHeight != 7 || got.Flight.Duration != 750*time.Millisecond || got.UI.Glyphs != "ascii" {
		t.Fatalf("reloaded: got %+v", got)
	}
}
