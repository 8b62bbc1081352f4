package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dock-cli/internal/dock"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Strip  StripConfig  `mapstructure:"strip" json:"strip" toml:"strip"`
	Drag   DragConfig   `mapstructure:"drag" json:"drag" toml:"drag"`
	Flight FlightConfig `mapstructure:"flight" json:"flight" toml:"flight"`
	Engine EngineConfig `mapstructure:"engine" json:"engine" toml:"engine"`
	UI     UIConfig     `mapstructure:"ui" json:"ui" toml:"ui"`
	Items  ItemsConfig  `mapstructure:"items" json:"items" toml:"items"`
}

// StripConfig holds slot geometry, in terminal cells.
type StripConfig struct {
	SlotWidth   int    `mapstructure:"slot_width" json:"slot_width" toml:"slot_width"`
	SlotHeight  int    `mapstructure:"slot_height" json:"slot_height" toml:"slot_height"`
	Orientation string `mapstructure:"orientation" json:"orientation" toml:"orientation"`
}

type DragConfig struct {
	Threshold  int `mapstructure:"threshold" json:"threshold" toml:"threshold"`
	Hysteresis int `mapstructure:"hysteresis" json:"hysteresis" toml:"hysteresis"`
}

type FlightConfig struct {
	Duration      time.Duration `mapstructure:"duration" json:"duration" toml:"duration"`
	FrameInterval time.Duration `mapstructure:"frame_interval" json:"frame_interval" toml:"frame_interval"`
}

type EngineConfig struct {
	Strict bool `mapstructure:"strict" json:"strict" toml:"strict"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Glyphs   string `mapstructure:"glyphs" json:"glyphs" toml:"glyphs"`
	Tooltips bool   `mapstructure:"tooltips" json:"tooltips" toml:"tooltips"`
	Help     bool   `mapstructure:"help" json:"help" toml:"help"`
}

type ItemsConfig struct {
	File string `mapstructure:"file" json:"file" toml:"file"`
}

// DefaultPath is where Load looks when neither an explicit path nor DOCK_CONFIG is set.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "dock", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strip.slot_width", dock.DefaultSlotWidth)
	v.SetDefault("strip.slot_height", dock.DefaultSlotHeight)
	v.SetDefault("strip.orientation", "horizontal")
	v.SetDefault("drag.threshold", dock.DefaultDragThreshold)
	v.SetDefault("drag.hysteresis", dock.DefaultHysteresis)
	v.SetDefault("flight.duration", dock.DefaultFlightDuration)
	v.SetDefault("flight.frame_interval", 16*time.Millisecond)
	v.SetDefault("engine.strict", false)
	v.SetDefault("ui.glyphs", "unicode")
	v.SetDefault("ui.tooltips", true)
	v.SetDefault("ui.help", true)
	v.SetDefault("items.file", "")
}

// Load reads configuration from file and env. path overrides DOCK_CONFIG; env var overrides
// use prefix DOCK_ (DOCK_FLIGHT_DURATION=500ms).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("DOCK_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; a named file that cannot be read is not.
		var nf viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v)
}

// Defaults returns the built-in settings with DOCK_ env overrides applied, ignoring any
// config file.
func Defaults() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the engine cannot use.
func (c Config) Validate() error {
	if c.Strip.SlotWidth <= 0 || c.Strip.SlotHeight <= 0 {
		return fmt.Errorf("invalid slot size %dx%d", c.Strip.SlotWidth, c.Strip.SlotHeight)
	}
	if _, err := dock.ParseOrientation(c.Strip.Orientation); err != nil {
		return err
	}
	if c.Drag.Threshold < 1 {
		return fmt.Errorf("drag.threshold must be at least 1, got %d", c.Drag.Threshold)
	}
	if c.Drag.Hysteresis < 0 {
		return fmt.Errorf("drag.hysteresis must not be negative, got %d", c.Drag.Hysteresis)
	}
	if c.Flight.Duration < 0 {
		return fmt.Errorf("flight.duration must not be negative, got %s", c.Flight.Duration)
	}
	if c.Flight.FrameInterval <= 0 {
		return fmt.Errorf("flight.frame_interval must be positive, got %s", c.Flight.FrameInterval)
	}
	switch c.UI.Glyphs {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("ui.glyphs must be unicode or ascii, got %q", c.UI.Glyphs)
	}
	return nil
}

// EngineOptions maps the settings onto dock.Options. The caller supplies the measurer.
func (c Config) EngineOptions(log *slog.Logger) dock.Options {
	orient, _ := dock.ParseOrientation(c.Strip.Orientation)
	return dock.Options{
		SlotWidth:      c.Strip.SlotWidth,
		SlotHeight:     c.Strip.SlotHeight,
		Orientation:    orient,
		DragThreshold:  c.Drag.Threshold,
		Hysteresis:     c.Drag.Hysteresis,
		FlightDuration: c.Flight.Duration,
		Strict:         c.Engine.Strict,
		Logger:         log,
	}
}

// Save writes cfg to path (DefaultPath when empty), creating the directory if needed.
func Save(cfg Config, path string) (string, error) {
	if path == "" {
		path = os.Getenv("DOCK_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("strip.slot_width", cfg.Strip.SlotWidth)
	v.Set("strip.slot_height", cfg.Strip.SlotHeight)
	v.Set("strip.orientation", cfg.Strip.Orientation)
	v.Set("drag.threshold", cfg.Drag.Threshold)
	v.Set("drag.hysteresis", cfg.Drag.Hysteresis)
	v.Set("flight.duration", cfg.Flight.Duration.String())
	v.Set("flight.frame_interval", cfg.Flight.FrameInterval.String())
	v.Set("engine.strict", cfg.Engine.Strict)
	v.Set("ui.glyphs", cfg.UI.Glyphs)
	v.Set("ui.tooltips", cfg.UI.Tooltips)
	v.Set("ui.help", cfg.UI.Help)
	v.Set("items.file", cfg.Items.File)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
