package cli

import (
	"fmt"
	"os"

	"dock-cli/internal/config"

	"github.com/spf13/cobra"
)

// configOut mirrors config.Config with durations rendered the way they are written in files.
type configOut struct {
	Strip  config.StripConfig  `json:"strip" toml:"strip"`
	Drag   config.DragConfig   `json:"drag" toml:"drag"`
	Flight flightOut           `json:"flight" toml:"flight"`
	Engine config.EngineConfig `json:"engine" toml:"engine"`
	UI     config.UIConfig     `json:"ui" toml:"ui"`
	Items  config.ItemsConfig  `json:"items" toml:"items"`
}

type flightOut struct {
	Duration      string `json:"duration" toml:"duration"`
	FrameInterval string `json:"frame_interval" toml:"frame_interval"`
}

func newConfigOut(c config.Config) configOut {
	return configOut{
		Strip: c.Strip,
		Drag:  c.Drag,
		Flight: flightOut{
			Duration:      c.Flight.Duration.String(),
			FrameInterval: c.Flight.FrameInterval.String(),
		},
		Engine: c.Engine,
		UI:     c.UI,
		Items:  c.Items,
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration (defaults, file, env and flags merged)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": newConfigOut(cfg)})
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, fmt.Errorf("config already exists: %s (use --force to overwrite)", path))
			}
			// Start from defaults and flags; an existing file is replaced, not merged.
			cfg, err := config.Defaults()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cfg, err = applyFlags(cmd, app, cfg); err != nil {
				return writeErr(cmd, err)
			}
			written, err := config.Save(cfg, path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": written}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}
