package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dock-cli/internal/config"
	"dock-cli/internal/format"
	"dock-cli/internal/model"
	"dock-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	ItemsPath  string
	Glyphs     string
	Strict     bool
	DebugLog   string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "dock",
		Short:        "A reorderable item strip for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dock
  dock

  # Use your own items
  dock --items ~/.config/dock/items.toml

  # Inspect what the dock would show
  dock items
  dock layout --origin 4,2

  # Run a scripted drag headlessly
  dock replay drag.toml --format toml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DOCK_CONFIG", ""), "Path to config.toml (default: ~/.config/dock/config.toml)")
	cmd.PersistentFlags().StringVar(&app.ItemsPath, "items", envOr("DOCK_ITEMS", ""), "Path to an item set (TOML [[item]] tables); overrides items.file")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", envOr("DOCK_GLYPHS", ""), "Glyph set (unicode|ascii)")
	cmd.PersistentFlags().BoolVar(&app.Strict, "strict", false, "Fail on unknown item ids instead of ignoring them")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("DOCK_DEBUG_LOG", ""), "Append debug logs to this file")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DOCK_FORMAT", "json"), "Output format (json|toml)")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newLayoutCmd(app))
	cmd.AddCommand(newReplayCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := loadSettings(cmd, app)
	if err != nil {
		return err
	}
	items, err := config.LoadItems(cfg.Items.File)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(app.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(tui.Options{Config: cfg, Items: items, Logger: log})
}

// loadSettings reads the viper config and applies command-line overrides.
func loadSettings(cmd *cobra.Command, app *App) (config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	return applyFlags(cmd, app, cfg)
}

func applyFlags(cmd *cobra.Command, app *App, cfg config.Config) (config.Config, error) {
	if cmd.Flags().Changed("strict") {
		cfg.Engine.Strict = app.Strict
	}
	if app.Glyphs != "" {
		cfg.UI.Glyphs = strings.ToLower(strings.TrimSpace(app.Glyphs))
	}
	if app.ItemsPath != "" {
		cfg.Items.File = app.ItemsPath
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadSettingsAndItems(cmd *cobra.Command, app *App) (config.Config, []model.Item, error) {
	cfg, err := loadSettings(cmd, app)
	if err != nil {
		return config.Config{}, nil, err
	}
	items, err := config.LoadItems(cfg.Items.File)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, items, nil
}

// openLogger returns a debug logger writing to path, or a discarding one when path is empty.
// The TUI owns the terminal, so logs never go to stderr.
func openLogger(path string) (*slog.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	return newLogger(f), f.Close, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
