package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dock and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Config.UI.Glyphs)

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	defer m.close()

	m.log.Info("dock started", "items", m.strip.Len(), "orientation", m.cfg.Strip.Orientation)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
