package tui

import (
	"time"

	"dock-cli/internal/dock"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rs.dirty = true
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		tick := m.ensureTicking()
		return m, tea.Batch(cmd, tick)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		flying := m.strip.Tick(msg.at)
		sliding := m.rs.slides.active(msg.at)
		m.rs.dirty = true
		if flying || sliding {
			return m, m.tick()
		}
		m.ticking = false
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
			m.flashError = false
			m.rs.dirty = true
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := dock.Point{X: msg.X, Y: msg.Y}
	now := m.now()
	var err error
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if id, _, ok := m.strip.HitTest(p); ok {
			err = m.strip.PointerDown(id, p, now)
		}
	case tea.MouseActionMotion:
		err = m.strip.PointerMove(p, now)
	case tea.MouseActionRelease:
		err = m.strip.PointerUp(p, now)
	}
	if err != nil {
		m.log.Error("pointer event failed", "action", msg.Action, "x", msg.X, "y", msg.Y, "error", err)
		return m.setFlash(err.Error(), true)
	}
	return nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.showHelp && msg.String() == "q" {
			m.showHelp = false
			m.rs.dirty = true
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.showHelp {
			m.showHelp = false
			m.rs.dirty = true
			return m, nil
		}
		var flash tea.Cmd
		if err := m.strip.CancelDrag(m.now()); err != nil {
			flash = m.setFlash(err.Error(), true)
		}
		tick := m.ensureTicking()
		return m, tea.Batch(flash, tick)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.rs.dirty = true
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if err := copyToClipboard(m.orderText()); err != nil {
			m.log.Warn("clipboard write failed", "error", err)
			cmd := m.setFlash("Copy failed: "+err.Error(), true)
			return m, cmd
		}
		cmd := m.setFlash("Copied order", false)
		return m, cmd

	case key.Matches(msg, m.keys.Glyphs):
		if glyphs() == glyphSetASCII {
			setGlyphs(glyphSetUnicode)
		} else {
			setGlyphs(glyphSetASCII)
		}
		m.rs.dirty = true
		cmd := m.setFlash("Glyphs: "+glyphsName(glyphs()), false)
		return m, cmd
	}
	return m, nil
}

// setFlash shows a short status message in the footer.
func (m *appModel) setFlash(text string, isErr bool) tea.Cmd {
	m.flash = text
	m.flashError = isErr
	m.flashSeq++
	m.rs.dirty = true
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

// ensureTicking starts a frame loop when a flight or slide needs one.
func (m *appModel) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	_, flying := m.strip.Flight()
	if !flying && !m.rs.slides.active(m.now()) {
		return nil
	}
	m.ticking = true
	m.tickSeq++
	return m.tick()
}

func (m appModel) tick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.cfg.Flight.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg{seq: seq, at: t}
	})
}
