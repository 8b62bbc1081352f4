package tui

import (
	"fmt"
	"strings"
	"time"

	"dock-cli/internal/dock"

	"github.com/charmbracelet/lipgloss"
)

const headerRows = 2

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading…"
	}
	now := m.now()
	_, flying := m.strip.Flight()
	animating := flying || m.rs.slides.active(now)
	if !m.rs.dirty && !animating && m.rs.cacheW == m.width && m.rs.cacheH == m.height && m.rs.cache != "" {
		return m.rs.cache
	}

	fr := m.strip.Snapshot(now)
	pass := dock.Render[tile](fr, newTile)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(fr),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.zones.Mark(stripZoneID, m.stripView(fr, pass, now))),
	)
	screen := normalizePane(body, m.width, m.height-1) + "\n" + fitLine(m.footerView(fr), m.width)
	// Scan records where the strip landed for the next measurement and strips the markers.
	screen = m.zones.Scan(screen)

	cv := canvasFrom(screen, m.width, m.height)
	sw, sh := m.cfg.Strip.SlotWidth, m.cfg.Strip.SlotHeight
	if m.cfg.UI.Tooltips {
		m.placeTooltip(cv, fr)
	}
	if pass.Ghost != nil {
		cv.place(pass.Ghost.Pos.X, pass.Ghost.Pos.Y, pass.Ghost.View.render(sw, sh, true))
	}
	if pass.Overlay != nil {
		cv.place(pass.Overlay.Pos.X, pass.Overlay.Pos.Y, pass.Overlay.View.render(sw, sh, true))
	}
	if m.showHelp && m.cfg.UI.Help {
		m.placeHelp(cv)
	}

	out := cv.String()
	m.rs.cache, m.rs.cacheW, m.rs.cacheH = out, m.width, m.height
	m.rs.dirty = false
	return out
}

// stripView draws the in-place tiles on a strip-sized canvas. Positions come from a zero-origin
// layout so the block is independent of where it ends up on screen.
func (m appModel) stripView(fr dock.Frame, pass dock.RenderPass[tile], now time.Time) string {
	l := fr.Layout
	l.Origin = dock.Point{}
	b := l.Bounds()
	cv := newCanvas(b.W, b.H)
	for _, s := range pass.Slots {
		p := m.rs.slides.position(s.ItemID, s.Index, l, now)
		cv.place(p.X, p.Y, s.View.render(l.SlotWidth, l.SlotHeight, false))
	}
	return cv.String()
}

func (m appModel) headerView(fr dock.Frame) string {
	title := styleHeader().Render("dock")
	meta := fmt.Sprintf(" %s %d items %s %s", glyphBullet(), len(fr.Order), glyphBullet(), fr.DragState)
	return " " + title + styleMuted().Render(meta)
}

func (m appModel) footerView(fr dock.Frame) string {
	if m.flash != "" {
		if m.flashError {
			return styleFlashError().Render(m.flash)
		}
		return styleMuted().Render(" " + m.flash)
	}
	return " " + m.help.View(m.keys)
}

// placeTooltip draws the hovered item's label beside its slot: below a horizontal strip,
// to the right of a vertical one.
func (m appModel) placeTooltip(cv *canvas, fr dock.Frame) {
	id, ok := fr.HoveredItem()
	if !ok || !fr.LayoutOK {
		return
	}
	it, ok := fr.Items.Get(id)
	if !ok || strings.TrimSpace(it.Label) == "" {
		return
	}
	r := fr.Layout.SlotRect(fr.Hovered)
	if fr.Layout.Orientation == dock.Vertical {
		tip := tooltipView(it.Label, m.width-(r.X+r.W+1))
		cv.place(r.X+r.W+1, r.Y+r.H/2, tip)
		return
	}
	tip := tooltipView(it.Label, m.width)
	x := r.X + (r.W-lipgloss.Width(tip))/2
	if x < 0 {
		x = 0
	}
	cv.place(r.X+r.W/2, r.Y+r.H, styleMuted().Render(glyphTooltipArrow()))
	cv.place(x, r.Y+r.H+1, tip)
}

func (m appModel) placeHelp(cv *canvas) {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		return
	}
	body := renderMarkdown(helpMarkdown, w-4)
	box := lipgloss.NewStyle().
		Border(glyphTileBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" + body)
	x := (m.width - lipgloss.Width(box)) / 2
	y := (m.height - lipgloss.Height(box)) / 2
	if y < headerRows {
		y = headerRows
	}
	cv.place(x, y, box)
}
