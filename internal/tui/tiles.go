package tui

import (
	"strings"

	"dock-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// tile is what the strip hands back for each item in a render pass. Drawing is deferred
// until the compositor knows whether the tile sits in its slot or is lifted (ghost/flight).
type tile struct {
	item     model.Item
	dragging bool
	hovered  bool
}

func newTile(it model.Item, dragging, hovered bool) tile {
	return tile{item: it, dragging: dragging, hovered: hovered}
}

// render draws the tile at w x h cells, borders included.
func (t tile) render(w, h int, lifted bool) string {
	innerW, innerH := w-2, h-2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	st := lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center)

	switch {
	case lifted:
		st = st.Border(glyphLiftedBorder()).BorderForeground(colorAccent).Bold(true)
	case t.dragging:
		// The slot the dragged item will land in.
		st = faintIfDark(st.Border(glyphPlaceholderBorder()).BorderForeground(colorMuted).Foreground(colorMuted))
	case t.hovered:
		st = st.Border(glyphTileBorder()).BorderForeground(colorHoverBorder).Bold(true)
	default:
		st = st.Border(glyphTileBorder()).BorderForeground(colorTileBorder)
	}

	return st.Render(t.content(innerW, innerH, t.dragging && !lifted))
}

func (t tile) content(w, h int, placeholder bool) string {
	label := xansi.Truncate(t.item.Label, w, glyphEllipsis())
	icon := strings.TrimSpace(t.item.Icon)
	if icon == "" || placeholder {
		return label
	}
	iconSt := lipgloss.NewStyle()
	if c := strings.TrimSpace(t.item.Color); c != "" {
		iconSt = iconSt.Foreground(lipgloss.Color(c))
	}
	if h < 2 {
		return xansi.Truncate(iconSt.Render(icon)+" "+t.item.Label, w, glyphEllipsis())
	}
	return iconSt.Render(xansi.Truncate(icon, w, "")) + "\n" + label
}

// tooltipView is the hover label shown next to a slot.
func tooltipView(label string, maxW int) string {
	if maxW < 4 {
		return ""
	}
	body := xansi.Truncate(label, maxW-2, glyphEllipsis())
	return styleTooltip().Render(body)
}
