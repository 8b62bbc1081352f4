package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Terminal apps can't change the user's font. Instead we choose between Unicode and ASCII
// glyph sets for tile borders and affordances, for terminals that render box drawing poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference applies the configured set; DOCK_GLYPHS overrides it.
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DOCK_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	if gs, ok := parseGlyphs(v); ok {
		setGlyphs(gs)
	}
}

func parseGlyphs(v string) (glyphSet, bool) {
	switch v {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphsName(gs glyphSet) string {
	switch gs {
	case glyphSetASCII:
		return "ASCII"
	default:
		return "Unicode"
	}
}

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

var asciiDashedBorder = lipgloss.Border{
	Top: ".", Bottom: ".", Left: ":", Right: ":",
	TopLeft: ".", TopRight: ".", BottomLeft: ":", BottomRight: ":",
}

var unicodeDashedBorder = lipgloss.Border{
	Top: "╌", Bottom: "╌", Left: "╎", Right: "╎",
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
}

func glyphTileBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return asciiBorder
	}
	return lipgloss.RoundedBorder()
}

// glyphPlaceholderBorder outlines the slot a dragged item left behind.
func glyphPlaceholderBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return asciiDashedBorder
	}
	return unicodeDashedBorder
}

func glyphLiftedBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return asciiBorder
	}
	return lipgloss.ThickBorder()
}

func glyphTooltipArrow() string {
	if glyphs() == glyphSetASCII {
		return "^"
	}
	return "▲"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "…"
}
