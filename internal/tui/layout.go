package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so blocks can be spliced at fixed cell offsets.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}

	return strings.Join(lines, "\n")
}

// fitLine pads or truncates ln to exactly width cells.
func fitLine(ln string, width int) string {
	// Bound the width computation on huge lines.
	if width > 0 && len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width <= 0 {
			return ""
		}
		ln = xansi.Cut(ln, 0, width)
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// canvas is a fixed-size grid of styled lines that blocks can be spliced into at
// absolute cell positions. Later placements draw over earlier ones.
type canvas struct {
	width, height int
	lines         []string
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{width: width, height: height, lines: make([]string, height)}
	blank := strings.Repeat(" ", width)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// canvasFrom wraps an already rendered screen.
func canvasFrom(s string, width, height int) *canvas {
	return &canvas{width: width, height: height, lines: strings.Split(normalizePane(s, width, height), "\n")}
}

// place draws block with its top-left cell at (x, y), clipping to the canvas.
func (c *canvas) place(x, y int, block string) {
	rows := strings.Split(block, "\n")
	bw := 0
	for _, r := range rows {
		if w := xansi.StringWidth(r); w > bw {
			bw = w
		}
	}
	for i, row := range rows {
		cy := y + i
		if cy < 0 || cy >= c.height {
			continue
		}
		vl, vr := 0, bw
		if x < 0 {
			vl = -x
		}
		if x+bw > c.width {
			vr = c.width - x
		}
		if vl >= vr {
			continue
		}
		row = xansi.Cut(fitLine(row, bw), vl, vr)
		left, right := x+vl, x+vr
		line := c.lines[cy]
		c.lines[cy] = xansi.Cut(line, 0, left) + "\x1b[0m" + row + "\x1b[0m" + xansi.Cut(line, right, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
