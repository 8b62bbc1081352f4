package dock

import "fmt"

// Point is a terminal cell position (column, row).
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is a half-open cell rectangle: [X, X+W) x [Y, Y+H).
type Rect struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
	W int `json:"w" toml:"w"`
	H int `json:"h" toml:"h"`
}

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation accepts "horizontal"/"h" and "vertical"/"v".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation: %s", s)
	}
}

// Layout maps order indices to slot rectangles and back. It is a value computed from the
// strip's measured origin for one layout pass; nothing here survives a re-measure.
type Layout struct {
	Origin      Point
	SlotWidth   int
	SlotHeight  int
	Count       int
	Orientation Orientation
}

// pitch is the distance between consecutive slot origins along the main axis.
func (l Layout) pitch() int {
	if l.Orientation == Vertical {
		return l.SlotHeight
	}
	return l.SlotWidth
}

func (l Layout) SlotOrigin(i int) Point {
	if l.Orientation == Vertical {
		return Point{X: l.Origin.X, Y: l.Origin.Y + i*l.SlotHeight}
	}
	return Point{X: l.Origin.X + i*l.SlotWidth, Y: l.Origin.Y}
}

func (l Layout) SlotRect(i int) Rect {
	o := l.SlotOrigin(i)
	return Rect{X: o.X, Y: o.Y, W: l.SlotWidth, H: l.SlotHeight}
}

func (l Layout) Bounds() Rect {
	if l.Orientation == Vertical {
		return Rect{X: l.Origin.X, Y: l.Origin.Y, W: l.SlotWidth, H: l.Count * l.SlotHeight}
	}
	return Rect{X: l.Origin.X, Y: l.Origin.Y, W: l.Count * l.SlotWidth, H: l.SlotHeight}
}

func (l Layout) Contains(p Point) bool {
	return l.valid() && l.Bounds().Contains(p)
}

func (l Layout) valid() bool {
	return l.SlotWidth > 0 && l.SlotHeight > 0 && l.Count > 0
}

// IndexAtOffset returns the slot under p, or ok=false when p is outside the strip.
func (l Layout) IndexAtOffset(p Point) (int, bool) {
	if !l.Contains(p) {
		return -1, false
	}
	d := p.Sub(l.Origin)
	if l.Orientation == Vertical {
		return d.Y / l.SlotHeight, true
	}
	return d.X / l.SlotWidth, true
}

// IndexAtOffsetInset is IndexAtOffset restricted to the part of each slot that lies at least
// band cells inside its edges along the main axis. Points in the band around a boundary
// report no slot, so a pointer resting on a boundary cannot flip between neighbours.
func (l Layout) IndexAtOffsetInset(p Point, band int) (int, bool) {
	i, ok := l.IndexAtOffset(p)
	if !ok || band <= 0 {
		return i, ok
	}
	pitch := l.pitch()
	if 2*band >= pitch {
		// Slots too small for a band; fall back to the plain inverse.
		return i, ok
	}
	d := p.Sub(l.SlotOrigin(i))
	along := d.X
	if l.Orientation == Vertical {
		along = d.Y
	}
	if along < band || along >= pitch-band {
		return -1, false
	}
	return i, true
}

// ClampIndex limits i to [0, Count-1]. An empty layout clamps to 0.
func (l Layout) ClampIndex(i int) int {
	return clampIndex(i, l.Count)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
