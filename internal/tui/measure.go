package tui

import (
	"dock-cli/internal/dock"

	zone "github.com/lrstanley/bubblezone"
)

const stripZoneID = "dock-strip"

// zoneMeasurer reports where the strip was last drawn, as recorded by bubblezone when the
// frame was scanned.
type zoneMeasurer struct {
	zones *zone.Manager
}

func (z zoneMeasurer) MeasureStripOrigin() (dock.Point, error) {
	info := z.zones.Get(stripZoneID)
	if info == nil || info.IsZero() {
		return dock.Point{}, dock.LayoutUnavailableError{Reason: "strip not drawn yet"}
	}
	return dock.Point{X: info.StartX, Y: info.StartY}, nil
}
