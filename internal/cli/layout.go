package cli

import (
	"fmt"
	"strconv"
	"strings"

	"dock-cli/internal/dock"
	"dock-cli/internal/model"

	"github.com/spf13/cobra"
)

type slotOut struct {
	Index  int        `json:"index" toml:"index"`
	ItemID string     `json:"itemId,omitempty" toml:"item_id,omitempty"`
	Rect   dock.Rect  `json:"rect" toml:"rect"`
	Center dock.Point `json:"center" toml:"center"`
}

type layoutOut struct {
	Orientation string    `json:"orientation" toml:"orientation"`
	Bounds      dock.Rect `json:"bounds" toml:"bounds"`
	Slots       []slotOut `json:"slots" toml:"slots"`
}

func newLayoutCmd(app *App) *cobra.Command {
	var origin string
	var count int

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print slot rectangles for the configured strip geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, items, err := loadSettingsAndItems(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			o, err := parsePoint(origin)
			if err != nil {
				return writeErr(cmd, err)
			}
			n := len(items)
			if cmd.Flags().Changed("count") {
				if count <= 0 {
					return writeErr(cmd, fmt.Errorf("--count must be > 0"))
				}
				n = count
			}
			orient, err := dock.ParseOrientation(cfg.Strip.Orientation)
			if err != nil {
				return writeErr(cmd, err)
			}
			l := dock.Layout{
				Origin:      o,
				SlotWidth:   cfg.Strip.SlotWidth,
				SlotHeight:  cfg.Strip.SlotHeight,
				Count:       n,
				Orientation: orient,
			}
			return writeOut(cmd, app, map[string]any{"data": describeLayout(l, items)})
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "0,0", "Screen cell of slot 0 (X,Y)")
	cmd.Flags().IntVar(&count, "count", 0, "Number of slots (default: number of items)")
	return cmd
}

func describeLayout(l dock.Layout, items []model.Item) layoutOut {
	out := layoutOut{Orientation: l.Orientation.String(), Bounds: l.Bounds()}
	for i := 0; i < l.Count; i++ {
		r := l.SlotRect(i)
		s := slotOut{
			Index:  i,
			Rect:   r,
			Center: dock.Point{X: r.X + r.W/2, Y: r.Y + r.H/2},
		}
		if i < len(items) {
			s.ItemID = items[i].ID.String()
		}
		out.Slots = append(out.Slots, s)
	}
	return out
}

// parsePoint accepts "X,Y".
func parsePoint(s string) (dock.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return dock.Point{}, fmt.Errorf("invalid point %q (want X,Y)", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return dock.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return dock.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return dock.Point{X: x, Y: y}, nil
}
