package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"dock-cli/internal/config"
	"dock-cli/internal/dock"
	"dock-cli/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// replayScript is a headless pointer session. Steps run in order; At is the offset from the
// start of the session and must not decrease.
type replayScript struct {
	Origin *dock.Point  `toml:"origin"`
	Step   []replayStep `toml:"step"`
}

type replayStep struct {
	At     time.Duration `toml:"at"`
	Op     string        `toml:"op"`
	Item   string        `toml:"item"`
	X      int           `toml:"x"`
	Y      int           `toml:"y"`
	Index  int           `toml:"index"`
	Inside *bool         `toml:"inside"`
}

type replayEvent struct {
	At     string `json:"at" toml:"at"`
	Kind   string `json:"kind" toml:"kind"`
	ItemID string `json:"itemId,omitempty" toml:"item_id,omitempty"`
	From   int    `json:"from" toml:"from"`
	To     int    `json:"to" toml:"to"`
	Forced bool   `json:"forced,omitempty" toml:"forced,omitempty"`
}

type replayResult struct {
	Order  []model.ItemID `json:"order" toml:"order"`
	Frame  dock.Frame     `json:"frame" toml:"frame"`
	Events []replayEvent  `json:"events" toml:"events"`
}

// replayEpoch anchors script offsets so output is reproducible.
var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func newReplayCmd(app *App) *cobra.Command {
	var settle bool
	var ticks bool

	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Run a scripted pointer session against the dock and print the result",
		Long: strings.TrimSpace(`
Runs [[step]] entries from a TOML script against a headless strip and prints the final
order, a frame snapshot and the events the strip published.

Each step has an "op" (down, move, up, enter, exit, cancel, tick, drag-start, drag-hover,
drag-end, settle) and an "at" offset such as "120ms". Pointer ops take x and y; item ops
take item; enter and exit take index; drag-end takes inside (default true).
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, items, err := loadSettingsAndItems(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sc, err := readReplayScript(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			log, closeLog, err := openLogger(app.DebugLog)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeLog()

			res, err := runScript(sc, cfg, items, log, replayOptions{Settle: settle, KeepTicks: ticks})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().BoolVar(&settle, "settle", true, "Let any flight in the air land before the final snapshot")
	cmd.Flags().BoolVar(&ticks, "ticks", false, "Include flight-tick and drag-moved events in the output")
	return cmd
}

func readReplayScript(path string) (replayScript, error) {
	var r io.Reader = os.Stdin
	name := "stdin"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return replayScript{}, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
		name = path
	}
	return parseReplayScript(r, name)
}

func parseReplayScript(r io.Reader, name string) (replayScript, error) {
	var sc replayScript
	md, err := toml.NewDecoder(r).Decode(&sc)
	if err != nil {
		return replayScript{}, fmt.Errorf("parse %s: %w", name, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return replayScript{}, fmt.Errorf("parse %s: unknown key %q", name, und[0].String())
	}
	var last time.Duration
	for i, st := range sc.Step {
		if st.At < last {
			return replayScript{}, fmt.Errorf("parse %s: step %d: at %s is before the previous step (%s)", name, i+1, st.At, last)
		}
		last = st.At
	}
	return sc, nil
}

type replayOptions struct {
	Settle    bool
	KeepTicks bool
}

// runScript drives a fresh strip through the script's steps.
func runScript(sc replayScript, cfg config.Config, items []model.Item, log *slog.Logger, ro replayOptions) (replayResult, error) {
	origin := dock.Point{}
	if sc.Origin != nil {
		origin = *sc.Origin
	}
	opts := cfg.EngineOptions(log)
	opts.Measurer = dock.FixedOrigin(origin)

	s, err := dock.NewStrip(items, opts)
	if err != nil {
		return replayResult{}, err
	}

	res := replayResult{Events: []replayEvent{}}
	sub := s.Subscribe(func(ev dock.Event) {
		if !ro.KeepTicks && (ev.Kind == dock.EventFlightTick || ev.Kind == dock.EventDragMoved) {
			return
		}
		at := ""
		if !ev.At.IsZero() {
			at = ev.At.Sub(replayEpoch).String()
		}
		res.Events = append(res.Events, replayEvent{
			At:     at,
			Kind:   ev.Kind.String(),
			ItemID: ev.ItemID.String(),
			From:   ev.From,
			To:     ev.To,
			Forced: ev.Forced,
		})
	})
	defer sub.Cancel()

	now := replayEpoch
	for i, st := range sc.Step {
		now = replayEpoch.Add(st.At)
		if err := applyStep(s, st, now); err != nil {
			return replayResult{}, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}

	if ro.Settle {
		if f, ok := s.Flight(); ok {
			if landing := f.StartedAt.Add(f.Duration); landing.After(now) {
				now = landing
			}
			s.Tick(now)
		}
	}

	res.Order = s.Order()
	res.Frame = s.Snapshot(now)
	return res, nil
}

func applyStep(s *dock.Strip, st replayStep, now time.Time) error {
	p := dock.Point{X: st.X, Y: st.Y}
	id := model.ItemID(strings.TrimSpace(st.Item))
	needItem := func() error {
		if id == "" {
			return fmt.Errorf("item is required")
		}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(st.Op)) {
	case "down":
		if err := needItem(); err != nil {
			return err
		}
		return s.PointerDown(id, p, now)
	case "move":
		return s.PointerMove(p, now)
	case "up":
		return s.PointerUp(p, now)
	case "enter":
		s.PointerEnter(st.Index, now)
	case "exit":
		s.PointerExit(st.Index, now)
	case "cancel":
		return s.CancelDrag(now)
	case "tick":
		s.Tick(now)
	case "settle":
		s.Settle(now)
	case "drag-start":
		if err := needItem(); err != nil {
			return err
		}
		return s.DragStart(id, p, now)
	case "drag-hover":
		s.DragHover(p, now)
	case "drag-end":
		if err := needItem(); err != nil {
			return err
		}
		inside := true
		if st.Inside != nil {
			inside = *st.Inside
		}
		return s.DragEnd(id, p, inside, now)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}
