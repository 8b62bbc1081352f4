package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dock-cli/internal/config"
	"dock-cli/internal/dock"
	"dock-cli/internal/model"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Options configures the interactive dock.
type Options struct {
	Config config.Config
	Items  []model.Item
	Logger *slog.Logger
	// Measurer overrides the bubblezone strip measurement (tests).
	Measurer dock.Measurer
}

// renderState is shared by all copies of appModel. The strip publishes into it from inside
// Update, and View reads it.
type renderState struct {
	strip  *dock.Strip
	slides *slideTracker
	dirty  bool
	cache  string
	cacheW int
	cacheH int
}

func (rs *renderState) onEvent(ev dock.Event) {
	rs.dirty = true
	switch ev.Kind {
	case dock.EventOrderChanged:
		l, _ := rs.strip.Layout()
		l.Origin = dock.Point{}
		rs.slides.observe(rs.strip.Order(), l, ev.At)
	case dock.EventFlightLanded:
		rs.slides.land(ev.ItemID)
	}
}

type appModel struct {
	cfg   config.Config
	strip *dock.Strip
	zones *zone.Manager
	log   *slog.Logger
	rs    *renderState
	sub   dock.Subscription

	keys keyMap
	help help.Model

	width  int
	height int

	showHelp bool

	flash      string
	flashError bool
	flashSeq   int

	ticking bool
	tickSeq int

	now func() time.Time
}

func newAppModel(opts Options) (appModel, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	zones := zone.New()

	engine := opts.Config.EngineOptions(log)
	engine.Measurer = opts.Measurer
	if engine.Measurer == nil {
		engine.Measurer = zoneMeasurer{zones: zones}
	}
	strip, err := dock.NewStrip(opts.Items, engine)
	if err != nil {
		zones.Close()
		return appModel{}, fmt.Errorf("build strip: %w", err)
	}

	rs := &renderState{
		strip:  strip,
		slides: newSlideTracker(strip.Order(), slideDuration),
		dirty:  true,
	}
	m := appModel{
		cfg:   opts.Config,
		strip: strip,
		zones: zones,
		log:   log,
		rs:    rs,
		keys:  defaultKeyMap(),
		help:  help.New(),
		now:   time.Now,
	}
	m.sub = strip.Subscribe(rs.onEvent)
	return m, nil
}

func (m appModel) close() {
	m.sub.Cancel()
	m.zones.Close()
}

func (m appModel) Init() tea.Cmd {
	return nil
}

// orderText is what `y` copies: one label per line, in strip order.
func (m appModel) orderText() string {
	cat := m.strip.Catalog()
	var b strings.Builder
	for _, id := range m.strip.Order() {
		it, _ := cat.Get(id)
		b.WriteString(it.Label)
		b.WriteByte('\n')
	}
	return b.String()
}
