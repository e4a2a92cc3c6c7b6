// Package tui is the interactive dashboard: several charts and an optional
// standalone legend sharing one highlight group.
package tui

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/akasprzok/tandem/internal/chartview"
	"github.com/akasprzok/tandem/internal/config"
	"github.com/akasprzok/tandem/internal/highlight"
	"github.com/akasprzok/tandem/internal/legend"
	"github.com/akasprzok/tandem/internal/prometheus"
	"github.com/akasprzok/tandem/internal/visibility"
	"github.com/charmbracelet/bubbles/spinner"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is the fallback terminal width when detection fails.
	DefaultTerminalWidth = 80

	// ChartWidthPadding is the border and padding around a chart panel.
	ChartWidthPadding = 4

	// ReadoutRows is the page size of the value readout.
	ReadoutRows = 5

	// FetchConcurrency bounds simultaneous Prometheus queries.
	FetchConcurrency = 4
)

// State is the dashboard's data state.
type State int

const (
	StateLoading State = iota
	StateReady
)

// panel is one chart of the dashboard with its cursor.
type panel struct {
	cfg      config.Chart
	view     *chartview.Chart
	warnings v1.Warnings
	err      error

	// cursor addresses the point the keyboard hovers.
	cursorSeries int
	cursorPoint  int
	hovering     bool
}

// board is the live chart state shared by every copy of Model.
type board struct {
	group  *highlight.Group
	panels []*panel
	legend *legend.Legend
}

// target is a focus stop: a chart, or a legend.
type target struct {
	panel  int
	legend *legend.Legend
}

// Model is the dashboard Bubble Tea model.
type Model struct {
	dashboard *config.Dashboard
	client    prometheus.Client
	now       func() time.Time

	board   *board
	targets []target
	focus   int
	hovered *legend.Legend

	state    State
	fetching bool
	updated  time.Time
	spinner  spinner.Model
	width    int
	height   int
}

// New builds the dashboard. client may be nil when no chart runs a query.
func New(d *config.Dashboard, client prometheus.Client) (Model, error) {
	if client == nil && d.UsesPrometheus() {
		return Model{}, fmt.Errorf("dashboard %q runs queries but no prometheus url is set", d.Title)
	}
	m := Model{
		dashboard: d,
		client:    client,
		now:       time.Now,
		board:     &board{group: highlight.NewGroup()},
		state:     StateReady,
		spinner:   NewLoadingSpinner(),
	}

	for i, cfg := range d.Charts {
		p, err := m.board.newPanel(cfg)
		if err != nil {
			return Model{}, fmt.Errorf("chart %q: %w", cfg.ID, err)
		}
		m.board.panels = append(m.board.panels, p)
		m.targets = append(m.targets, target{panel: i})
		if l := p.view.Legend(); l != nil {
			m.targets = append(m.targets, target{panel: i, legend: l})
		}
	}

	if d.Legend.Enabled {
		l, err := legend.New(legend.Props{
			OnVisibleItemsChange: m.board.setVisible,
			PageSize:             d.Legend.PageSize,
		})
		if err != nil {
			return Model{}, fmt.Errorf("standalone legend: %w", err)
		}
		l.Join(m.board.group)
		m.board.legend = l
		m.targets = append(m.targets, target{panel: -1, legend: l})
	}

	if d.UsesPrometheus() {
		m.state = StateLoading
		m.fetching = true
	}
	m.board.refreshLegend()
	return m, nil
}

func (b *board) newPanel(cfg config.Chart) (*panel, error) {
	p := &panel{cfg: cfg}
	props := chartview.Props{
		Group:          b.group,
		Legend:         cfg.Legend,
		LegendPageSize: cfg.PageSize,
		OnItemHighlight: func(ev highlight.Event) {
			log.Printf("chart %s: highlight %q (%s)", cfg.ID, ev.Identity, ev.Origin)
		},
		OnClearHighlight: func(ev highlight.Event) {
			log.Printf("chart %s: clear highlight (%s)", cfg.ID, ev.Origin)
		},
		OnToggleVisibleItems: func(ids []string) {
			log.Printf("chart %s: visible items %v", cfg.ID, ids)
		},
	}
	if cfg.Visible != nil {
		props.VisibleItems = visibility.NewSet(cfg.Visible...)
		props.Controlled = true
	}
	if cfg.Query == "" {
		props.Options = cfg.Options(nil)
	}
	view, err := chartview.New(props)
	if err != nil {
		return nil, err
	}
	p.view = view
	if cfg.Query == "" {
		view.Render()
	}
	return p, nil
}

// setVisible applies a standalone legend toggle to every chart.
func (b *board) setVisible(ids []string) {
	for _, p := range b.panels {
		if err := p.view.SetVisibleItems(ids); err != nil {
			log.Printf("chart %s: %v", p.cfg.ID, err)
		}
	}
	b.refreshLegend()
}

// refreshLegend rebuilds the standalone legend from every rendered chart,
// first chart first.
func (b *board) refreshLegend() {
	if b.legend == nil {
		return
	}
	var items []legend.Item
	seen := map[string]bool{}
	for _, p := range b.panels {
		if !p.view.Rendered() {
			continue
		}
		built := legend.Build(p.view.Engine().Items(), p.view.Visible(), p.view.Highlight())
		for _, it := range built {
			if seen[it.Identity] {
				continue
			}
			seen[it.Identity] = true
			items = append(items, it)
		}
	}
	b.legend.SetItems(items)
}

func (m Model) focused() target {
	if len(m.targets) == 0 {
		return target{panel: -1}
	}
	return m.targets[m.focus]
}

func (m Model) chartWidth() int {
	width := m.width - ChartWidthPadding
	if m.width <= 0 {
		termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err == nil && termWidth > 0 {
			width = termWidth - ChartWidthPadding
		} else {
			width = DefaultTerminalWidth - ChartWidthPadding
		}
	}
	return max(width, 10)
}
