package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/akasprzok/tandem/internal/chartview"
	"github.com/akasprzok/tandem/internal/config"
	"github.com/akasprzok/tandem/internal/highlight"
	"github.com/akasprzok/tandem/internal/legend"
	"github.com/akasprzok/tandem/internal/prometheus"
	"github.com/akasprzok/tandem/internal/visibility"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

// DefaultTerminalWidth is the fallback terminal width when detection fails.
const DefaultTerminalWidth = 80

// RenderCmd renders every chart of a dashboard once.
type RenderCmd struct {
	Source
	Visible   []string `help:"Show only these items in every chart." placeholder:"ITEM"`
	Highlight string   `help:"Highlight this item in every chart."`
	Width     int      `help:"Chart width. Defaults to the terminal width."`
	Output    string   `name:"output" short:"o" help:"Output format." default:"text" enum:"text,yaml"`
}

func (r *RenderCmd) Run(ctx *Context) error {
	d, client, err := r.Load(ctx.Timeout)
	if err != nil {
		return err
	}
	width := r.Width
	if width <= 0 {
		width = terminalWidth()
	}
	return render(os.Stdout, d, client, renderOptions{
		visible:   r.Visible,
		highlight: r.Highlight,
		width:     width,
		output:    r.Output,
		now:       time.Now(),
	})
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultTerminalWidth
	}
	return w
}

type renderOptions struct {
	visible   []string
	highlight string
	width     int
	output    string
	now       time.Time
}

type renderedChart struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title,omitempty"`
	Error       string         `yaml:"error,omitempty"`
	Warnings    []string       `yaml:"warnings,omitempty"`
	Visible     []string       `yaml:"visible"`
	Highlighted string         `yaml:"highlighted,omitempty"`
	Legend      []renderedItem `yaml:"legend"`

	view *chartview.Chart
}

type renderedItem struct {
	Identity    string `yaml:"identity"`
	Label       string `yaml:"label"`
	Color       string `yaml:"color"`
	Visible     bool   `yaml:"visible"`
	Highlighted bool   `yaml:"highlighted,omitempty"`
}

func render(w io.Writer, d *config.Dashboard, client prometheus.Client, opts renderOptions) error {
	group := highlight.NewGroup()
	out := make([]renderedChart, 0, len(d.Charts))
	for _, cfg := range d.Charts {
		rc, err := renderChart(cfg, d, client, group, opts)
		if err != nil {
			return fmt.Errorf("chart %q: %w", cfg.ID, err)
		}
		out = append(out, rc)
	}

	if opts.output == "yaml" {
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshaling render output: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	var s strings.Builder
	for _, rc := range out {
		title := rc.Title
		if title == "" {
			title = rc.ID
		}
		s.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
		s.WriteString("\n")
		for _, warning := range rc.Warnings {
			s.WriteString("Warning: " + warning + "\n")
		}
		if rc.Error != "" {
			s.WriteString("Error: " + rc.Error + "\n\n")
			continue
		}
		s.WriteString(rc.view.View(opts.width, 0))
		s.WriteString("\n\n")
	}
	_, err := io.WriteString(w, s.String())
	return err
}

func renderChart(cfg config.Chart, d *config.Dashboard, client prometheus.Client, group *highlight.Group, opts renderOptions) (renderedChart, error) {
	rc := renderedChart{ID: cfg.ID, Title: cfg.Title}
	props := chartview.Props{Group: group, Legend: cfg.Legend, LegendPageSize: cfg.PageSize}
	if cfg.Visible != nil {
		props.VisibleItems = visibility.NewSet(cfg.Visible...)
		props.Controlled = true
	}
	view, err := chartview.New(props)
	if err != nil {
		return rc, err
	}
	rc.view = view

	if cfg.Query == "" {
		view.SetOptions(cfg.Options(nil))
	} else {
		series, warnings, err := prometheus.FetchSeries(context.Background(), client, cfg.ChartQuery(), d.Window(opts.now))
		rc.Warnings = warnings
		if err != nil {
			rc.Error = err.Error()
			return rc, nil
		}
		view.SetOptions(cfg.Options(series))
	}

	if len(opts.visible) > 0 {
		if err := view.SetVisibleItems(opts.visible); err != nil {
			return rc, err
		}
	}
	if opts.highlight != "" {
		if err := view.HighlightItems([]string{opts.highlight}); err != nil {
			return rc, err
		}
	}

	items := legend.Build(view.Engine().Items(), view.Visible(), view.Highlight())
	rc.Visible = legend.VisibleIDs(items)
	if hl := view.Highlight(); hl.Active {
		rc.Highlighted = hl.Identity
	}
	for _, it := range items {
		rc.Legend = append(rc.Legend, renderedItem{
			Identity:    it.Identity,
			Label:       it.Label,
			Color:       it.Marker.Color,
			Visible:     it.Visible,
			Highlighted: it.Highlighted,
		})
	}
	return rc, nil
}
