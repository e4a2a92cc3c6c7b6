// Package config loads dashboard files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/prometheus"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"gopkg.in/yaml.v2"
)

const (
	DefaultRefresh  = 30 * time.Second
	DefaultRange    = time.Hour
	DefaultStep     = time.Minute
	DefaultPageSize = 5
)

var validTypes = map[string]bool{
	charts.TypeLine:       true,
	charts.TypeSpline:     true,
	charts.TypeArea:       true,
	charts.TypeColumn:     true,
	charts.TypeBar:        true,
	charts.TypePie:        true,
	charts.TypeGauge:      true,
	charts.TypeSolidGauge: true,
}

// Dashboard is a set of charts sharing one highlight.
type Dashboard struct {
	Title      string        `yaml:"title"`
	Prometheus string        `yaml:"prometheus"`
	Refresh    time.Duration `yaml:"refresh"`
	Range      time.Duration `yaml:"range"`
	Step       time.Duration `yaml:"step"`
	Legend     Legend        `yaml:"legend"`
	Charts     []Chart       `yaml:"charts"`
}

// Legend configures the standalone legend.
type Legend struct {
	Enabled  bool `yaml:"enabled"`
	PageSize int  `yaml:"page_size"`
}

// Chart is one chart of a dashboard. Its data comes either from Query or
// from static Series.
type Chart struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Type        string   `yaml:"type"`
	Query       string   `yaml:"query"`
	Instant     bool     `yaml:"instant"`
	LegendLabel string   `yaml:"legend_label"`
	Legend      bool     `yaml:"legend"`
	PageSize    int      `yaml:"page_size"`
	Visible     []string `yaml:"visible"`
	Axis        *Axis    `yaml:"axis"`
	Series      []Series `yaml:"series"`
}

// Axis is a value axis with optional color stops.
type Axis struct {
	Min   *float64 `yaml:"min"`
	Max   *float64 `yaml:"max"`
	Stops [][]any  `yaml:"stops"`
}

// Series is a static series.
type Series struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Color  string  `yaml:"color"`
	Points []Point `yaml:"points"`
}

// Point is a static point. X is RFC 3339 and may be empty for pie slices
// and gauges.
type Point struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	X     string   `yaml:"x"`
	Y     *float64 `yaml:"y"`
	Color string   `yaml:"color"`
}

// Load reads and validates the dashboard file at path.
func Load(path string) (*Dashboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dashboard: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a dashboard, filling in defaults.
func Parse(data []byte) (*Dashboard, error) {
	var d Dashboard
	if err := yaml.UnmarshalStrict(data, &d); err != nil {
		return nil, fmt.Errorf("parsing dashboard: %w", err)
	}
	if d.Refresh <= 0 {
		d.Refresh = DefaultRefresh
	}
	if d.Range <= 0 {
		d.Range = DefaultRange
	}
	if d.Step <= 0 {
		d.Step = DefaultStep
	}
	if d.Legend.PageSize <= 0 {
		d.Legend.PageSize = DefaultPageSize
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Dashboard) validate() error {
	if len(d.Charts) == 0 {
		return errors.New("dashboard has no charts")
	}
	seen := make(map[string]bool, len(d.Charts))
	for i := range d.Charts {
		c := &d.Charts[i]
		if c.ID == "" {
			return fmt.Errorf("chart %d: missing id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("chart %q: duplicate id", c.ID)
		}
		seen[c.ID] = true
		if err := c.validate(); err != nil {
			return fmt.Errorf("chart %q: %w", c.ID, err)
		}
	}
	return nil
}

func (c *Chart) validate() error {
	if c.Type == "" {
		c.Type = charts.TypeLine
	}
	if !validTypes[c.Type] {
		return fmt.Errorf("unknown type %q", c.Type)
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	switch {
	case c.Query != "" && len(c.Series) > 0:
		return errors.New("query and series are mutually exclusive")
	case c.Query == "" && len(c.Series) == 0:
		return errors.New("either query or series is required")
	case c.Query != "":
		return prometheus.ValidateQuery(c.Query)
	}
	for i, s := range c.Series {
		if s.Type != "" && !validTypes[s.Type] {
			return fmt.Errorf("series %d: unknown type %q", i, s.Type)
		}
		for j, p := range s.Points {
			if p.X == "" {
				continue
			}
			if _, err := time.Parse(time.RFC3339, p.X); err != nil {
				return fmt.Errorf("series %d point %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// UsesPrometheus reports whether any chart runs a query.
func (d *Dashboard) UsesPrometheus() bool {
	for _, c := range d.Charts {
		if c.Query != "" {
			return true
		}
	}
	return false
}

// ChartQuery returns the query that feeds the chart.
func (c *Chart) ChartQuery() prometheus.ChartQuery {
	return prometheus.ChartQuery{
		Query:       c.Query,
		Instant:     c.Instant,
		LegendLabel: c.LegendLabel,
		Type:        c.Type,
		Title:       c.Title,
	}
}

// Window returns the range every chart of d queries, ending at end.
func (d *Dashboard) Window(end time.Time) v1.Range {
	return v1.Range{Start: end.Add(-d.Range), End: end, Step: d.Step}
}

// Options returns the chart's engine options with the given series. Static
// charts pass nil to use their configured series.
func (c *Chart) Options(series []charts.SeriesOptions) charts.Options {
	if series == nil {
		series = c.staticSeries()
	}
	opts := charts.Options{Series: series}
	if c.Axis != nil {
		opts.ValueAxis = &charts.AxisOptions{Min: c.Axis.Min, Max: c.Axis.Max, Stops: c.Axis.Stops}
	}
	return opts
}

func (c *Chart) staticSeries() []charts.SeriesOptions {
	out := make([]charts.SeriesOptions, 0, len(c.Series))
	for _, s := range c.Series {
		so := charts.SeriesOptions{ID: s.ID, Name: s.Name, Type: s.Type}
		if so.Type == "" {
			so.Type = c.Type
		}
		if s.Color != "" {
			so.Color = s.Color
		}
		for _, p := range s.Points {
			po := charts.PointOptions{ID: p.ID, Name: p.Name, Y: p.Y}
			if p.X != "" {
				// validated on load
				po.X, _ = time.Parse(time.RFC3339, p.X)
			}
			if p.Color != "" {
				po.Color = p.Color
			}
			so.Data = append(so.Data, po)
		}
		out = append(out, so)
	}
	return out
}
