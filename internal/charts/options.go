package charts

import "time"

// Series types understood by the engine.
const (
	TypeLine       = "line"
	TypeSpline     = "spline"
	TypeArea       = "area"
	TypeColumn     = "column"
	TypeBar        = "bar"
	TypePie        = "pie"
	TypeGauge      = "gauge"
	TypeSolidGauge = "solidgauge"
)

// Options describe a chart. Every call to New or Update turns them into a
// fresh object graph.
type Options struct {
	Series    []SeriesOptions
	ValueAxis *AxisOptions
}

// SeriesOptions describe one series.
type SeriesOptions struct {
	ID   string
	Name string
	Type string
	// Color is either a CSS color string or a structured value such as a
	// Gradient or Pattern.
	Color   any
	Visible *bool
	Data    []PointOptions
}

// PointOptions describe one data point. Y is nil for a missing value.
type PointOptions struct {
	ID      string
	Name    string
	X       time.Time
	Y       *float64
	Color   any
	Visible *bool
}

// AxisOptions describe the value axis. Stops are raw [position, color]
// tuples exactly as configured.
type AxisOptions struct {
	Min   *float64
	Max   *float64
	Stops [][]any
}

// Gradient is a structured linear gradient color.
type Gradient struct {
	X1, Y1, X2, Y2 float64
	Stops          [][]any
}

// Pattern is a structured pattern fill color.
type Pattern struct {
	Path  string
	Color string
}

// Float returns a pointer to v, for building Y values and axis bounds.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// pointLegend reports whether the legend of a series of type t lists its
// points rather than the series itself.
func pointLegend(t string) bool {
	return t == TypePie
}
