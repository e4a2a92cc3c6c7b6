package charts

import "time"

// State is the interaction state of an item. It only affects rendering.
type State int

const (
	StateNormal State = iota
	StateHover
	StateInactive
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHover:
		return "hover"
	case StateInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Item is a legend-addressable engine object: a series, or a point of a
// point-legend series such as a pie.
type Item interface {
	ID() string
	Name() string
	// Type is the series type; points report their series' type.
	Type() string
	Color() any
	Visible() bool
	// SetVisible toggles visibility through the engine, keeping the
	// object structurally present. With redraw the chart re-renders.
	SetVisible(visible, redraw bool)
	State() State
	SetState(State)
	// Owner returns the series the item belongs to (itself for a series).
	Owner() *Series
}

// Series is a live series object. It is discarded on every Update.
type Series struct {
	chart   *Chart
	index   int
	id      string
	name    string
	typ     string
	color   any
	visible bool
	state   State
	points  []*Point
}

func (s *Series) ID() string { return s.id }
func (s *Series) Name() string { return s.name }
func (s *Series) Type() string { return s.typ }
func (s *Series) Color() any { return s.color }
func (s *Series) Visible() bool { return s.visible }
func (s *Series) State() State { return s.state }
func (s *Series) Owner() *Series { return s }
func (s *Series) Index() int { return s.index }
func (s *Series) Chart() *Chart { return s.chart }
func (s *Series) Points() []*Point { return s.points }

// SetVisible shows or hides the whole series.
func (s *Series) SetVisible(visible, redraw bool) {
	s.visible = visible
	if redraw {
		s.chart.Redraw()
	}
}

// SetState sets the series state. Point states are independent and carry
// per-point marker emphasis.
func (s *Series) SetState(st State) {
	s.state = st
}

// Point is a live data point object. It is discarded on every Update.
type Point struct {
	series  *Series
	index   int
	options PointOptions
	color   any
	visible bool
	state   State
}

func (p *Point) ID() string { return p.options.ID }
func (p *Point) Type() string { return p.series.typ }
func (p *Point) Color() any { return p.color }
func (p *Point) Visible() bool { return p.visible }
func (p *Point) State() State { return p.state }
func (p *Point) Owner() *Series { return p.series }
func (p *Point) Series() *Series { return p.series }
func (p *Point) Index() int { return p.index }

// Name returns the point name, which for unnamed points of series-legend
// types is empty.
func (p *Point) Name() string { return p.options.Name }

// X returns the point's x value.
func (p *Point) X() time.Time { return p.options.X }

// Y returns the point's value; ok is false for a missing value.
func (p *Point) Y() (float64, bool) {
	if p.options.Y == nil {
		return 0, false
	}
	return *p.options.Y, true
}

// Item returns the legend item the point belongs to: the point itself for
// point-legend series, the series otherwise.
func (p *Point) Item() Item {
	if pointLegend(p.series.typ) {
		return p
	}
	return p.series
}

// SetVisible shows or hides the point. The point stays in its series.
func (p *Point) SetVisible(visible, redraw bool) {
	p.visible = visible
	if redraw {
		p.series.chart.Redraw()
	}
}

// SetState sets the point state.
func (p *Point) SetState(st State) {
	p.state = st
}
