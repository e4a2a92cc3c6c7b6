// Package charts is the chart engine: it turns Options into a live object
// graph of series and points, renders them with ntcharts, and emits render
// and pointer events. The object graph is rebuilt on every Update, so
// callers must not hold on to *Series or *Point values across renders.
package charts

import "time"

// PointEventType enumerates pointer events on points.
type PointEventType int

const (
	PointOver PointEventType = iota
	PointOut
	PointClick
)

func (t PointEventType) String() string {
	switch t {
	case PointOver:
		return "mouseover"
	case PointOut:
		return "mouseout"
	case PointClick:
		return "click"
	default:
		return "unknown"
	}
}

// PointEvent is delivered to OnPointEvent handlers.
type PointEvent struct {
	Type  PointEventType
	Point *Point
}

// Axis is the live value axis.
type Axis struct {
	Min   *float64
	Max   *float64
	Stops [][]any
}

// ColorResolver maps an item to the flat color string used to draw it.
type ColorResolver func(Item) string

// Chart is a live chart instance.
type Chart struct {
	options   Options
	series    []*Series
	valueAxis *Axis

	renderHooks []*func()
	pointHooks  []*func(PointEvent)
	resolver    ColorResolver

	hovered   *Point
	renders   int
	rendering bool
	pending   bool
}

// New builds a chart from opts. The chart is not rendered until the first
// Redraw.
func New(opts Options) *Chart {
	c := &Chart{}
	c.build(opts)
	return c
}

// Update replaces the chart's options. All series and point objects are
// recreated, losing any visibility or state set on the previous ones, and
// the chart re-renders.
func (c *Chart) Update(opts Options) {
	c.build(opts)
	c.Redraw()
}

func (c *Chart) build(opts Options) {
	c.options = opts
	c.hovered = nil
	c.series = make([]*Series, 0, len(opts.Series))
	for si, so := range opts.Series {
		s := &Series{
			chart:   c,
			index:   si,
			id:      so.ID,
			name:    so.Name,
			typ:     so.Type,
			color:   so.Color,
			visible: so.Visible == nil || *so.Visible,
		}
		if s.typ == "" {
			s.typ = TypeLine
		}
		if s.color == nil {
			s.color = string(SeriesColor(si))
		}
		s.points = make([]*Point, 0, len(so.Data))
		for pi, po := range so.Data {
			p := &Point{
				series:  s,
				index:   pi,
				options: po,
				color:   po.Color,
				visible: po.Visible == nil || *po.Visible,
			}
			if p.color == nil {
				if pointLegend(s.typ) {
					p.color = string(SeriesColor(pi))
				} else {
					p.color = s.color
				}
			}
			s.points = append(s.points, p)
		}
		c.series = append(c.series, s)
	}
	c.valueAxis = nil
	if opts.ValueAxis != nil {
		c.valueAxis = &Axis{
			Min:   opts.ValueAxis.Min,
			Max:   opts.ValueAxis.Max,
			Stops: opts.ValueAxis.Stops,
		}
	}
}

// Options returns the options the chart was last built from.
func (c *Chart) Options() Options {
	return c.options
}

// Series returns the live series in option order.
func (c *Chart) Series() []*Series {
	return c.series
}

// ValueAxis returns the value axis, or nil if none is configured.
func (c *Chart) ValueAxis() *Axis {
	return c.valueAxis
}

// Items returns the legend-addressable items in series order.
func (c *Chart) Items() []Item {
	var items []Item
	for _, s := range c.series {
		if pointLegend(s.typ) {
			for _, p := range s.points {
				items = append(items, p)
			}
			continue
		}
		items = append(items, s)
	}
	return items
}

// Point returns the point at the given indices, or nil.
func (c *Chart) Point(seriesIndex, pointIndex int) *Point {
	if seriesIndex < 0 || seriesIndex >= len(c.series) {
		return nil
	}
	s := c.series[seriesIndex]
	if pointIndex < 0 || pointIndex >= len(s.points) {
		return nil
	}
	return s.points[pointIndex]
}

// PointAt returns the point of series s whose X equals x, or nil.
func (s *Series) PointAt(x time.Time) *Point {
	for _, p := range s.points {
		if p.options.X.Equal(x) {
			return p
		}
	}
	return nil
}

// Renders returns how many times the chart has rendered.
func (c *Chart) Renders() int {
	return c.renders
}

// SetColorResolver installs the function used to flatten item colors when
// drawing. Without one, string colors are used as is.
func (c *Chart) SetColorResolver(r ColorResolver) {
	c.resolver = r
}

// OnRender registers fn to run after every render. The returned function
// unregisters it.
func (c *Chart) OnRender(fn func()) (unregister func()) {
	h := &fn
	c.renderHooks = append(c.renderHooks, h)
	return func() {
		c.renderHooks = removeHook(c.renderHooks, h)
	}
}

// OnPointEvent registers fn for pointer events on points.
func (c *Chart) OnPointEvent(fn func(PointEvent)) (unregister func()) {
	h := &fn
	c.pointHooks = append(c.pointHooks, h)
	return func() {
		c.pointHooks = removeHook(c.pointHooks, h)
	}
}

func removeHook[T any](hooks []*T, h *T) []*T {
	out := hooks[:0]
	for _, x := range hooks {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}

// Redraw renders the chart and runs the render hooks. A Redraw requested
// from inside a render hook is folded into another pass of the hooks once
// the current pass finishes.
func (c *Chart) Redraw() {
	c.renders++
	if c.rendering {
		c.pending = true
		return
	}
	c.rendering = true
	defer func() { c.rendering = false }()
	for {
		c.pending = false
		for _, h := range append([]*func(){}, c.renderHooks...) {
			(*h)()
		}
		if !c.pending {
			return
		}
	}
}

// Hover delivers a mouseover on the given point. Hidden points and
// out-of-range indices are ignored.
func (c *Chart) Hover(seriesIndex, pointIndex int) {
	p := c.Point(seriesIndex, pointIndex)
	if p == nil || !p.visible || !p.series.visible {
		return
	}
	c.hovered = p
	c.emit(PointEvent{Type: PointOver, Point: p})
}

// Leave delivers a mouseout on the currently hovered point, if any.
func (c *Chart) Leave() {
	if c.hovered == nil {
		return
	}
	p := c.hovered
	c.hovered = nil
	c.emit(PointEvent{Type: PointOut, Point: p})
}

// Click delivers a click on the given point.
func (c *Chart) Click(seriesIndex, pointIndex int) {
	p := c.Point(seriesIndex, pointIndex)
	if p == nil || !p.series.visible {
		return
	}
	c.emit(PointEvent{Type: PointClick, Point: p})
}

// Hovered returns the point under the pointer, or nil.
func (c *Chart) Hovered() *Point {
	return c.hovered
}

func (c *Chart) emit(ev PointEvent) {
	for _, h := range append([]*func(PointEvent){}, c.pointHooks...) {
		(*h)(ev)
	}
}
