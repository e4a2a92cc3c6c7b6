package highlight

import (
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/identity"
)

// State is a chart's highlight. The zero State is idle. HasX is set when
// the highlight came from a concrete point, whose x value then picks the
// emphasized point in every matching series.
type State struct {
	Active   bool
	Identity string
	X        time.Time
	HasX     bool
}

// Coordinator owns the highlight of one chart. It applies hover and
// inactive states to the chart's live objects, reports changes to an
// optional external participant and propagates user events through its
// group membership.
type Coordinator struct {
	chart    *charts.Chart
	external Participant
	member   *Member
	state    State
}

// NewCoordinator returns a coordinator for chart. external may be nil.
func NewCoordinator(chart *charts.Chart, external Participant) *Coordinator {
	return &Coordinator{chart: chart, external: external}
}

// Join registers the coordinator in g. The returned function leaves it.
func (c *Coordinator) Join(g *Group) (leave func()) {
	c.member = g.Register(c)
	return func() {
		c.member.Unregister()
		c.member = nil
	}
}

// State returns the current highlight.
func (c *Coordinator) State() State {
	return c.state
}

// EnterFromChart highlights the identity of the legend item p belongs to,
// emphasizing the points at p's x value.
func (c *Coordinator) EnterFromChart(p *charts.Point, origin Origin) {
	id := identity.Of(p.Item())
	c.state = State{Active: true, Identity: id, X: p.X(), HasX: true}
	c.entered(Event{Identity: id, Point: p, Origin: origin})
}

// ExitFromChart clears the highlight.
func (c *Coordinator) ExitFromChart(origin Origin) {
	c.exited(Event{Origin: origin})
}

// EnterFromLegend highlights id without point emphasis.
func (c *Coordinator) EnterFromLegend(id string, origin Origin) {
	c.state = State{Active: true, Identity: id}
	c.entered(Event{Identity: id, Origin: origin})
}

// ExitFromLegend clears the highlight.
func (c *Coordinator) ExitFromLegend(origin Origin) {
	c.exited(Event{Origin: origin})
}

// Highlight applies an event delivered by the group.
func (c *Coordinator) Highlight(ev Event) {
	c.state = State{Active: true, Identity: ev.Identity}
	if ev.Point != nil {
		c.state.X = ev.Point.X()
		c.state.HasX = true
	}
	c.Reconcile()
	if c.external != nil {
		c.external.Highlight(ev)
	}
}

// ClearHighlight applies a clear delivered by the group.
func (c *Coordinator) ClearHighlight(ev Event) {
	c.state = State{}
	c.Reconcile()
	if c.external != nil {
		c.external.ClearHighlight(ev)
	}
}

func (c *Coordinator) entered(ev Event) {
	c.Reconcile()
	if c.external != nil {
		c.external.Highlight(ev)
	}
	if c.member != nil {
		c.member.Enter(ev)
	}
}

func (c *Coordinator) exited(ev Event) {
	c.state = State{}
	c.Reconcile()
	if c.external != nil {
		c.external.ClearHighlight(ev)
	}
	if c.member != nil {
		c.member.Exit(ev)
	}
}

// Reconcile applies the current state to the chart's live objects. It
// runs after every render because the engine recreates them on update.
func (c *Coordinator) Reconcile() {
	items := c.chart.Items()
	known := c.state.Active && identity.Known(items, c.state.Identity)
	for _, s := range c.chart.Series() {
		s.SetState(charts.StateNormal)
		for _, p := range s.Points() {
			p.SetState(charts.StateNormal)
		}
	}
	if !known {
		return
	}
	for _, it := range items {
		if identity.Of(it) != c.state.Identity {
			it.SetState(charts.StateInactive)
			continue
		}
		it.SetState(charts.StateHover)
		if !c.state.HasX {
			continue
		}
		if _, isPoint := it.(*charts.Point); isPoint {
			continue
		}
		if p := it.Owner().PointAt(c.state.X); p != nil {
			p.SetState(charts.StateHover)
		}
	}
}
