// Package chartview assembles an interactive chart: the engine, its
// visibility controller, its highlight coordinator and an optional
// embedded legend, behind a small imperative API.
package chartview

import (
	"errors"
	"fmt"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/colors"
	"github.com/akasprzok/tandem/internal/highlight"
	"github.com/akasprzok/tandem/internal/identity"
	"github.com/akasprzok/tandem/internal/legend"
	"github.com/akasprzok/tandem/internal/visibility"
	"github.com/charmbracelet/lipgloss"
)

// ErrNotRendered is returned by API calls made before the first render.
var ErrNotRendered = errors.New("chart has not rendered yet")

// API drives a chart programmatically. Calls behave like the matching user
// interaction, except that highlights they cause are tagged highlight.API
// and are not propagated to the rest of the group.
type API interface {
	HighlightItems(ids []string) error
	ClearHighlight() error
	SetVisibleItems(ids []string) error
	HighlightPoint(p *charts.Point) error
}

// Props configure a Chart.
type Props struct {
	Options charts.Options

	// VisibleItems is the initial visible set; nil leaves visibility to the
	// options. With Controlled set it is owned by the caller, who keeps it
	// current through SyncVisibleItems.
	VisibleItems         *visibility.Set
	Controlled           bool
	OnToggleVisibleItems func(ids []string)

	// Group links the chart's highlight with sibling charts and legends.
	Group *highlight.Group
	// OnItemHighlight requires OnClearHighlight.
	OnItemHighlight  func(highlight.Event)
	OnClearHighlight func(highlight.Event)

	Legend         bool
	LegendPageSize int

	ColorResolver charts.ColorResolver
}

// Chart is an interactive chart. It implements API.
type Chart struct {
	engine   *charts.Chart
	vis      *visibility.Controller
	hl       *highlight.Coordinator
	legend   *legend.Legend
	user     highlight.Participant
	rendered bool
	cleanup  []func()
}

var _ API = (*Chart)(nil)

// New builds a chart from props. Nothing is drawn until Render.
func New(props Props) (*Chart, error) {
	user, err := highlight.Funcs(props.OnItemHighlight, props.OnClearHighlight)
	if err != nil {
		return nil, fmt.Errorf("chart highlight handlers: %w", err)
	}

	c := &Chart{
		engine: charts.New(props.Options),
		user:   user,
	}

	resolver := props.ColorResolver
	if resolver == nil {
		resolver = colors.Of
	}
	c.engine.SetColorResolver(resolver)

	c.vis = visibility.New(c.engine, visibility.Options{
		Controlled: props.Controlled,
		Initial:    props.VisibleItems,
		OnChange:   func(ids []string) {
			// A change that flips no engine flag does not redraw.
			c.refreshLegend()
			if props.OnToggleVisibleItems != nil {
				props.OnToggleVisibleItems(ids)
			}
		},
	})
	c.hl = highlight.NewCoordinator(c.engine, relay{c})
	if props.Group != nil {
		c.cleanup = append(c.cleanup, c.hl.Join(props.Group))
	}

	if props.Legend {
		l, err := legend.New(legend.Props{
			OnItemHighlight: func(it legend.Item) {
				c.hl.EnterFromLegend(it.Identity, highlight.User)
			},
			OnClearHighlight: func() {
				c.hl.ExitFromLegend(highlight.User)
			},
			OnVisibleItemsChange: c.vis.SetVisible,
			PageSize:             props.LegendPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("embedded legend: %w", err)
		}
		c.legend = l
	}

	c.cleanup = append(c.cleanup,
		c.engine.OnRender(c.afterRender),
		c.engine.OnPointEvent(c.pointEvent),
	)
	return c, nil
}

// relay forwards coordinator events to the embedded legend and to the
// caller's handlers.
type relay struct{ c *Chart }

func (r relay) Highlight(ev highlight.Event) {
	if r.c.legend != nil {
		r.c.legend.Highlight(ev)
	}
	if r.c.user != nil {
		r.c.user.Highlight(ev)
	}
}

func (r relay) ClearHighlight(ev highlight.Event) {
	if r.c.legend != nil {
		r.c.legend.ClearHighlight(ev)
	}
	if r.c.user != nil {
		r.c.user.ClearHighlight(ev)
	}
}

func (c *Chart) afterRender() {
	c.rendered = true
	c.vis.Reconcile()
	c.hl.Reconcile()
	c.refreshLegend()
}

func (c *Chart) refreshLegend() {
	if c.legend == nil {
		return
	}
	c.legend.SetItems(legend.Build(c.engine.Items(), c.vis.Visible(), c.hl.State()))
}

func (c *Chart) pointEvent(ev charts.PointEvent) {
	switch ev.Type {
	case charts.PointOver:
		c.hl.EnterFromChart(ev.Point, highlight.User)
	case charts.PointOut:
		c.hl.ExitFromChart(highlight.User)
	case charts.PointClick:
		c.vis.Toggle(identity.Of(ev.Point.Item()))
	}
}

// Render draws the chart, which makes the API usable.
func (c *Chart) Render() {
	c.engine.Redraw()
}

// Rendered reports whether the chart has rendered at least once.
func (c *Chart) Rendered() bool {
	return c.rendered
}

// SetOptions replaces the chart's data. Visibility and highlight carry
// over to the new series by identity.
func (c *Chart) SetOptions(opts charts.Options) {
	c.engine.Update(opts)
}

// SyncVisibleItems sets the caller-owned visible set.
func (c *Chart) SyncVisibleItems(s *visibility.Set) {
	c.vis.SetExternal(s)
	c.refreshLegend()
}

// HighlightItems highlights the first of ids present in the chart. Unknown
// ids are ignored.
func (c *Chart) HighlightItems(ids []string) error {
	if !c.rendered {
		return ErrNotRendered
	}
	items := c.engine.Items()
	for _, id := range ids {
		if identity.Known(items, id) {
			c.hl.EnterFromLegend(id, highlight.API)
			return nil
		}
	}
	return nil
}

// ClearHighlight clears the highlight.
func (c *Chart) ClearHighlight() error {
	if !c.rendered {
		return ErrNotRendered
	}
	c.hl.ExitFromLegend(highlight.API)
	return nil
}

// SetVisibleItems shows exactly ids.
func (c *Chart) SetVisibleItems(ids []string) error {
	if !c.rendered {
		return ErrNotRendered
	}
	c.vis.SetVisible(ids)
	return nil
}

// HighlightPoint highlights p's identity and the points sharing its x
// value. p may come from another chart.
func (c *Chart) HighlightPoint(p *charts.Point) error {
	if !c.rendered {
		return ErrNotRendered
	}
	if p == nil {
		return nil
	}
	c.hl.EnterFromChart(p, highlight.API)
	return nil
}

// Engine returns the underlying chart.
func (c *Chart) Engine() *charts.Chart {
	return c.engine
}

// Legend returns the embedded legend, or nil.
func (c *Chart) Legend() *legend.Legend {
	return c.legend
}

// Visible returns the effective visible set.
func (c *Chart) Visible() *visibility.Set {
	return c.vis.Visible()
}

// Highlight returns the current highlight.
func (c *Chart) Highlight() highlight.State {
	return c.hl.State()
}

// View renders the chart and its embedded legend.
func (c *Chart) View(width, height int) string {
	chart := c.engine.View(width, height)
	if c.legend == nil {
		return chart
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart, c.legend.View())
}

// Close detaches the chart from its engine hooks and its group.
func (c *Chart) Close() {
	for _, fn := range c.cleanup {
		fn()
	}
	c.cleanup = nil
}
