package visibility

import (
	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/identity"
)

// Options configure a Controller.
type Options struct {
	// Controlled makes Initial the caller-owned value. User toggles update
	// it and are reported through OnChange; the caller may overrule them
	// with SetExternal.
	Controlled bool
	Initial    *Set
	// OnChange receives the full visible identity list after each
	// SetVisible or Toggle.
	OnChange func(ids []string)
}

// Controller owns the visibility state of one chart.
type Controller struct {
	chart      *charts.Chart
	controlled bool
	external   *Set
	internal   *Set
	onChange   func([]string)
}

// New returns a controller for chart. It does not touch the chart until
// the first SetVisible, Toggle or Reconcile.
func New(chart *charts.Chart, opts Options) *Controller {
	c := &Controller{
		chart:      chart,
		controlled: opts.Controlled,
		onChange:   opts.OnChange,
	}
	if opts.Controlled {
		c.external = opts.Initial
	} else {
		c.internal = opts.Initial
	}
	return c
}

// Controlled reports whether the visible set is owned by the caller.
func (c *Controller) Controlled() bool {
	return c.controlled
}

// Visible returns the effective visible set.
func (c *Controller) Visible() *Set {
	if c.controlled {
		return c.external
	}
	return c.internal
}

// SetVisible shows exactly ids and hides every other item.
func (c *Controller) SetVisible(ids []string) {
	c.commit(NewSet(ids...))
}

// Toggle flips the visibility of id. When visibility is unconstrained,
// the identities the chart currently shows count as visible before
// flipping. Unknown ids are ignored and report false.
//
// The order of the current set is kept: a removed id leaves its neighbors
// in place, and an added id goes in front of the first current id that
// follows it in item order, so toggling twice restores the same list.
func (c *Controller) Toggle(id string) bool {
	items := c.chart.Items()
	if !identity.Known(items, id) {
		return false
	}
	current := c.Visible()
	if current == nil {
		current = Shown(items)
	}

	next := NewSet()
	if current.Has(id) {
		for _, k := range current.ids {
			if k != id {
				next.add(k)
			}
		}
		c.commit(next)
		return true
	}

	rank := make(map[string]int)
	for i, k := range identity.Distinct(items) {
		rank[k] = i
	}
	inserted := false
	for _, k := range current.ids {
		if r, ok := rank[k]; ok && !inserted && r > rank[id] {
			next.add(id)
			inserted = true
		}
		next.add(k)
	}
	if !inserted {
		next.add(id)
	}
	c.commit(next)
	return true
}

// Shown returns the identities with at least one visible item, in item
// order. It is what an unconstrained chart draws.
func Shown(items []charts.Item) *Set {
	s := NewSet()
	for _, it := range items {
		if it.Visible() {
			s.add(identity.Of(it))
		}
	}
	return s
}

// SetExternal replaces the caller-owned value and applies it to the chart.
// It never fires OnChange.
func (c *Controller) SetExternal(s *Set) {
	c.controlled = true
	c.external = s
	c.Reconcile()
}

// Reconcile re-applies the effective state onto the chart's current
// series and points, which Update recreates with their option defaults.
// It redraws only when something changed and never fires OnChange.
func (c *Controller) Reconcile() {
	if c.apply(c.Visible()) {
		c.chart.Redraw()
	}
}

func (c *Controller) commit(next *Set) {
	if c.controlled {
		c.external = next
	} else {
		c.internal = next
	}
	if c.apply(next) {
		c.chart.Redraw()
	}
	if c.onChange != nil {
		c.onChange(next.IDs())
	}
}

// apply pushes s onto the chart without redrawing and reports whether any
// item changed. A nil s leaves the chart alone.
func (c *Controller) apply(s *Set) bool {
	if s == nil {
		return false
	}
	changed := false
	for _, it := range c.chart.Items() {
		want := s.Has(identity.Of(it))
		if it.Visible() != want {
			it.SetVisible(want, false)
			changed = true
		}
	}
	return changed
}
