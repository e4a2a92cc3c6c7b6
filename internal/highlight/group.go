// Package highlight coordinates which identity is highlighted across a
// chart, its legends and sibling charts.
//
// Participants register with a page-scoped Group. An event a user triggers
// on one participant is re-delivered to every other participant tagged with
// the API origin, and events with that origin are never re-delivered, so
// two charts highlighting each other cannot loop.
package highlight

import (
	"errors"

	"github.com/akasprzok/tandem/internal/charts"
)

// ErrMissingClear is returned when a highlight handler is supplied without
// the matching clear handler. Without it a propagated highlight could never
// be cleared on that participant.
var ErrMissingClear = errors.New("highlight handler requires a clear handler")

// Origin tells user-driven events from programmatic ones.
type Origin int

const (
	User Origin = iota
	API
)

func (o Origin) String() string {
	if o == API {
		return "api"
	}
	return "user"
}

// Event describes a highlight or clear. Point is set when the event came
// from a concrete chart point; it belongs to the originating chart and is
// only valid during delivery.
type Event struct {
	Identity string
	Point    *charts.Point
	Origin   Origin
}

// Participant receives highlight and clear events. Both are required.
type Participant interface {
	Highlight(Event)
	ClearHighlight(Event)
}

type funcs struct {
	enter func(Event)
	clear func(Event)
}

func (f funcs) Highlight(ev Event) {
	if f.enter != nil {
		f.enter(ev)
	}
}

func (f funcs) ClearHighlight(ev Event) {
	f.clear(ev)
}

// Funcs adapts a pair of handlers to a Participant. It returns nil when
// both are nil and ErrMissingClear when only enter is given.
func Funcs(enter, clear func(Event)) (Participant, error) {
	switch {
	case enter == nil && clear == nil:
		return nil, nil
	case clear == nil:
		return nil, ErrMissingClear
	}
	return funcs{enter: enter, clear: clear}, nil
}

// Group is the set of participants that share one highlight.
type Group struct {
	members []*Member
	active  *Event
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Member is a participant's registration in a group.
type Member struct {
	group *Group
	p     Participant
}

// Register adds p to the group.
func (g *Group) Register(p Participant) *Member {
	m := &Member{group: g, p: p}
	g.members = append(g.members, m)
	return m
}

// Unregister removes the member from its group.
func (m *Member) Unregister() {
	g := m.group
	out := g.members[:0]
	for _, x := range g.members {
		if x != m {
			out = append(out, x)
		}
	}
	g.members = out
}

// Enter records ev as the group's highlight and, for user events,
// delivers it to every other member as an API event.
func (m *Member) Enter(ev Event) {
	m.group.active = &Event{Identity: ev.Identity, Origin: ev.Origin}
	if ev.Origin != User {
		return
	}
	ev.Origin = API
	for _, x := range m.group.snapshot() {
		if x != m {
			x.p.Highlight(ev)
		}
	}
}

// Exit clears the group's highlight with the same delivery rule as Enter.
func (m *Member) Exit(ev Event) {
	m.group.active = nil
	if ev.Origin != User {
		return
	}
	ev.Origin = API
	for _, x := range m.group.snapshot() {
		if x != m {
			x.p.ClearHighlight(ev)
		}
	}
}

// Active returns the identity currently highlighted in the group.
func (g *Group) Active() (string, bool) {
	if g.active == nil {
		return "", false
	}
	return g.active.Identity, true
}

// Len returns the number of registered members.
func (g *Group) Len() int {
	return len(g.members)
}

func (g *Group) snapshot() []*Member {
	return append([]*Member(nil), g.members...)
}
