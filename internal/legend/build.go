// Package legend projects a chart's items into legend rows and renders
// them as an interactive table.
package legend

import (
	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/colors"
	"github.com/akasprzok/tandem/internal/highlight"
	"github.com/akasprzok/tandem/internal/identity"
	"github.com/akasprzok/tandem/internal/visibility"
)

// Marker symbols by series shape.
const (
	LineSymbol  = '━'
	BlockSymbol = '█'
	SliceSymbol = '●'
)

// Marker describes how an item's swatch is drawn.
type Marker struct {
	Color  string
	Symbol rune
}

// Item is one legend row.
type Item struct {
	Identity    string
	Label       string
	Marker      Marker
	Visible     bool
	Highlighted bool
}

// Build returns one Item per distinct identity of items, in item order.
// The first item of an identity provides its label and marker. A nil vis
// takes visibility from the items themselves, so rows hidden by options
// show as hidden. Build is pure; equal inputs give equal output.
func Build(items []charts.Item, vis *visibility.Set, hl highlight.State) []Item {
	if vis == nil {
		vis = visibility.Shown(items)
	}
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		id := identity.Of(it)
		if seen[id] {
			continue
		}
		seen[id] = true
		label := it.Name()
		if label == "" {
			label = id
		}
		out = append(out, Item{
			Identity:    id,
			Label:       label,
			Marker:      Marker{Color: colors.Of(it), Symbol: symbol(it.Type())},
			Visible:     vis.Has(id),
			Highlighted: hl.Active && hl.Identity == id,
		})
	}
	return out
}

func symbol(typ string) rune {
	switch typ {
	case charts.TypeLine, charts.TypeSpline:
		return LineSymbol
	case charts.TypePie:
		return SliceSymbol
	default:
		return BlockSymbol
	}
}

// VisibleIDs returns the identities of the visible items.
func VisibleIDs(items []Item) []string {
	ids := []string{}
	for _, it := range items {
		if it.Visible {
			ids = append(ids, it.Identity)
		}
	}
	return ids
}
