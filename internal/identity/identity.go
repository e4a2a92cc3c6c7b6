// Package identity derives the stable string key that correlates a series
// or point across redraws and across components.
package identity

import "github.com/akasprzok/tandem/internal/charts"

// Ref is anything with an id and a display name.
type Ref interface {
	ID() string
	Name() string
}

// Of returns ref's id if it is non-empty, else its name. Engine objects
// are recreated on every render, so identity is never object equality.
func Of(ref Ref) string {
	if id := ref.ID(); id != "" {
		return id
	}
	return ref.Name()
}

// Distinct returns the identities of items in first-seen order.
func Distinct(items []charts.Item) []string {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		id := Of(it)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Members returns every item whose identity is id. Items sharing an
// identity are addressed as one unit.
func Members(items []charts.Item, id string) []charts.Item {
	var out []charts.Item
	for _, it := range items {
		if Of(it) == id {
			out = append(out, it)
		}
	}
	return out
}

// Known reports whether any item has identity id.
func Known(items []charts.Item, id string) bool {
	for _, it := range items {
		if Of(it) == id {
			return true
		}
	}
	return false
}
