// Package colors resolves the flat color a legend marker is drawn with.
//
// Resolution dispatches on the series type through a registry of
// strategies. The default strategy passes string colors through; gauge
// series are colored by where their value falls along the value axis'
// color stops. A strategy never fails: anything it cannot turn into a flat
// color maps to Fallback.
package colors

import (
	"github.com/akasprzok/tandem/internal/charts"
	"github.com/charmbracelet/lipgloss"
)

// Fallback is returned whenever a color cannot be flattened.
const Fallback = "black"

// Strategy resolves an item's color.
type Strategy func(charts.Item) string

var strategies = map[string]Strategy{
	charts.TypeGauge:      Gauge,
	charts.TypeSolidGauge: Gauge,
}

// Register installs s for series type tag, replacing any previous one.
func Register(tag string, s Strategy) {
	strategies[tag] = s
}

// Of returns the display color of item.
func Of(item charts.Item) string {
	if s, ok := strategies[item.Type()]; ok {
		return s(item)
	}
	return Default(item)
}

// Default returns the item's color when it is a string and Fallback for
// structured colors such as gradients and patterns.
func Default(item charts.Item) string {
	if c, ok := item.Color().(string); ok && c != "" {
		return c
	}
	return Fallback
}

// Style returns a marker style in item's color.
func Style(item charts.Item) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Of(item)))
}
