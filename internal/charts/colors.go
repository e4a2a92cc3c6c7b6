package charts

import "github.com/charmbracelet/lipgloss"

// SeriesPalette is Paul Tol's qualitative color palette, designed for colorblind accessibility.
// Series and pie slices without an explicit color take the next palette entry.
// See: https://personal.sron.nl/~pault/
var SeriesPalette = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive/Yellow
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
	"#44BB99", // Teal
	"#FFAABB", // Pink
}

// AxisColor is the color used for chart axes.
var AxisColor = lipgloss.Color("#CCBB44") // Olive/Yellow - high visibility

// LabelColor is the color used for chart labels.
var LabelColor = lipgloss.Color("#66CCEE") // Cyan - good contrast

// SeriesColor returns the color for a given series index, cycling through the palette.
func SeriesColor(index int) lipgloss.Color {
	return lipgloss.Color(SeriesPalette[index%len(SeriesPalette)])
}

// itemStyle returns the style an item is drawn with in its current state.
// Structured colors the resolver cannot flatten are drawn in the axis color.
func (c *Chart) itemStyle(it Item) lipgloss.Style {
	var color string
	if c.resolver != nil {
		color = c.resolver(it)
	} else if s, ok := it.Color().(string); ok {
		color = s
	}
	if color == "" {
		color = string(AxisColor)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	switch it.State() {
	case StateHover:
		style = style.Bold(true)
	case StateInactive:
		style = style.Faint(true)
	}
	return style
}
