package charts

import "github.com/charmbracelet/lipgloss"

// View renders the chart into a string of the given width. A non-positive
// height picks one from the width.
func (c *Chart) View(width, height int) string {
	if height <= 0 {
		height = max(width/ChartHeightRatio, MinChartHeight)
	}
	var lines, cols, bars []*Series
	var blocks []string
	for _, s := range c.series {
		switch s.typ {
		case TypeColumn:
			cols = append(cols, s)
		case TypeBar:
			bars = append(bars, s)
		case TypePie:
			blocks = append(blocks, c.pie(s, width))
		case TypeGauge, TypeSolidGauge:
			blocks = append(blocks, c.gauge(s, width))
		default:
			lines = append(lines, s)
		}
	}
	if len(lines) > 0 {
		blocks = append([]string{c.timeseries(lines, width, height)}, blocks...)
	}
	if len(cols) > 0 {
		blocks = append(blocks, c.columns(cols, width, height))
	}
	if len(bars) > 0 {
		blocks = append(blocks, c.bars(bars, width))
	}
	var out []string
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
