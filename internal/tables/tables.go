// Package tables renders the value readout shown under the focused chart.
package tables

import (
	"fmt"
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/colors"
	"github.com/charmbracelet/lipgloss"
	teatable "github.com/evertras/bubble-table/table"
)

// Readout lists the value each visible series has at x.
func Readout(chart *charts.Chart, x time.Time, pageSize int) teatable.Model {
	longestName := 0
	rows := make([]teatable.Row, 0, len(chart.Series()))
	for _, s := range chart.Series() {
		if !s.Visible() {
			continue
		}
		p := s.PointAt(x)
		if p == nil || !p.Visible() {
			continue
		}
		value := "-"
		if y, ok := p.Y(); ok {
			value = fmt.Sprintf("%g", y)
		}
		name := s.Name()
		if p.Name() != "" {
			name = p.Name()
		}
		longestName = max(longestName, len(name))
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Of(p.Item()))).Render("█")
		rows = append(rows, teatable.NewRow(teatable.RowData{
			"color":     marker,
			"name":      name,
			"value":     value,
			"timestamp": p.X().Format(time.RFC3339),
		}))
	}

	columns := []teatable.Column{
		teatable.NewColumn("color", "", 3),
		teatable.NewColumn("name", "Series", max(longestName+1, 8)),
		teatable.NewColumn("value", "Value", 12),
		teatable.NewColumn("timestamp", "Timestamp", 26),
	}

	return teatable.
		New(columns).
		WithRows(rows).
		WithPageSize(pageSize).
		WithFooterVisibility(len(rows) > pageSize)
}
