package charts

import (
	"math"
	"strconv"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

var axisStyle = lipgloss.NewStyle().
	Foreground(AxisColor)

var labelStyle = lipgloss.NewStyle().
	Foreground(LabelColor)

// timeseries draws line, spline and area series into one braille chart.
// Hidden series and hidden points are skipped; hovered points get a marker.
func (c *Chart) timeseries(series []*Series, width, height int) string {
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	var minT, maxT time.Time
	drawn := 0
	for _, s := range series {
		if !s.visible {
			continue
		}
		for _, p := range s.points {
			y, ok := p.Y()
			if !ok || !p.visible {
				continue
			}
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
			if minT.IsZero() || p.X().Before(minT) {
				minT = p.X()
			}
			if p.X().After(maxT) {
				maxT = p.X()
			}
			drawn++
		}
	}
	if drawn == 0 {
		return ""
	}
	if maxY == minY {
		maxY = minY + 1
	}
	if !maxT.After(minT) {
		maxT = minT.Add(time.Second)
	}

	lc := timeserieslinechart.New(width, height)
	lc.AxisStyle = axisStyle
	lc.LabelStyle = labelStyle
	lc.XLabelFormatter = timeserieslinechart.HourTimeLabelFormatter()
	lc.SetTimeRange(minT, maxT)
	lc.SetViewTimeRange(minT, maxT)
	lc.SetYRange(minY, maxY)     // set expected Y values (values can be less or greater than what is displayed)
	lc.SetViewYRange(minY, maxY) // setting display Y values will fail unless set expected Y values first
	lc.SetLineStyle(runes.ThinLineStyle)

	for _, s := range series {
		if !s.visible {
			continue
		}
		name := datasetName(s)
		lc.SetDataSetStyle(name, c.itemStyle(s))
		for _, p := range s.points {
			y, ok := p.Y()
			if !ok || !p.visible {
				continue
			}
			lc.PushDataSet(name, timeserieslinechart.TimePoint{Time: p.X(), Value: y})
		}
	}

	lc.DrawBrailleAll()

	for _, s := range series {
		if !s.visible {
			continue
		}
		for _, p := range s.points {
			y, ok := p.Y()
			if !ok || !p.visible || p.state != StateHover {
				continue
			}
			point := canvas.Float64Point{X: float64(p.X().Unix()), Y: y}
			lc.DrawRuneWithStyle(point, HoverMarker, c.itemStyle(s).Bold(true))
		}
	}

	return lc.View()
}

// datasetName keys a series' dataset in the line chart. Series names may
// repeat, so the index is part of the key.
func datasetName(s *Series) string {
	return strconv.Itoa(s.index) + ":" + s.name
}
