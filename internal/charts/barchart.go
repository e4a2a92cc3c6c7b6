package charts

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
)

// columns draws column series as vertical bars, one bar per x value with
// the visible series stacked inside it.
func (c *Chart) columns(series []*Series, width, height int) string {
	var barData []barchart.BarData
	index := map[int64]int{}
	for _, s := range series {
		if !s.visible {
			continue
		}
		for _, p := range s.points {
			y, ok := p.Y()
			if !ok || !p.visible {
				continue
			}
			key := p.X().Unix()
			bi, seen := index[key]
			if !seen {
				bi = len(barData)
				index[key] = bi
				barData = append(barData, barchart.BarData{Label: p.X().Format("15:04")})
			}
			barData[bi].Values = append(barData[bi].Values, barchart.BarValue{
				Name:  s.name,
				Value: y,
				Style: c.itemStyle(s),
			})
		}
	}
	if len(barData) == 0 {
		return ""
	}
	bc := barchart.New(width, height, barchart.WithDataSet(barData))
	bc.Draw()
	return bc.View()
}

// bars draws bar series horizontally, one bar per visible point.
func (c *Chart) bars(series []*Series, width int) string {
	var barData []barchart.BarData
	for _, s := range series {
		if !s.visible {
			continue
		}
		for _, p := range s.points {
			y, ok := p.Y()
			if !ok || !p.visible {
				continue
			}
			label := p.Name()
			if label == "" {
				label = s.name
			}
			barData = append(barData, barchart.BarData{
				Label:  fmt.Sprintf("%s (%g)", label, y),
				Values: []barchart.BarValue{{Name: label, Value: y, Style: c.itemStyle(s)}},
			})
		}
	}
	if len(barData) == 0 {
		return ""
	}
	bc := barchart.New(width, len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()
	return bc.View()
}

// pie draws the visible slices of a pie series as horizontal bars labeled
// with their share of the visible total. Hidden slices stay in the series
// but are left out of the total.
func (c *Chart) pie(s *Series, width int) string {
	if !s.visible {
		return ""
	}
	total := 0.0
	for _, p := range s.points {
		if y, ok := p.Y(); ok && p.visible {
			total += y
		}
	}
	var barData []barchart.BarData
	for _, p := range s.points {
		y, ok := p.Y()
		if !ok || !p.visible {
			continue
		}
		share := 0.0
		if total != 0 {
			share = y / total * 100
		}
		barData = append(barData, barchart.BarData{
			Label:  fmt.Sprintf("%s (%.1f%%)", p.Name(), share),
			Values: []barchart.BarValue{{Name: p.Name(), Value: y, Style: c.itemStyle(p)}},
		})
	}
	if len(barData) == 0 {
		return ""
	}
	bc := barchart.New(width, len(barData)*2, barchart.WithDataSet(barData), barchart.WithHorizontalBars())
	bc.Draw()
	return bc.View()
}

// gauge draws a gauge series as a single filled track scaled to the value
// axis.
func (c *Chart) gauge(s *Series, width int) string {
	if !s.visible || len(s.points) == 0 {
		return ""
	}
	y, ok := s.points[0].Y()
	if !ok {
		return ""
	}
	lo, hi := 0.0, 100.0
	if c.valueAxis != nil {
		if c.valueAxis.Min != nil {
			lo = *c.valueAxis.Min
		}
		if c.valueAxis.Max != nil {
			hi = *c.valueAxis.Max
		}
	}
	label := fmt.Sprintf(" %s %g", s.name, y)
	track := width - len(label) - 2
	if track < 1 || hi <= lo {
		return label
	}
	ratio := (y - lo) / (hi - lo)
	ratio = max(0, min(1, ratio))
	filled := int(ratio * float64(track))
	bar := strings.Repeat(string(runes.FullBlock), filled) + strings.Repeat("░", track-filled)
	return "[" + c.itemStyle(s).Render(bar) + "]" + label
}
