package colors

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	varPattern = regexp.MustCompile(`^var\(\s*--[A-Za-z0-9_-]+\s*,\s*(#[0-9a-fA-F]{6})\s*\)$`)
)

var errNoStops = errors.New("no color stops")

// Stop is one parsed [position, color] pair.
type Stop struct {
	Position float64
	Color    RGB
}

// RGB is a color in 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Hex formats c as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB" in any case, or a CSS custom property with a
// hex fallback such as "var(--token, #RRGGBB)".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if m := varPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Interpolate blends a and b linearly in RGB; t is clamped to [0, 1].
func Interpolate(a, b RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	r, g, bl := a.color().BlendRGB(b.color(), t).RGB255()
	return RGB{R: r, G: g, B: bl}
}

func (c RGB) color() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseStops parses raw stop tuples and sorts them by position. Every
// tuple must be [number in [0, 1], hex color].
func ParseStops(raw [][]any) ([]Stop, error) {
	if len(raw) == 0 {
		return nil, errNoStops
	}
	stops := make([]Stop, 0, len(raw))
	for i, tuple := range raw {
		if len(tuple) != 2 {
			return nil, fmt.Errorf("stop %d: want [position, color], got %d elements", i, len(tuple))
		}
		pos, err := number(tuple[0])
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		if pos < 0 || pos > 1 {
			return nil, fmt.Errorf("stop %d: position %g outside [0, 1]", i, pos)
		}
		str, ok := tuple[1].(string)
		if !ok {
			return nil, fmt.Errorf("stop %d: color is %T, want string", i, tuple[1])
		}
		c, err := ParseHex(str)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops = append(stops, Stop{Position: pos, Color: c})
	}
	sort.SliceStable(stops, func(a, b int) bool {
		return stops[a].Position < stops[b].Position
	})
	return stops, nil
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("position is %T, want number", v)
	}
}

// AtPosition returns the color at normalized position pos along stops.
// Before the first stop it is the first color, past the last stop the last
// color; in between it is the linear blend of the bracketing stops.
func AtPosition(stops []Stop, pos float64) RGB {
	first, last := stops[0], stops[len(stops)-1]
	if pos <= first.Position {
		return first.Color
	}
	if pos >= last.Position {
		return last.Color
	}
	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if pos > hi.Position {
			continue
		}
		span := hi.Position - lo.Position
		if span == 0 {
			return hi.Color
		}
		return Interpolate(lo.Color, hi.Color, (pos-lo.Position)/span)
	}
	return last.Color
}

// Gauge colors a gauge series by the position of its first value within
// the chart's value axis, along the axis' color stops. An axis without
// bounds spans [0, 100].
func Gauge(item charts.Item) (color string) {
	defer func() {
		if recover() != nil {
			color = Fallback
		}
	}()
	c, err := gaugeColor(item.Owner())
	if err != nil {
		return Fallback
	}
	return c.Hex()
}

func gaugeColor(s *charts.Series) (RGB, error) {
	axis := s.Chart().ValueAxis()
	if axis == nil {
		return RGB{}, errors.New("no value axis")
	}
	stops, err := ParseStops(axis.Stops)
	if err != nil {
		return RGB{}, err
	}
	if len(s.Points()) == 0 {
		return RGB{}, errors.New("no data")
	}
	v, ok := s.Points()[0].Y()
	if !ok || math.IsNaN(v) {
		return RGB{}, errors.New("no value")
	}
	lo, hi := 0.0, 100.0
	if axis.Min != nil {
		lo = *axis.Min
	}
	if axis.Max != nil {
		hi = *axis.Max
	}
	if hi <= lo {
		return RGB{}, fmt.Errorf("empty axis range [%g, %g]", lo, hi)
	}
	pos := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	return AtPosition(stops, pos), nil
}
