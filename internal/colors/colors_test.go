package colors

import (
	"testing"

	"github.com/akasprzok/tandem/internal/charts"
)

var gaugeStops = [][]any{{0.1, "#FF0000"}, {0.5, "#FFFF00"}, {0.9, "#00FF00"}}

func gauge(y *float64, axis *charts.AxisOptions) charts.Item {
	c := charts.New(charts.Options{
		ValueAxis: axis,
		Series: []charts.SeriesOptions{
			{Name: "load", Type: charts.TypeSolidGauge, Data: []charts.PointOptions{{Y: y}}},
		},
	})
	return c.Items()[0]
}

func TestGauge(t *testing.T) {
	axis := &charts.AxisOptions{Min: charts.Float(0), Max: charts.Float(100), Stops: gaugeStops}
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "at first stop", value: 10, want: "#FF0000"},
		{name: "at middle stop", value: 50, want: "#FFFF00"},
		{name: "between stops", value: 70, want: "#80FF00"},
		{name: "before first stop", value: 0, want: "#FF0000"},
		{name: "past last stop", value: 95, want: "#00FF00"},
		{name: "clamped above range", value: 400, want: "#00FF00"},
		{name: "clamped below range", value: -5, want: "#FF0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(gauge(charts.Float(tt.value), axis)); got != tt.want {
				t.Errorf("Of() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaugeAxisDefaults(t *testing.T) {
	axis := &charts.AxisOptions{Stops: gaugeStops}
	if got := Of(gauge(charts.Float(50), axis)); got != "#FFFF00" {
		t.Errorf("Of() = %v, want #FFFF00", got)
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name string
		item charts.Item
	}{
		{
			name: "gradient color",
			item: charts.New(charts.Options{Series: []charts.SeriesOptions{
				{Name: "a", Color: charts.Gradient{Stops: [][]any{{0, "#000000"}}}},
			}}).Items()[0],
		},
		{
			name: "pattern color",
			item: charts.New(charts.Options{Series: []charts.SeriesOptions{
				{Name: "a", Color: charts.Pattern{Path: "M 0 0"}},
			}}).Items()[0],
		},
		{name: "gauge without axis", item: gauge(charts.Float(50), nil)},
		{name: "gauge with empty stops", item: gauge(charts.Float(50), &charts.AxisOptions{})},
		{name: "gauge without value", item: gauge(nil, &charts.AxisOptions{Stops: gaugeStops})},
		{
			name: "gauge with malformed tuple",
			item: gauge(charts.Float(50), &charts.AxisOptions{Stops: [][]any{{0.5}}}),
		},
		{
			name: "gauge with non-numeric position",
			item: gauge(charts.Float(50), &charts.AxisOptions{Stops: [][]any{{"half", "#FFFFFF"}}}),
		},
		{
			name: "gauge with named color stop",
			item: gauge(charts.Float(50), &charts.AxisOptions{Stops: [][]any{{0.5, "red"}}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.item); got != Fallback {
				t.Errorf("Of() = %v, want %v", got, Fallback)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	c := charts.New(charts.Options{Series: []charts.SeriesOptions{{Name: "a", Color: "#123456"}}})
	if got := Of(c.Items()[0]); got != "#123456" {
		t.Errorf("Of() = %v, want #123456", got)
	}
}

func TestRegister(t *testing.T) {
	const tag = "thermometer"
	Register(tag, func(charts.Item) string { return "#ABCDEF" })
	t.Cleanup(func() { delete(strategies, tag) })

	c := charts.New(charts.Options{Series: []charts.SeriesOptions{{Name: "t", Type: tag}}})
	if got := Of(c.Items()[0]); got != "#ABCDEF" {
		t.Errorf("Of() = %v, want #ABCDEF", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "#ff8800", want: "#FF8800"},
		{input: "#FF8800", want: "#FF8800"},
		{input: "var(--accent, #00aa11)", want: "#00AA11"},
		{input: "var(--accent,#00aa11)", want: "#00AA11"},
		{input: "#fff", wantErr: true},
		{input: "rgb(0, 0, 0)", wantErr: true},
		{input: "var(--accent)", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Hex() != tt.want {
				t.Errorf("ParseHex() = %v, want %v", got.Hex(), tt.want)
			}
		})
	}
}

func TestParseStopsSorts(t *testing.T) {
	stops, err := ParseStops([][]any{{0.9, "#00FF00"}, {0.1, "#FF0000"}})
	if err != nil {
		t.Fatalf("ParseStops() error = %v", err)
	}
	if stops[0].Position != 0.1 || stops[1].Position != 0.9 {
		t.Errorf("positions = %v, %v, want 0.1, 0.9", stops[0].Position, stops[1].Position)
	}
}

func TestInterpolate(t *testing.T) {
	a, b := RGB{R: 0, G: 0, B: 0}, RGB{R: 255, G: 255, B: 255}
	tests := []struct {
		t    float64
		want string
	}{
		{t: 0, want: "#000000"},
		{t: 1, want: "#FFFFFF"},
		{t: 0.5, want: "#808080"},
		{t: 0.25, want: "#404040"},
		{t: 2, want: "#FFFFFF"},
	}
	for _, tt := range tests {
		if got := Interpolate(a, b, tt.t).Hex(); got != tt.want {
			t.Errorf("Interpolate(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
