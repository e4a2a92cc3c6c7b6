package prometheus

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/google/go-cmp/cmp"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestSeriesName(t *testing.T) {
	metric := model.Metric{"__name__": "up", "job": "api"}
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "label present", label: "job", want: "api"},
		{name: "label absent", label: "instance", want: `up{job="api"}`},
		{name: "no label", label: "", want: `up{job="api"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeriesName(metric, tt.label); got != tt.want {
				t.Errorf("SeriesName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixToSeries(t *testing.T) {
	m := model.Matrix{
		&model.SampleStream{
			Metric: model.Metric{"job": "api"},
			Values: []model.SamplePair{
				{Timestamp: model.TimeFromUnix(t0.Unix()), Value: 1},
				{Timestamp: model.TimeFromUnix(t0.Add(time.Minute).Unix()), Value: model.SampleValue(math.NaN())},
			},
		},
	}
	want := []charts.SeriesOptions{{
		Name: "api",
		Type: charts.TypeLine,
		Data: []charts.PointOptions{
			{X: t0, Y: charts.Float(1)},
			{X: t0.Add(time.Minute)},
		},
	}}
	if diff := cmp.Diff(want, MatrixToSeries(m, "job", charts.TypeLine)); diff != "" {
		t.Errorf("MatrixToSeries() mismatch (-want +got):\n%s", diff)
	}
}

func TestVectorToSeries(t *testing.T) {
	v := model.Vector{
		&model.Sample{Metric: model.Metric{"job": "api"}, Value: 3, Timestamp: model.TimeFromUnix(t0.Unix())},
		&model.Sample{Metric: model.Metric{"job": "db"}, Value: 1, Timestamp: model.TimeFromUnix(t0.Unix())},
	}

	t.Run("pie is one series of slices", func(t *testing.T) {
		got := VectorToSeries(v, "job", charts.TypePie, "share")
		want := []charts.SeriesOptions{{
			Name: "share",
			Type: charts.TypePie,
			Data: []charts.PointOptions{
				{Name: "api", X: t0, Y: charts.Float(3)},
				{Name: "db", X: t0, Y: charts.Float(1)},
			},
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("VectorToSeries() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("gauge is one series per sample", func(t *testing.T) {
		got := VectorToSeries(v, "job", charts.TypeGauge, "load")
		if len(got) != 2 || got[1].Name != "db" || len(got[1].Data) != 1 {
			t.Errorf("VectorToSeries() = %+v, want two single-point series", got)
		}
	})
}

func TestMockClient(t *testing.T) {
	var gotRange v1.Range
	client := &MockClient{
		QueryRangeFunc: func(_ context.Context, query string, r v1.Range) (model.Matrix, v1.Warnings, error) {
			gotRange = r
			return model.Matrix{}, v1.Warnings{"partial"}, nil
		},
	}
	want := v1.Range{Start: t0, End: t0.Add(time.Hour), Step: time.Minute}
	_, warnings, err := client.QueryRange(context.Background(), "up", want)
	if err != nil {
		t.Fatalf("QueryRange() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1", warnings)
	}
	if diff := cmp.Diff(want, gotRange); diff != "" {
		t.Errorf("range mismatch (-want +got):\n%s", diff)
	}

	vector, _, err := client.Query(context.Background(), "up", t0)
	if err != nil || vector != nil {
		t.Errorf("Query() without func = %v, %v, want nil, nil", vector, err)
	}
}
