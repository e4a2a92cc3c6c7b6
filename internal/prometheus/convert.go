package prometheus

import (
	"context"
	"math"

	"github.com/akasprzok/tandem/internal/charts"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// SeriesName names a metric by the value of legendLabel, falling back to
// the full metric string when the label is unset or absent.
func SeriesName(metric model.Metric, legendLabel string) string {
	if legendLabel != "" {
		if v, ok := metric[model.LabelName(legendLabel)]; ok {
			return string(v)
		}
	}
	return metric.String()
}

// MatrixToSeries turns each stream of m into a series of type typ. NaN
// samples become missing values.
func MatrixToSeries(m model.Matrix, legendLabel, typ string) []charts.SeriesOptions {
	out := make([]charts.SeriesOptions, 0, len(m))
	for _, stream := range m {
		data := make([]charts.PointOptions, 0, len(stream.Values))
		for _, v := range stream.Values {
			data = append(data, charts.PointOptions{
				X: v.Timestamp.Time().UTC(),
				Y: value(v.Value),
			})
		}
		out = append(out, charts.SeriesOptions{
			Name: SeriesName(stream.Metric, legendLabel),
			Type: typ,
			Data: data,
		})
	}
	return out
}

// VectorToSeries turns an instant vector into series of type typ. A pie
// becomes one series named title with one slice per sample; every other
// type becomes one single-point series per sample.
func VectorToSeries(v model.Vector, legendLabel, typ, title string) []charts.SeriesOptions {
	if typ == charts.TypePie {
		data := make([]charts.PointOptions, 0, len(v))
		for _, s := range v {
			data = append(data, point(s, legendLabel))
		}
		return []charts.SeriesOptions{{Name: title, Type: typ, Data: data}}
	}
	out := make([]charts.SeriesOptions, 0, len(v))
	for _, s := range v {
		out = append(out, charts.SeriesOptions{
			Name: SeriesName(s.Metric, legendLabel),
			Type: typ,
			Data: []charts.PointOptions{point(s, legendLabel)},
		})
	}
	return out
}

func point(s *model.Sample, legendLabel string) charts.PointOptions {
	return charts.PointOptions{
		Name: SeriesName(s.Metric, legendLabel),
		X:    s.Timestamp.Time().UTC(),
		Y:    value(s.Value),
	}
}

func value(v model.SampleValue) *float64 {
	f := float64(v)
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

// ChartQuery is the query behind one chart.
type ChartQuery struct {
	Query       string
	Instant     bool
	LegendLabel string
	Type        string
	Title       string
}

// FetchSeries runs q and converts the result. Instant queries are evaluated
// at r.End.
func FetchSeries(ctx context.Context, client Client, q ChartQuery, r v1.Range) ([]charts.SeriesOptions, v1.Warnings, error) {
	if q.Instant {
		vector, warnings, err := client.Query(ctx, q.Query, r.End)
		if err != nil {
			return nil, warnings, err
		}
		return VectorToSeries(vector, q.LegendLabel, q.Type, q.Title), warnings, nil
	}
	matrix, warnings, err := client.QueryRange(ctx, q.Query, r)
	if err != nil {
		return nil, warnings, err
	}
	return MatrixToSeries(matrix, q.LegendLabel, q.Type), warnings, nil
}
