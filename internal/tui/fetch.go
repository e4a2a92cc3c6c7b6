package tui

import (
	"context"
	"time"

	"github.com/akasprzok/tandem/internal/charts"
	"github.com/akasprzok/tandem/internal/prometheus"
	tea "github.com/charmbracelet/bubbletea"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"golang.org/x/sync/errgroup"
)

// fetchedMsg carries one round of query results, indexed like the panels.
type fetchedMsg struct {
	results []fetchResult
	at      time.Time
}

type fetchResult struct {
	series   []charts.SeriesOptions
	warnings v1.Warnings
	err      error
}

// refreshMsg starts the next round of queries.
type refreshMsg time.Time

// fetch runs every chart query concurrently. A failing query only fails
// its own chart.
func (m Model) fetch() tea.Cmd {
	if m.client == nil {
		return nil
	}
	client := m.client
	d := m.dashboard
	now := m.now()
	window := d.Window(now)
	return func() tea.Msg {
		results := make([]fetchResult, len(d.Charts))
		var g errgroup.Group
		g.SetLimit(FetchConcurrency)
		for i, cfg := range d.Charts {
			if cfg.Query == "" {
				continue
			}
			g.Go(func() error {
				r := &results[i]
				r.series, r.warnings, r.err = prometheus.FetchSeries(context.Background(), client, cfg.ChartQuery(), window)
				return nil
			})
		}
		_ = g.Wait()
		return fetchedMsg{results: results, at: now}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.dashboard.Refresh, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
