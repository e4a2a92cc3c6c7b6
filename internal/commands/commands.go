// Package commands holds the kong commands of the tandem CLI.
package commands

import (
	"fmt"
	"time"

	"github.com/akasprzok/tandem/internal/config"
	"github.com/akasprzok/tandem/internal/prometheus"
)

type Context struct {
	Timeout time.Duration
}

var Cli struct {
	Timeout  time.Duration `help:"Timeout for Prometheus queries." default:"60s"`
	DebugLog string        `help:"Write debug logs to this file." name:"debug-log" type:"path"`

	Dashboard   DashboardCmd   `cmd:"" help:"Open a dashboard file in the interactive TUI."`
	Render      RenderCmd      `cmd:"" help:"Render a dashboard file once and exit."`
	FormatQuery FormatQueryCmd `cmd:"" help:"Format query."`
}

// Source names the dashboard file and the Prometheus server behind it.
type Source struct {
	File          string `arg:"" name:"file" help:"Dashboard file." type:"existingfile"`
	PrometheusURL string `help:"URL of the Prometheus endpoint. Overrides the dashboard's." short:"p" env:"TANDEM_PROMETHEUS_URL" name:"prometheus-url"`
}

// Load reads the dashboard and, if it runs queries, connects to
// Prometheus. The client is nil for static dashboards.
func (s Source) Load(timeout time.Duration) (*config.Dashboard, prometheus.Client, error) {
	d, err := config.Load(s.File)
	if err != nil {
		return nil, nil, err
	}
	if !d.UsesPrometheus() {
		return d, nil, nil
	}
	url := s.PrometheusURL
	if url == "" {
		url = d.Prometheus
	}
	if url == "" {
		return nil, nil, fmt.Errorf("%s runs queries: set --prometheus-url or prometheus in the file", s.File)
	}
	client, err := prometheus.NewClient(url, timeout)
	if err != nil {
		return nil, nil, err
	}
	return d, client, nil
}

type FormatQueryCmd struct {
	Query string `arg:"" name:"query" help:"Query to format." required:"true"`
}

func (f *FormatQueryCmd) Run(_ *Context) error {
	if err := prometheus.ValidateQuery(f.Query); err != nil {
		return err
	}
	fmt.Println(prometheus.FormatQuery(f.Query))
	return nil
}
