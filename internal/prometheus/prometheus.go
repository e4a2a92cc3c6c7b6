// Package prometheus fetches series for dashboard charts and converts
// query results into chart options.
package prometheus

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/promql/parser"
)

// Client runs instant and range queries.
type Client interface {
	Query(ctx context.Context, query string, at time.Time) (model.Vector, v1.Warnings, error)
	QueryRange(ctx context.Context, query string, r v1.Range) (model.Matrix, v1.Warnings, error)
}

type prometheusClient struct {
	v1api   v1.API
	timeout time.Duration
}

// NewClient returns a client for the server at url. timeout bounds every
// query on both ends of the connection.
func NewClient(url string, timeout time.Duration) (Client, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	return &prometheusClient{v1api: v1.NewAPI(client), timeout: timeout}, nil
}

func (c *prometheusClient) Query(ctx context.Context, query string, at time.Time) (model.Vector, v1.Warnings, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	result, warnings, err := c.v1api.Query(ctx, query, at, v1.WithTimeout(c.timeout))
	if err != nil {
		return nil, warnings, fmt.Errorf("query %q: %w", query, err)
	}
	v, ok := result.(model.Vector)
	if !ok {
		return nil, warnings, fmt.Errorf("query %q: unexpected result type: %s", query, result.Type())
	}
	return v, warnings, nil
}

func (c *prometheusClient) QueryRange(ctx context.Context, query string, r v1.Range) (model.Matrix, v1.Warnings, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	result, warnings, err := c.v1api.QueryRange(ctx, query, r, v1.WithTimeout(c.timeout))
	if err != nil {
		return nil, warnings, fmt.Errorf("range query %q: %w", query, err)
	}
	m, ok := result.(model.Matrix)
	if !ok {
		return nil, warnings, fmt.Errorf("range query %q: unexpected result type: %s", query, result.Type())
	}
	return m, warnings, nil
}

// FormatQuery pretty-prints query, or returns it unchanged if it does not
// parse.
func FormatQuery(query string) string {
	ast, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return ast.Pretty(0)
}

// ValidateQuery reports whether query parses as PromQL.
func ValidateQuery(query string) error {
	if _, err := parser.ParseExpr(query); err != nil {
		return fmt.Errorf("invalid query %q: %w", query, err)
	}
	return nil
}
