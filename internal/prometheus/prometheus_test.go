package prometheus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid URL",
			url:     "http://localhost:9090",
			wantErr: false,
		},
		{
			name:    "valid URL with path",
			url:     "http://prometheus.example.com/api/v1",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, time.Second)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("NewClient() returned nil client for valid URL")
			}
		})
	}
}

func TestFormatQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "simple metric",
			query: "up",
			want:  "up",
		},
		{
			name:  "metric with labels",
			query: "up{job=\"prometheus\"}",
			want:  "up{job=\"prometheus\"}",
		},
		{
			name:  "sum aggregation",
			query: "sum(rate(http_requests_total[5m]))",
			want:  "sum(rate(http_requests_total[5m]))",
		},
		{
			name:  "invalid query returns original",
			query: "invalid{{{",
			want:  "invalid{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQuery(tt.query)
			if got != tt.want {
				t.Errorf("FormatQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		query   string
		wantErr bool
	}{
		{query: "up", wantErr: false},
		{query: "sum by (job) (rate(http_requests_total[5m]))", wantErr: false},
		{query: "invalid{{{", wantErr: true},
		{query: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if err := ValidateQuery(tt.query); (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func newTestServer(t *testing.T, body string) Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestQueryRange(t *testing.T) {
	client := newTestServer(t, `{"status":"success","warnings":["partial data"],"data":{"resultType":"matrix","result":[{"metric":{"mode":"idle"},"values":[[1714564800,"1.5"],[1714564860,"2"]]}]}}`)
	end := time.Unix(1714564860, 0)

	m, warnings, err := client.QueryRange(context.Background(), "rate(cpu[5m])", v1.Range{Start: end.Add(-time.Minute), End: end, Step: time.Minute})
	if err != nil {
		t.Fatalf("QueryRange() error = %v", err)
	}
	if diff := cmp.Diff(v1.Warnings{"partial data"}, warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	if len(m) != 1 || len(m[0].Values) != 2 {
		t.Fatalf("matrix = %v, want one series of two samples", m)
	}
	if got := string(m[0].Metric["mode"]); got != "idle" {
		t.Errorf("mode = %q, want idle", got)
	}
}

func TestQuery(t *testing.T) {
	t.Run("vector", func(t *testing.T) {
		client := newTestServer(t, `{"status":"success","data":{"resultType":"vector","result":[{"metric":{"job":"api"},"value":[1714564800,"3"]}]}}`)
		v, _, err := client.Query(context.Background(), "up", time.Unix(1714564800, 0))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(v) != 1 || v[0].Value != 3 {
			t.Errorf("vector = %v, want one sample of 3", v)
		}
	})

	t.Run("unexpected result type", func(t *testing.T) {
		client := newTestServer(t, `{"status":"success","data":{"resultType":"scalar","result":[1714564800,"1"]}}`)
		_, _, err := client.Query(context.Background(), "1", time.Unix(1714564800, 0))
		if err == nil || !strings.Contains(err.Error(), "unexpected result type") {
			t.Errorf("Query() error = %v, want unexpected result type", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestServer(t, `{"status":"error","errorType":"bad_data","error":"parse error"}`)
		_, _, err := client.Query(context.Background(), "up{", time.Unix(1714564800, 0))
		if err == nil || !strings.Contains(err.Error(), `query "up{"`) {
			t.Errorf("Query() error = %v, want a wrapped query error", err)
		}
	})
}
