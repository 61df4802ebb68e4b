package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/bingo/shop-console/internal/infrastructure/http/handlers"
)

func TestOpsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	probe := prometheus.NewCounter(prometheus.CounterOpts{Name: "ops_router_probe_total", Help: "probe"})
	reg.MustRegister(probe)
	probe.Inc()

	e := NewRouter(OpsDeps{
		Checks: map[string]handlers.Check{
			"shop_api": func(context.Context) error { return nil },
		},
		Gatherer: reg,
	})

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/health/ready", http.StatusOK, `"shop_api":{"status":"ok"}`},
		{"/metrics", http.StatusOK, "ops_router_probe_total 1"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}
