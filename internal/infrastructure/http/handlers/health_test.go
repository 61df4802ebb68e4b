package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveReadiness(t *testing.T, checks map[string]Check) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h := NewHealthDependenciesHandler(checks)
	require.NoError(t, h.Readiness(e.NewContext(req, rec)))

	var body readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, NewHealthHandler().Liveness(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	code, body := serveReadiness(t, map[string]Check{"redis": ok, "shop_api": ok})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Dependencies["redis"].Status)
	assert.Equal(t, "ok", body.Dependencies["shop_api"].Status)
}

func TestReadiness_DisabledDependencyDoesNotFail(t *testing.T) {
	code, body := serveReadiness(t, map[string]Check{
		"mongodb":  nil,
		"shop_api": func(context.Context) error { return nil },
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "disabled", body.Dependencies["mongodb"].Status)
}

func TestReadiness_FailingDependency(t *testing.T) {
	code, body := serveReadiness(t, map[string]Check{
		"redis":    func(context.Context) error { return errors.New("connection refused") },
		"shop_api": func(context.Context) error { return nil },
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["redis"].Status)
	assert.Equal(t, "connection refused", body.Dependencies["redis"].Error)
	assert.Equal(t, "ok", body.Dependencies["shop_api"].Status)
}

func TestUpstreamCheck(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	check := UpstreamCheck(srv.Client(), srv.URL)
	assert.NoError(t, check(context.Background()), "a 404 still proves the API is reachable")

	status.Store(http.StatusBadGateway)
	assert.Error(t, check(context.Background()))

	srv.Close()
	assert.Error(t, check(context.Background()))
}
