package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusufakmalov/MY-MEAT/internal/health"
)

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		checker := health.NewChecker(nil)
		checker.AddCheck("database", health.CheckFunc(func(context.Context) error { return nil }))

		rec := serve(t, NewOpsRouter(checker, nil), http.MethodGet, "/healthz")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

		var body healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, map[string]string{"database": health.StatusOK}, body.Components)
	})

	t.Run("degraded", func(t *testing.T) {
		checker := health.NewChecker(nil)
		checker.AddCheck("database", health.CheckFunc(func(context.Context) error { return nil }))
		checker.AddCheck("redis", health.CheckFunc(func(context.Context) error { return errors.New("connection refused") }))

		rec := serve(t, NewOpsRouter(checker, nil), http.MethodGet, "/healthz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "connection refused", body.Components["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, NewOpsRouter(nil, nil), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	h := NewOpsRouter(nil, nil)

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/admin").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(t, h, http.MethodPost, "/healthz").Code)
}
