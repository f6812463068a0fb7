// Package server exposes the operational HTTP endpoints.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yusufakmalov/MY-MEAT/internal/middleware"
	"github.com/Yusufakmalov/MY-MEAT/pkg/logger"
)

const healthTimeout = 3 * time.Second

// HealthChecker runs component checks.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// NewOpsRouter serves /metrics and /healthz.
func NewOpsRouter(checker HealthChecker, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(logger.Middleware, middleware.HTTPLogging(log))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler(checker, log)).Methods(http.MethodGet)

	return r
}

func healthHandler(checker HealthChecker, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Components: map[string]string{}}
		code := http.StatusOK

		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()

			components, healthy := checker.Check(ctx)
			resp.Components = components
			if !healthy {
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Warn("failed to encode health response", slog.Any("error", err))
		}
	}
}
