package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	checksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratelimit_checks_total",
		Help: "Rate limit decisions by backend and outcome.",
	}, []string{"backend", "result"})

	primaryFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratelimit_backend_errors_total",
		Help: "Checks the shared backend could not answer.",
	})
)

func init() {
	prometheus.MustRegister(checksTotal, primaryFailuresTotal)
}

// AdaptiveLimiter asks the shared primary first. When it errors the in-process
// fallback answers with half the limit, since every replica now counts on its own.
type AdaptiveLimiter struct {
	primary  Limiter
	fallback Limiter
	log      *slog.Logger
}

var _ Limiter = (*AdaptiveLimiter)(nil)

// NewAdaptiveLimiter combines primary and fallback. With a nil primary every check
// goes to the fallback at the full limit.
func NewAdaptiveLimiter(primary, fallback Limiter, log *slog.Logger) *AdaptiveLimiter {
	if log == nil {
		log = slog.Default()
	}
	return &AdaptiveLimiter{primary: primary, fallback: fallback, log: log}
}

func (a *AdaptiveLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if a.primary == nil {
		return a.observe(ctx, "memory", a.fallback, key, limit, window)
	}

	res, err := a.observe(ctx, "redis", a.primary, key, limit, window)
	if err == nil {
		return res, nil
	}

	primaryFailuresTotal.Inc()
	a.log.Warn("shared rate limiter unavailable, counting locally",
		slog.String("key", key),
		slog.Any("error", err),
	)

	return a.observe(ctx, "fallback", a.fallback, key, max(limit/2, 1), window)
}

func (a *AdaptiveLimiter) observe(ctx context.Context, backend string, l Limiter, key string, limit int, window time.Duration) (*Result, error) {
	res, err := l.Check(ctx, key, limit, window)
	if err != nil {
		return nil, err
	}

	outcome := "allowed"
	if !res.Allowed {
		outcome = "rejected"
	}
	checksTotal.WithLabelValues(backend, outcome).Inc()
	return res, nil
}
