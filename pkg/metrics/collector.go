package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

var (
	botUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates handled labeled by action and status",
		},
		[]string{"action", "status"},
	)
	updateDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "update_duration_seconds",
			Help:    "Duration of update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
	screenRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screen_renders_total",
			Help: "Total number of rendered menu screens",
		},
		[]string{"screen"},
	)
	subscriptionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_checks_total",
			Help: "Total number of subscription gate decisions by result",
		},
		[]string{"result"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by type and severity",
		},
		[]string{"type", "severity"},
	)
	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of products returned by the last catalog read",
		},
	)
)

func init() {
	menu.RegisterTransitionRecorder(RecordScreen)
}

// RecordUpdate increments update counters and records duration.
func RecordUpdate(action, status string, duration time.Duration) {
	if action == "" {
		action = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botUpdatesTotal.WithLabelValues(action, status).Inc()
	updateDurationSeconds.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordScreen counts rendered screens.
func RecordScreen(screen string) {
	if screen == "" {
		screen = "unknown"
	}

	screenRendersTotal.WithLabelValues(screen).Inc()
}

// RecordSubscriptionCheck counts gate outcomes: owner, member, denied or error.
func RecordSubscriptionCheck(result string) {
	if result == "" {
		result = "unknown"
	}

	subscriptionChecksTotal.WithLabelValues(result).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(errType, severity string) {
	if errType == "" {
		errType = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(errType, severity).Inc()
}

// SetCatalogProducts updates the catalog size gauge.
func SetCatalogProducts(count int) {
	catalogProducts.Set(float64(count))
}
