package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
	"github.com/Yusufakmalov/MY-MEAT/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(actionLabel(c), status, time.Since(start))

		return err
	}
}

// actionLabel names the update for metrics with bounded cardinality.
func actionLabel(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil {
		key := menu.Key(strings.TrimPrefix(cb.Data, "\f"))
		if _, ok := key.ProductCode(); ok {
			return menu.ProductKeyPrefix + "*"
		}
		if key == "" {
			return "unknown"
		}
		return "callback:" + key.String()
	}

	text := strings.TrimSpace(c.Text())
	if strings.HasPrefix(text, "/") {
		cmd := strings.Fields(text)[0]
		if idx := strings.Index(cmd, "@"); idx != -1 {
			cmd = cmd[:idx]
		}
		return strings.ToLower(cmd)
	}

	return "text"
}
