package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/Yusufakmalov/MY-MEAT/pkg/logger"
	"github.com/Yusufakmalov/MY-MEAT/pkg/metrics"
)

const (
	genericUserMessage = "errors.generic"
	unknownCode        = "unknown"
)

// Handler turns failures that reached the top of an update into a log line, a metric,
// an optional Sentry event and the i18n key to show the user.
type Handler struct {
	log           *slog.Logger
	sentryEnabled bool
}

func NewHandler(log *slog.Logger, sentryEnabled bool) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:           log,
		sentryEnabled: sentryEnabled,
	}
}

// Handle reports err and returns the i18n key of the user message and whether the
// action may succeed if repeated.
func (h *Handler) Handle(ctx context.Context, err error) (string, bool) {
	if err == nil {
		return "", false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	appErr := classify(err)

	attrs := []any{
		slog.String("code", appErr.Code),
		slog.String("severity", string(appErr.Severity)),
		slog.Bool("retryable", appErr.Retryable),
		slog.Any("error", err),
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("correlation_id", id))
	}

	level := slog.LevelWarn
	if appErr.Severity == SeverityHigh || appErr.Severity == SeverityCritical {
		level = slog.LevelError
	}
	h.log.Log(ctx, level, "update failed", attrs...)
	metrics.RecordError(appErr.Code, string(appErr.Severity))

	if h.sentryEnabled && level == slog.LevelError {
		capture(err, appErr)
	}

	if appErr.UserMessage == "" {
		return genericUserMessage, appErr.Retryable
	}
	return appErr.UserMessage, appErr.Retryable
}

// classify finds the AppError in err's chain. Anything else is an unknown high severity failure.
func classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		return appErr
	}

	return &AppError{
		Code:        unknownCode,
		Message:     err.Error(),
		UserMessage: genericUserMessage,
		Severity:    SeverityHigh,
		cause:       err,
	}
}

func capture(err error, appErr *AppError) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("code", appErr.Code)
		scope.SetTag("severity", string(appErr.Severity))
		sentry.CaptureException(err)
	})
}
