package logger

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CorrelationHeader carries the correlation id on ops HTTP requests and responses.
const CorrelationHeader = "X-Correlation-ID"

// maxInboundIDLen bounds ids accepted from callers; longer ones are replaced.
const maxInboundIDLen = 64

type correlationIDKey struct{}

// CorrelationIDFromContext returns "" when ctx carries no id.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func NewCorrelationID() string {
	return uuid.NewString()
}

// Middleware reuses the caller's correlation id when it looks sane and echoes it back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationHeader)
		if id == "" || len(id) > maxInboundIDLen {
			id = NewCorrelationID()
		}

		w.Header().Set(CorrelationHeader, id)
		next.ServeHTTP(w, r.WithContext(ContextWithCorrelationID(r.Context(), id)))
	})
}
