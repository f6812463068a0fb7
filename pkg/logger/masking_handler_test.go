package logger

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskingHandler_MasksSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil)))

	log.Info("bot started", slog.String("token", "123:secret"), slog.String("channel", "@meat"))

	out := buf.String()
	assert.NotContains(t, out, "123:secret")
	assert.Contains(t, out, "token=***")
	assert.Contains(t, out, "channel=@meat")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestMiddleware_SetsCorrelationID(t *testing.T) {
	var seen string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(CorrelationHeader))
}

func TestMiddleware_KeepsInboundCorrelationID(t *testing.T) {
	var seen string
	handler := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set(CorrelationHeader, "probe-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "probe-1", seen)
}

func TestMaskingHandler_MasksGroupsAndWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMaskingHandler(slog.NewTextHandler(&buf, nil))).
		With(slog.String("dsn", "postgres://u:p@db/meat"))

	log.Info("connecting", slog.Group("database", slog.String("password", "hunter2"), slog.String("host", "db")))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "u:p@db")
	assert.Contains(t, out, "database.host=db")
}

func TestIsSecret(t *testing.T) {
	assert.True(t, isSecret("Token"))
	assert.True(t, isSecret("bot_token"))
	assert.True(t, isSecret("DATABASE_URL"))
	assert.False(t, isSecret("token_count_total"))
	assert.False(t, isSecret("channel"))
}
