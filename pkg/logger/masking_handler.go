package logger

import (
	"context"
	"log/slog"
	"strings"
)

const redacted = "***"

// secretKeys are matched case-insensitively, either whole or as a "_"-separated suffix
// such as bot_token.
var secretKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"secret":        {},
	"dsn":           {},
	"database_url":  {},
	"authorization": {},
}

// MaskingHandler replaces the values of secret attributes with "***" before
// the record reaches next.
type MaskingHandler struct {
	next slog.Handler
}

func NewMaskingHandler(next slog.Handler) *MaskingHandler {
	return &MaskingHandler{next: next}
}

func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *MaskingHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(redact(a))
		return true
	})
	return h.next.Handle(ctx, clean)
}

func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		clean = append(clean, redact(a))
	}
	return &MaskingHandler{next: h.next.WithAttrs(clean)}
}

func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{next: h.next.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	if isSecret(a.Key) {
		return slog.String(a.Key, redacted)
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return a
	}

	members := v.Group()
	clean := make([]slog.Attr, len(members))
	for i, m := range members {
		clean[i] = redact(m)
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
}

func isSecret(key string) bool {
	key = strings.ToLower(key)
	if _, ok := secretKeys[key]; ok {
		return true
	}
	if i := strings.LastIndexByte(key, '_'); i >= 0 {
		_, ok := secretKeys[key[i+1:]]
		return ok
	}
	return false
}
