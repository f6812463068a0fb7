package middleware

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
	apperrors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
	"github.com/Yusufakmalov/MY-MEAT/internal/ratelimit"
)

// RateLimitMiddleware throttles updates per sender. Whitelisted users, updates
// without a sender and limiter failures all pass through.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	rules   *ratelimit.Rules
	tr      i18n.Translator
	log     *slog.Logger
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, rules *ratelimit.Rules, tr i18n.Translator, log *slog.Logger) *RateLimitMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &RateLimitMiddleware{limiter: limiter, rules: rules, tr: tr, log: log}
}

// Handle is a handlers.Middleware.
func (m *RateLimitMiddleware) Handle(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		if m.throttled(c) {
			return m.reject(c)
		}
		return next(c)
	}
}

func (m *RateLimitMiddleware) throttled(c telebot.Context) bool {
	if m.limiter == nil || !m.rules.Enabled() {
		return false
	}

	sender := c.Sender()
	if sender == nil || m.rules.IsWhitelisted(sender.ID) {
		return false
	}
	uid := slog.Int64("user_id", sender.ID)

	limit, window, err := m.rules.GetPerUserLimit()
	if err != nil {
		m.log.Error("per-user rate limit misconfigured", uid, slog.Any("error", err))
		return false
	}

	res, err := m.limiter.Check(handlers.RequestContext(c), ratelimit.UserKey(sender.ID), limit, window)
	if err != nil {
		m.log.Warn("rate limit check failed, letting update through", uid, slog.Any("error", err))
		return false
	}
	if res.Allowed {
		return false
	}

	m.log.Warn("user throttled", uid, slog.Time("reset_at", res.ResetAt))
	return true
}

func (m *RateLimitMiddleware) reject(c telebot.Context) error {
	text := apperrors.NewRateLimitError(0).UserMessage
	if m.tr != nil {
		text = m.tr.T(text)
	}

	if c.Callback() != nil {
		return c.Respond(&telebot.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
