package handlers

import (
	"context"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

// Handler processes a routed update.
type Handler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler

const requestContextKey = "request_ctx"

// WithRequestContext stores ctx on the update so downstream handlers share its values and deadline.
func WithRequestContext(c telebot.Context, ctx context.Context) {
	if c == nil || ctx == nil {
		return
	}
	c.Set(requestContextKey, ctx)
}

// RequestContext returns the context stored by WithRequestContext or context.Background.
func RequestContext(c telebot.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if ctx, ok := c.Get(requestContextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

// Authorizer decides whether a user may navigate the menu.
type Authorizer interface {
	IsAuthorized(ctx context.Context, userID int64) bool
}

// UserRegistrar records users on first contact.
type UserRegistrar interface {
	Register(ctx context.Context, sender *telebot.User, subscribed bool)
}

// Renderer turns navigation keys into screens.
type Renderer interface {
	Render(ctx context.Context, key menu.Key) menu.Screen
}
