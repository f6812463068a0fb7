package handlers

import (
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

// NewNavigationHandler serves menu button presses. Users who fail the gate are
// shown the subscribe prompt instead of the requested screen.
func NewNavigationHandler(auth Authorizer, screens Renderer, presenter *Presenter, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		ctx := RequestContext(c)
		sender := c.Sender()
		if sender == nil || !auth.IsAuthorized(ctx, sender.ID) {
			return presenter.Present(c, screens.Render(ctx, menu.KeySubscribeRetry))
		}

		key := menu.Key(strings.TrimPrefix(strings.TrimSpace(cb.Data), "\f"))
		log.Debug("navigating", slog.Int64("user_id", sender.ID), slog.String("key", key.String()))

		return presenter.Present(c, screens.Render(ctx, key))
	}
}

// NewCheckSubscriptionHandler re-runs the gate after the user claims to have subscribed.
func NewCheckSubscriptionHandler(auth Authorizer, screens Renderer, presenter *Presenter) Handler {
	return func(c telebot.Context) error {
		ctx := RequestContext(c)

		key := menu.KeySubscribeRetry
		if sender := c.Sender(); sender != nil && auth.IsAuthorized(ctx, sender.ID) {
			key = menu.KeySubscribed
		}

		return presenter.Present(c, screens.Render(ctx, key))
	}
}
