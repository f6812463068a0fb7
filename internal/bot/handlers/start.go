package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

// NewStartHandler greets the user with the main menu, or with the subscribe prompt
// when the gate denies access. The user is recorded on the way.
func NewStartHandler(auth Authorizer, users UserRegistrar, screens Renderer, presenter *Presenter, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		ctx := RequestContext(c)
		authorized := auth.IsAuthorized(ctx, sender.ID)

		if users != nil {
			users.Register(ctx, sender, authorized)
		}

		key := menu.KeySubscribe
		if authorized {
			key = menu.KeyMain
		}

		return presenter.Present(c, screens.Render(ctx, key))
	}
}
