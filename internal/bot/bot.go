package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
	"github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"
	errors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
	"github.com/Yusufakmalov/MY-MEAT/internal/middleware"
	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

// Deps groups the collaborators the bot dispatches to.
type Deps struct {
	Gate       handlers.Authorizer
	Users      handlers.UserRegistrar
	Menu       handlers.Renderer
	Media      handlers.MediaOpener
	Translator i18n.Translator
	RateLimit  *middleware.RateLimitMiddleware
	ErrHandler *errors.Handler
}

// Bot wraps telebot.Bot with the router serving the menu.
type Bot struct {
	telebot *telebot.Bot
	router  *Router
	tr      i18n.Translator
	log     *slog.Logger
}

// NewTelebot creates the Telegram client for the configured run mode.
func NewTelebot(cfg config.Config) (*telebot.Bot, error) {
	settings := telebot.Settings{Token: cfg.Bot.Token}

	if cfg.Bot.Mode == config.ModeWebhook {
		webhook := &telebot.Webhook{Listen: cfg.Bot.Webhook.Listen}
		if cfg.Bot.Webhook.PublicURL != "" {
			webhook.Endpoint = &telebot.WebhookEndpoint{PublicURL: cfg.Bot.Webhook.PublicURL}
		}
		settings.Poller = webhook
	} else {
		settings.Poller = &telebot.LongPoller{Timeout: cfg.Bot.Timeout}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}
	return tb, nil
}

// New wires the router into tb. A nil tb builds the router only.
func New(tb *telebot.Bot, log *slog.Logger, deps Deps) *Bot {
	if log == nil {
		log = slog.Default()
	}

	b := &Bot{
		telebot: tb,
		router:  buildRouter(log, deps),
		tr:      deps.Translator,
		log:     log,
	}

	if tb != nil {
		tb.Handle(telebot.OnText, b.router.Route)
		tb.Handle(telebot.OnCallback, b.router.Route)
	}

	return b
}

func buildRouter(log *slog.Logger, deps Deps) *Router {
	presenter := handlers.NewPresenter(keyboard.NewBuilder(log), deps.Media, log)
	router := NewRouter(log)

	router.Use(RecoveryMiddleware(log, deps.ErrHandler, deps.Translator))
	router.Use(LoggingMiddleware(log))
	router.Use(ErrorHandlingMiddleware(deps.ErrHandler, deps.Translator, log))
	if deps.RateLimit != nil {
		router.Use(deps.RateLimit.Handle)
	}
	router.Use(middleware.Metrics)

	router.RegisterCommand(CommandStart, handlers.NewStartHandler(deps.Gate, deps.Users, deps.Menu, presenter, log))
	router.RegisterCallback(CallbackCheckSubscription, handlers.NewCheckSubscriptionHandler(deps.Gate, deps.Menu, presenter))
	router.SetCallbackFallback(handlers.NewNavigationHandler(deps.Gate, deps.Menu, presenter, log))
	router.SetDefault(handlers.NewHelpHandler(deps.Translator))

	return router
}

// Route dispatches a single update through the middleware chain.
func (b *Bot) Route(c telebot.Context) error {
	return b.router.Route(c)
}

// Start advertises the command list and runs the update loop until Stop.
func (b *Bot) Start() {
	if b.telebot == nil {
		return
	}

	if b.tr != nil {
		if err := b.telebot.SetCommands(commandList(b.tr)); err != nil {
			b.log.Warn("failed to register bot commands", slog.Any("error", err))
		}
	}

	username := ""
	if b.telebot.Me != nil {
		username = b.telebot.Me.Username
	}
	b.log.Info("telegram bot started", slog.String("username", username))
	b.telebot.Start()
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}
