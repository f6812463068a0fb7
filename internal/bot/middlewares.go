package bot

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/handlers"
	errors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
	"github.com/Yusufakmalov/MY-MEAT/pkg/logger"
)

const genericErrorKey = "errors.generic"

// failureReporter classifies a failed update and answers a pending callback with
// a short alert. The menu message itself is never touched.
type failureReporter struct {
	handler *errors.Handler
	tr      i18n.Translator
	log     *slog.Logger
}

func (f failureReporter) report(c telebot.Context, err error) {
	key := genericErrorKey
	if f.handler == nil {
		f.log.Error("update failed", slog.Any("error", err))
	} else if msg, _ := f.handler.Handle(handlers.RequestContext(c), err); msg != "" {
		key = msg
	}

	if c == nil || c.Callback() == nil {
		return
	}

	text := key
	if f.tr != nil {
		text = f.tr.T(key)
	}
	if rerr := c.Respond(&telebot.CallbackResponse{Text: text, ShowAlert: true}); rerr != nil {
		f.log.Warn("could not answer callback after failure", slog.Any("error", rerr))
	}
}

// RecoveryMiddleware turns a handler panic into an internal error report.
func RecoveryMiddleware(log *slog.Logger, errHandler *errors.Handler, tr i18n.Translator) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}
	rep := failureReporter{handler: errHandler, tr: tr, log: log}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				log.Error("handler panicked", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
				rep.report(c, errors.NewInternalError(fmt.Errorf("panic: %v", r)))
				err = nil
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware reports handler errors and swallows them.
func ErrorHandlingMiddleware(errHandler *errors.Handler, tr i18n.Translator, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}
	rep := failureReporter{handler: errHandler, tr: tr, log: log}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if err := next(c); err != nil {
				rep.report(c, err)
			}
			return nil
		}
	}
}

// LoggingMiddleware stores a fresh correlation id in the update's request context
// and logs the start and end of every update.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			started := time.Now()
			id := logger.NewCorrelationID()
			handlers.WithRequestContext(c, logger.ContextWithCorrelationID(handlers.RequestContext(c), id))

			var userID int64
			if s := c.Sender(); s != nil {
				userID = s.ID
			}
			action := c.Text()
			if cb := c.Callback(); cb != nil {
				action = cb.Data
			}

			l := log.With(
				slog.String("correlation_id", id),
				slog.Int64("user_id", userID),
				slog.String("action", action),
			)
			l.Info("update received")

			err := next(c)
			l.Info("update done", slog.Duration("duration", time.Since(started)), slog.Any("error", err))
			return err
		}
	}
}
