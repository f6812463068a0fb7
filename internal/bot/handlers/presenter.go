package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot/keyboard"
	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

var errMediaUnavailable = errors.New("media unavailable")

// MediaOpener opens media files for upload.
type MediaOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// Presenter delivers rendered screens through the update's chat.
type Presenter struct {
	keyboard *keyboard.Builder
	media    MediaOpener
	log      *slog.Logger
}

// NewPresenter creates a Presenter.
func NewPresenter(kb *keyboard.Builder, media MediaOpener, log *slog.Logger) *Presenter {
	if log == nil {
		log = slog.Default()
	}
	if kb == nil {
		kb = keyboard.NewBuilder(log)
	}
	return &Presenter{keyboard: kb, media: media, log: log}
}

// Present delivers screen. Message updates always get a new message; callbacks follow
// the screen's delivery mode and are answered so the client stops its spinner.
func (p *Presenter) Present(c telebot.Context, screen menu.Screen) error {
	if screen.HasMedia() {
		err := p.sendMedia(c, screen)
		switch {
		case err == nil:
			return p.respond(c)
		case !errors.Is(err, errMediaUnavailable):
			return err
		}

		p.log.Warn("falling back to text screen",
			slog.String("key", screen.Key.String()),
			slog.Any("error", err),
		)
		if screen.Fallback != nil {
			screen = *screen.Fallback
		} else {
			screen.Media = nil
		}
	}

	opts := p.options(screen)

	if screen.Delivery == menu.DeliveryEdit && editable(c) {
		if err := c.Edit(screen.Text, opts); err != nil {
			if !IsNotModified(err) {
				return fmt.Errorf("edit %s screen: %w", screen.Key, err)
			}
			p.log.Debug("screen unchanged, edit skipped", slog.String("key", screen.Key.String()))
		}
		return p.respond(c)
	}

	if err := c.Send(screen.Text, opts); err != nil {
		return fmt.Errorf("send %s screen: %w", screen.Key, err)
	}
	return p.respond(c)
}

func (p *Presenter) sendMedia(c telebot.Context, screen menu.Screen) error {
	if p.media == nil {
		return errMediaUnavailable
	}

	rc, err := p.media.Open(screen.Media.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", errMediaUnavailable, err)
	}
	defer rc.Close()

	file := telebot.FromReader(rc)

	var what interface{}
	switch screen.Media.Kind {
	case menu.MediaVideo:
		what = &telebot.Video{
			File:      file,
			Caption:   screen.Text,
			FileName:  path.Base(screen.Media.Path),
			Streaming: true,
		}
	default:
		what = &telebot.Photo{File: file, Caption: screen.Text}
	}

	if err := c.Send(what, p.options(screen)); err != nil {
		return fmt.Errorf("send %s media: %w", screen.Key, err)
	}
	return nil
}

func (p *Presenter) options(screen menu.Screen) *telebot.SendOptions {
	opts := &telebot.SendOptions{ReplyMarkup: p.keyboard.Markup(screen.Rows)}
	if screen.HTML {
		opts.ParseMode = telebot.ModeHTML
	}
	return opts
}

func (p *Presenter) respond(c telebot.Context) error {
	if c.Callback() == nil {
		return nil
	}
	if err := c.Respond(); err != nil {
		p.log.Warn("failed to answer callback", slog.Any("error", err))
	}
	return nil
}

// editable reports whether the update carries a text message that can be edited in place.
func editable(c telebot.Context) bool {
	cb := c.Callback()
	if cb == nil {
		return false
	}
	if msg := cb.Message; msg != nil && (msg.Photo != nil || msg.Video != nil) {
		return false
	}
	return true
}

// IsNotModified reports whether err means an edit would leave the message unchanged.
func IsNotModified(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, telebot.ErrSameMessageContent) {
		return true
	}
	return strings.Contains(err.Error(), "message is not modified")
}
