package keyboard

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"
)

// Builder turns screen button rows into telebot markup.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log}
}

// Markup renders rows as inline markup. Buttons whose callback data cannot be encoded are
// dropped with a warning instead of failing the whole screen. Nil is returned for no rows.
func (b *Builder) Markup(rows [][]InlineButton) *telebot.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}

	kb := NewInlineKeyboard()
	for _, row := range rows {
		kept := make([]InlineButton, 0, len(row))
		for _, btn := range row {
			if btn.URL == "" {
				if _, err := EncodeCallback(btn.Unique, btn.Data); err != nil {
					b.log.Warn("dropping button with oversized callback data",
						slog.String("text", btn.Text),
						slog.String("unique", btn.Unique),
						slog.Any("error", err),
					)
					continue
				}
			}
			kept = append(kept, btn)
		}
		kb.AddRow(kept...)
	}

	markup, err := kb.Build()
	if err != nil {
		b.log.Error("failed to build inline keyboard", slog.Any("error", err))
		return nil
	}

	return markup
}
