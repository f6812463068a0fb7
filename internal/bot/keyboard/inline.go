package keyboard

import (
	"fmt"

	telebot "gopkg.in/telebot.v3"
)

// InlineButton is either a navigation button (Unique plus optional Data) or a link (URL).
type InlineButton struct {
	Text   string
	Unique string
	Data   string
	URL    string
}

func (b InlineButton) markup() (telebot.InlineButton, error) {
	if b.URL != "" {
		return telebot.InlineButton{Text: b.Text, URL: b.URL}, nil
	}

	data, err := EncodeCallback(b.Unique, b.Data)
	if err != nil {
		return telebot.InlineButton{}, fmt.Errorf("button %q: %w", b.Text, err)
	}
	// Unique stays empty on the telebot side so Data goes out without the "\f" prefix.
	return telebot.InlineButton{Text: b.Text, Data: data}, nil
}

// InlineKeyboardBuilder collects button rows.
type InlineKeyboardBuilder struct {
	rows [][]InlineButton
}

func NewInlineKeyboard() *InlineKeyboardBuilder {
	return &InlineKeyboardBuilder{}
}

// AddRow appends a copy of buttons as one row. Empty rows are dropped.
func (b *InlineKeyboardBuilder) AddRow(buttons ...InlineButton) *InlineKeyboardBuilder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, append([]InlineButton(nil), buttons...))
	}
	return b
}

// Build fails on the first button whose callback data cannot be encoded.
func (b *InlineKeyboardBuilder) Build() (*telebot.ReplyMarkup, error) {
	rows := make([][]telebot.InlineButton, 0, len(b.rows))
	for _, row := range b.rows {
		out := make([]telebot.InlineButton, 0, len(row))
		for _, btn := range row {
			ib, err := btn.markup()
			if err != nil {
				return nil, err
			}
			out = append(out, ib)
		}
		rows = append(rows, out)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}, nil
}
