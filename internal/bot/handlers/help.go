package handlers

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
)

// NewHelpHandler answers unknown commands with a hint to use /start.
func NewHelpHandler(tr i18n.Translator) Handler {
	return func(c telebot.Context) error {
		return c.Send(tr.T("help.unknown_command"))
	}
}
