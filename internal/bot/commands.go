package bot

import (
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
)

// Command constants for Telegram bot commands.
const (
	CommandStart = "/start"
)

// Callback constants handled outside the menu graph.
const (
	CallbackCheckSubscription = string(menu.KeyCheckSubscription)
)

// normalizeCommand extracts "/cmd" from texts like "/cmd@my_bot payload".
func normalizeCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	if idx := strings.IndexAny(text, " \n\t"); idx != -1 {
		text = text[:idx]
	}
	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	return strings.ToLower(text), true
}

// commandList is the menu of commands advertised to Telegram clients.
func commandList(tr i18n.Translator) []telebot.Command {
	return []telebot.Command{
		{Text: strings.TrimPrefix(CommandStart, "/"), Description: tr.T("command.start")},
	}
}
