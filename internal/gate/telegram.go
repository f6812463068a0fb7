package gate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
)

// ChatAPI is the subset of *telebot.Bot the resolver needs.
type ChatAPI interface {
	ChatByUsername(name string) (*telebot.Chat, error)
	ChatMemberOf(chat, user telebot.Recipient) (*telebot.ChatMember, error)
}

// TelegramResolver asks the Bot API for channel membership. The channel chat is
// resolved lazily and remembered after the first success.
type TelegramResolver struct {
	api     ChatAPI
	channel string

	mu   sync.Mutex
	chat *telebot.Chat
}

// NewTelegramResolver creates a resolver for channel, given as "@name" or "name".
func NewTelegramResolver(api ChatAPI, channel string) *TelegramResolver {
	channel = strings.TrimSpace(channel)
	if channel != "" && !strings.HasPrefix(channel, "@") {
		channel = "@" + channel
	}
	return &TelegramResolver{api: api, channel: channel}
}

// Status implements MembershipResolver.
func (r *TelegramResolver) Status(ctx context.Context, userID int64) (MembershipStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	chat, err := r.channelChat()
	if err != nil {
		return "", err
	}

	member, err := r.api.ChatMemberOf(chat, &telebot.User{ID: userID})
	if err != nil {
		return "", apperrors.NewTelegramError("getChatMember", err)
	}
	if member == nil {
		return "", fmt.Errorf("empty chat member for user %d", userID)
	}

	return MembershipStatus(member.Role), nil
}

func (r *TelegramResolver) channelChat() (*telebot.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.chat != nil {
		return r.chat, nil
	}

	chat, err := r.api.ChatByUsername(r.channel)
	if err != nil {
		return nil, apperrors.NewTelegramError("getChat", err)
	}

	r.chat = chat
	return chat, nil
}
