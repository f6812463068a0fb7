package domain

import "time"

// User represents a Telegram user recorded on first contact with the bot.
type User struct {
	TelegramID   int64
	FirstName    string
	LastName     string
	Username     string
	IsSubscribed bool
	CreatedAt    time.Time
}
