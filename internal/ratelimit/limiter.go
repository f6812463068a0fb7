// Package ratelimit throttles how often a single user can hit the bot.
package ratelimit

import (
	"context"
	"strconv"
	"time"
)

// Result captures the outcome of a rate-limit evaluation.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter describes a rate-limiting strategy. A denied request is reported through
// Result.Allowed; errors are reserved for backend failures.
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// UserKey returns the limiter key for a Telegram user.
func UserKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}
