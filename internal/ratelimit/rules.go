package ratelimit

import (
	"errors"
	"time"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

// Rules encapsulates configured rate limits and helper methods.
type Rules struct {
	config    config.RateLimitConfig
	whitelist map[int64]struct{}
}

// NewRules constructs rate limiting rules from configuration settings.
// Extra ids, such as the bot owner, are whitelisted alongside the configured ones.
func NewRules(cfg config.RateLimitConfig, extra ...int64) *Rules {
	whitelist := make(map[int64]struct{}, len(cfg.Whitelist)+len(extra))
	for _, id := range append(append([]int64(nil), cfg.Whitelist...), extra...) {
		if id != 0 {
			whitelist[id] = struct{}{}
		}
	}

	return &Rules{config: cfg, whitelist: whitelist}
}

// Enabled reports whether limits are enforced at all.
func (r *Rules) Enabled() bool {
	return r != nil && r.config.Enabled
}

// IsWhitelisted returns true if the userID bypasses rate limits.
func (r *Rules) IsWhitelisted(userID int64) bool {
	_, ok := r.whitelist[userID]
	return ok
}

// GetPerUserLimit returns the per-user rate limiting rule.
func (r *Rules) GetPerUserLimit() (int, time.Duration, error) {
	return parseRule(r.config.PerUser)
}

func parseRule(rule config.RateLimitRule) (int, time.Duration, error) {
	if rule.Window == "" {
		return rule.Limit, 0, errors.New("window duration is not set")
	}
	window, err := time.ParseDuration(rule.Window)
	if err != nil {
		return 0, 0, err
	}
	if window <= 0 {
		return 0, 0, errors.New("window duration must be positive")
	}
	return rule.Limit, window, nil
}
