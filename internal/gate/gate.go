// Package gate decides whether a user may use the bot.
package gate

import (
	"context"
	"log/slog"

	"github.com/Yusufakmalov/MY-MEAT/pkg/metrics"
)

// MembershipStatus is a user's status in the gating channel as reported by Telegram.
type MembershipStatus string

const (
	StatusCreator       MembershipStatus = "creator"
	StatusAdministrator MembershipStatus = "administrator"
	StatusMember        MembershipStatus = "member"
	StatusRestricted    MembershipStatus = "restricted"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"
)

// Subscribed reports whether the status grants access.
func (s MembershipStatus) Subscribed() bool {
	switch s {
	case StatusMember, StatusAdministrator, StatusCreator:
		return true
	default:
		return false
	}
}

// MembershipResolver fetches a user's status in the configured channel.
type MembershipResolver interface {
	Status(ctx context.Context, userID int64) (MembershipStatus, error)
}

const (
	resultOwner  = "owner"
	resultMember = "member"
	resultDenied = "denied"
	resultError  = "error"
)

// Gate authorizes users by channel subscription. The owner always passes.
type Gate struct {
	resolver MembershipResolver
	ownerID  int64
	log      *slog.Logger
}

// New creates a Gate. ownerID 0 disables the owner bypass.
func New(resolver MembershipResolver, ownerID int64, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}

	return &Gate{
		resolver: resolver,
		ownerID:  ownerID,
		log:      log,
	}
}

// IsAuthorized reports whether userID may navigate the menu. It fails closed.
func (g *Gate) IsAuthorized(ctx context.Context, userID int64) bool {
	if g.ownerID != 0 && userID == g.ownerID {
		g.log.Info("owner bypassed subscription check", slog.Int64("user_id", userID))
		metrics.RecordSubscriptionCheck(resultOwner)
		return true
	}

	if g.resolver == nil {
		metrics.RecordSubscriptionCheck(resultError)
		return false
	}

	status, err := g.resolver.Status(ctx, userID)
	if err != nil {
		g.log.Error("subscription check failed",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		metrics.RecordSubscriptionCheck(resultError)
		return false
	}

	if !status.Subscribed() {
		g.log.Debug("user is not subscribed",
			slog.Int64("user_id", userID),
			slog.String("status", string(status)),
		)
		metrics.RecordSubscriptionCheck(resultDenied)
		return false
	}

	metrics.RecordSubscriptionCheck(resultMember)
	return true
}
