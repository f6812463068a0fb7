// Package user records the people who talk to the bot.
package user

import (
	"context"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
	apperrors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/repository"
)

// Service provides business operations over users.
type Service struct {
	repo repository.UserRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewService constructs a new Service instance.
func NewService(repo repository.UserRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Register stores the sender on first contact. An existing row is left untouched.
// Store failures are logged and swallowed so they never block the conversation.
func (s *Service) Register(ctx context.Context, sender *telebot.User, subscribed bool) {
	if sender == nil || s.repo == nil {
		return
	}

	u := &domain.User{
		TelegramID:   sender.ID,
		FirstName:    sender.FirstName,
		LastName:     sender.LastName,
		Username:     sender.Username,
		IsSubscribed: subscribed,
		CreatedAt:    s.now().UTC(),
	}

	inserted, err := s.repo.CreateIfAbsent(ctx, u)
	if err != nil {
		s.logError("register", sender.ID, apperrors.NewDatabaseError(err))
		return
	}

	if inserted {
		s.log.Info("user registered",
			slog.Int64("telegram_id", sender.ID),
			slog.Bool("is_subscribed", subscribed),
		)
	}
}

func (s *Service) logError(operation string, telegramID int64, err error) {
	if s == nil || s.log == nil || err == nil {
		return
	}

	s.log.Error("user service operation failed",
		slog.String("operation", operation),
		slog.Int64("telegram_id", telegramID),
		slog.Any("error", err),
	)
}
