package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Yusufakmalov/MY-MEAT/internal/domain"
)

const defaultQueryTimeout = 5 * time.Second

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateIfAbsent inserts the user unless a row with the same Telegram id exists.
	// It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error)
}

type userRepository struct {
	db      *sqlx.DB
	timeout time.Duration
	log     *slog.Logger
}

// NewUserRepository creates a new SQL-backed user repository.
func NewUserRepository(db *sqlx.DB, timeout time.Duration, log *slog.Logger) UserRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &userRepository{
		db:      db,
		timeout: timeout,
		log:     log,
	}
}

// CreateIfAbsent persists a new user record; existing rows are never modified.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	const query = `
		INSERT INTO users (tg_id, first_name, last_name, username, is_subscribed, created_at)
		VALUES (:tg_id, :first_name, :last_name, :username, :is_subscribed, :created_at)
		ON CONFLICT (tg_id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.NamedExecContext(ctx, query, userRow{
		TelegramID:   user.TelegramID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Username:     user.Username,
		IsSubscribed: user.IsSubscribed,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to create user", slog.Int64("telegram_id", user.TelegramID), slog.Any("error", err))
		}
		return false, fmt.Errorf("insert user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user rows affected: %w", err)
	}

	return affected > 0, nil
}

type userRow struct {
	TelegramID   int64     `db:"tg_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Username     string    `db:"username"`
	IsSubscribed bool      `db:"is_subscribed"`
	CreatedAt    time.Time `db:"created_at"`
}
