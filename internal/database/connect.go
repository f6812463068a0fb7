package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

const connectTimeout = 5 * time.Second

// Connect opens the PostgreSQL pool. Connections are made lazily, so an unreachable
// server only produces a warning here; callers degrade per query until it comes back.
func Connect(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDBConnectionString())
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if cfg.Database.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConns)
		db.SetMaxIdleConns(cfg.Database.MaxConns)
	}

	target := []any{
		slog.String("host", cfg.Database.Host),
		slog.String("db", cfg.Database.Name),
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		log.Warn("db unreachable, serving without persistence until it recovers",
			append(target, slog.Duration("duration", time.Since(start)), slog.Any("error", err))...)
		return db, nil
	}

	log.Info("db connected",
		append(target, slog.Int("pool_open", cfg.Database.MaxConns), slog.Duration("duration", time.Since(start)))...)
	return db, nil
}
