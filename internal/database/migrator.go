// Package database opens the PostgreSQL pool and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
	"github.com/Yusufakmalov/MY-MEAT/pkg/logger"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Migrator applies plain .up.sql migrations in lexical order and records each
// applied file in schema_migrations. Down migrations are not supported.
type Migrator struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewMigrator constructs a Migrator that logs through the provided logger instance.
func NewMigrator(db *sqlx.DB, log *slog.Logger) *Migrator {
	return &Migrator{
		db:  db,
		log: log,
	}
}

func (m *Migrator) baseLogger() *slog.Logger {
	if m.log != nil {
		return m.log
	}

	m.log = logger.New(config.Config{
		AppEnv: "migrator",
		Logger: config.LoggerConfig{Level: "info", Format: "text"},
	})
	return m.log
}

// ApplyDir applies the migrations found in dir on the OS filesystem.
func (m *Migrator) ApplyDir(ctx context.Context, dir string) error {
	return m.Apply(ctx, os.DirFS(dir), ".")
}

// Apply applies every pending migration under root in fsys.
func (m *Migrator) Apply(ctx context.Context, fsys fs.FS, root string) error {
	names, err := ListMigrations(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations dir %q: %w", root, err)
	}

	baseLog := m.baseLogger().With(slog.String("dir", root))
	if len(names) == 0 {
		baseLog.Info("no .up.sql migrations found")
		return nil
	}

	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []string
	if err := m.db.SelectContext(ctx, &applied, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}

	for _, name := range Pending(names, applied) {
		if err := m.applyFile(ctx, baseLog, fsys, root, name); err != nil {
			return err
		}
	}

	return nil
}

func (m *Migrator) applyFile(ctx context.Context, baseLog *slog.Logger, fsys fs.FS, root, name string) error {
	scopedLog := baseLog.With(slog.String("file", name))
	scopedLog.Info("applying migration")

	data, err := fs.ReadFile(fsys, path.Join(root, name))
	if err != nil {
		return fmt.Errorf("read migration %q: %w", name, err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for migration %q: %w", name, err)
	}

	if statement := strings.TrimSpace(string(data)); statement != "" {
		if _, execErr := tx.ExecContext(ctx, statement); execErr != nil {
			rollback(tx, scopedLog)
			return fmt.Errorf("execute migration %q: %w", name, execErr)
		}
	} else {
		scopedLog.Warn("migration is empty, recording only")
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		rollback(tx, scopedLog)
		return fmt.Errorf("record migration %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %q: %w", name, err)
	}

	return nil
}

func rollback(tx *sqlx.Tx, log *slog.Logger) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error("rollback error", slog.Any("error", err))
	}
}

func isUpMigration(name string) bool {
	return strings.HasSuffix(name, ".up.sql")
}

// ListMigrations returns all .up.sql files in root in lexical order.
func ListMigrations(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isUpMigration(e.Name()) {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}

// Pending returns the names not yet present in applied, keeping their order.
func Pending(names, applied []string) []string {
	done := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		done[name] = struct{}{}
	}

	pending := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := done[name]; !ok {
			pending = append(pending, name)
		}
	}
	return pending
}
