// Package health aggregates component checks for the ops endpoint.
package health

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"

	"gopkg.in/telebot.v3"
)

// StatusOK is reported for components whose check passed.
const StatusOK = "OK"

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// CheckFunc adapts a function to Checkable.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

// Checker runs named component checks concurrently.
type Checker struct {
	mu     sync.RWMutex
	log    *slog.Logger
	checks map[string]Checkable
}

func NewChecker(log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{log: log, checks: make(map[string]Checkable)}
}

// AddCheck registers check under name, replacing an earlier one. Empty names and
// nil checks are ignored.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}

	c.mu.Lock()
	c.checks[name] = check
	c.mu.Unlock()
}

// Check returns StatusOK or the failure text for every component, and whether all passed.
func (c *Checker) Check(ctx context.Context) (map[string]string, bool) {
	c.mu.RLock()
	checks := maps.Clone(c.checks)
	c.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(checks))
		healthy = true
	)
	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			status := StatusOK
			if err := check.HealthCheck(ctx); err != nil {
				c.log.Error("health check failed", slog.String("component", name), slog.Any("error", err))
				status = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = status
			if status != StatusOK {
				healthy = false
			}
		}()
	}
	wg.Wait()

	return results, healthy
}

// ContextPinger is satisfied by *sqlx.DB and *sql.DB.
type ContextPinger interface {
	PingContext(ctx context.Context) error
}

// DBChecker pings PostgreSQL.
type DBChecker struct {
	db ContextPinger
}

func NewDBChecker(db ContextPinger) *DBChecker {
	return &DBChecker{db: db}
}

func (c *DBChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.db == nil {
		return errors.New("database: no connection")
	}
	return c.db.PingContext(ctx)
}

// TelegramChecker verifies that the bot authenticated against the Bot API.
type TelegramChecker struct {
	bot *telebot.Bot
}

func NewTelegramChecker(bot *telebot.Bot) *TelegramChecker {
	return &TelegramChecker{bot: bot}
}

// HealthCheck passes once getMe succeeded during start-up.
func (c *TelegramChecker) HealthCheck(context.Context) error {
	if c == nil || c.bot == nil || c.bot.Me == nil {
		return errors.New("telegram: bot identity unknown")
	}
	return nil
}
