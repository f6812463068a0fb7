// Package lifecycle runs shutdown hooks when the process stops.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Hook is a named release step.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Shutdown releases resources in reverse acquisition order, the way deferred calls do.
type Shutdown struct {
	mu    sync.Mutex
	hooks []Hook
	log   *slog.Logger
}

func NewShutdown(log *slog.Logger) *Shutdown {
	if log == nil {
		log = slog.Default()
	}

	return &Shutdown{log: log}
}

// Register pushes fn. Call it right after the resource fn releases was acquired.
func (s *Shutdown) Register(name string, fn func(context.Context) error) {
	if fn != nil {
		s.mu.Lock()
		s.hooks = append(s.hooks, Hook{Name: name, Fn: fn})
		s.mu.Unlock()
	}
}

// Execute pops hooks newest first. A failing hook does not stop the ones after it;
// once ctx is done the remaining hooks are skipped and reported as failed.
func (s *Shutdown) Execute(ctx context.Context) error {
	s.mu.Lock()
	stack := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	began := time.Now()
	s.log.Info("shutting down", slog.Int("hooks", len(stack)))

	var errs []error
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := s.run(ctx, h); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name, err))
		}
	}

	s.log.Info("shutdown complete", slog.Duration("took", time.Since(began)), slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (s *Shutdown) run(ctx context.Context, h Hook) error {
	hook := slog.String("hook", h.Name)
	if err := ctx.Err(); err != nil {
		s.log.Warn("shutdown hook skipped", hook, slog.Any("error", err))
		return err
	}

	if err := h.Fn(ctx); err != nil {
		s.log.Error("shutdown hook failed", hook, slog.Any("error", err))
		return err
	}
	s.log.Debug("shutdown hook done", hook)
	return nil
}
