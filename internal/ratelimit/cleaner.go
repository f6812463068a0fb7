package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper drops limiter state older than maxAge and reports how many keys went away.
type Sweeper interface {
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// Cleaner periodically sweeps stale limiter state.
type Cleaner struct {
	sweepers map[string]Sweeper
	maxAge   time.Duration
	interval time.Duration
	log      *slog.Logger
}

// NewCleaner constructs a Cleaner. Entries idle longer than maxAge are removed every interval.
func NewCleaner(interval, maxAge time.Duration, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		sweepers: make(map[string]Sweeper),
		maxAge:   maxAge,
		interval: interval,
		log:      log,
	}
}

// Add registers a backend to sweep under name.
func (c *Cleaner) Add(name string, s Sweeper) {
	if s == nil {
		return
	}
	c.sweepers[name] = s
}

// Run starts the cleaner loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if len(c.sweepers) == 0 || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("rate limit cleaner stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			c.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs every registered sweeper a single time.
func (c *Cleaner) SweepOnce(ctx context.Context) {
	for name, s := range c.sweepers {
		if ctx.Err() != nil {
			return
		}

		removed, err := s.Sweep(ctx, c.maxAge)
		if err != nil {
			c.log.Error("rate limit sweep failed", slog.String("backend", name), slog.Any("error", err))
			continue
		}
		if removed > 0 {
			c.log.Info("rate limit keys cleaned", slog.String("backend", name), slog.Int("keys_removed", removed))
		}
	}
}
