package ratelimit

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// MemoryLimiter keeps a sliding window of hit timestamps per key inside the process.
// Rejected requests are not recorded.
type MemoryLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	log  *slog.Logger
	now  func() time.Time
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter returns an empty in-process limiter.
func NewMemoryLimiter(log *slog.Logger) *MemoryLimiter {
	if log == nil {
		log = slog.Default()
	}

	return &MemoryLimiter{
		hits: make(map[string][]time.Time),
		log:  log,
		now:  time.Now,
	}
}

func (m *MemoryLimiter) Check(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	hits := dropBefore(m.hits[key], now.Add(-window))
	allowed := len(hits) < limit
	if allowed {
		hits = append(hits, now)
	}
	m.hits[key] = hits

	res := &Result{
		Allowed:   allowed,
		Remaining: max(limit-len(hits), 0),
		ResetAt:   now.Add(window),
	}
	if len(hits) > 0 {
		res.ResetAt = hits[0].Add(window)
	}
	return res, nil
}

// Sweep forgets keys whose latest hit is older than maxAge.
func (m *MemoryLimiter) Sweep(_ context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int
	for key, hits := range m.hits {
		if n := len(hits); n > 0 && !hits[n-1].Before(cutoff) {
			continue
		}
		delete(m.hits, key)
		removed++
	}
	return removed, nil
}

// Len reports how many keys currently hold state.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hits)
}

// dropBefore removes the leading timestamps older than start. hits is sorted ascending.
func dropBefore(hits []time.Time, start time.Time) []time.Time {
	i := sort.Search(len(hits), func(i int) bool { return !hits[i].Before(start) })
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}
