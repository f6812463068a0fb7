package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "ratelimit:"
	sweepBatch     = 100
)

var errNoRedis = errors.New("ratelimit: redis client is nil")

// RedisClient is the part of go-redis used by RedisLimiter.
type RedisClient interface {
	TxPipeline() redis.Pipeliner
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLimiter shares sliding windows between bot replicas. Every key is a sorted
// set of hits scored by their unix milliseconds. Rejected hits are recorded too,
// so a user who keeps pressing buttons stays throttled.
type RedisLimiter struct {
	client RedisClient
	log    *slog.Logger
}

var _ Limiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client RedisClient, log *slog.Logger) *RedisLimiter {
	if log == nil {
		log = slog.Default()
	}
	return &RedisLimiter{client: client, log: log}
}

func (l *RedisLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if l.client == nil {
		return nil, errNoRedis
	}

	now := time.Now()
	if limit <= 0 {
		return &Result{ResetAt: now.Add(window)}, nil
	}

	setKey := redisKeyPrefix + key
	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "-inf", exclusiveScore(now.Add(-window)))
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
	card := pipe.ZCard(ctx, setKey)
	pipe.Expire(ctx, setKey, 2*window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Error("redis rate limit check failed", slog.String("key", key), slog.Any("error", err))
		return nil, fmt.Errorf("ratelimit: check %s: %w", key, err)
	}

	hits := int(card.Val())
	return &Result{
		Allowed:   hits <= limit,
		Remaining: max(limit-hits, 0),
		ResetAt:   now.Add(window),
	}, nil
}

// Sweep trims hits older than maxAge from every limiter key and deletes the sets it empties.
func (l *RedisLimiter) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	if l.client == nil {
		return 0, errNoRedis
	}

	cutoff := exclusiveScore(time.Now().Add(-maxAge))
	iter := l.client.Scan(ctx, 0, redisKeyPrefix+"*", sweepBatch).Iterator()

	var deleted int
	for iter.Next(ctx) {
		key := iter.Val()
		empty, err := l.trim(ctx, key, cutoff)
		if err != nil {
			l.log.Warn("redis rate limit trim failed", slog.String("key", key), slog.Any("error", err))
			continue
		}
		if !empty {
			continue
		}
		if err := l.client.Del(ctx, key).Err(); err != nil {
			l.log.Warn("redis rate limit delete failed", slog.String("key", key), slog.Any("error", err))
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("ratelimit: scan keys: %w", err)
	}

	return deleted, nil
}

func (l *RedisLimiter) trim(ctx context.Context, key, cutoff string) (bool, error) {
	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", cutoff)
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return card.Val() == 0, nil
}

// exclusiveScore renders t as an exclusive sorted-set bound.
func exclusiveScore(t time.Time) string {
	return "(" + strconv.FormatInt(t.UnixMilli(), 10)
}
