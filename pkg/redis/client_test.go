package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
)

func TestNew_PingsAndInstruments(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := New(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	before := testutil.ToFloat64(redisRequestsTotal.WithLabelValues("set"))
	require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
	assert.Equal(t, before+1, testutil.ToFloat64(redisRequestsTotal.WithLabelValues("set")))

	missBefore := testutil.ToFloat64(redisErrorsTotal.WithLabelValues("get"))
	_, err = client.Get(ctx, "missing").Result()
	require.Error(t, err)
	assert.Equal(t, missBefore, testutil.ToFloat64(redisErrorsTotal.WithLabelValues("get")), "redis.Nil is not an error")

	pipeBefore := testutil.ToFloat64(redisRequestsTotal.WithLabelValues("pipeline"))
	pipe := client.TxPipeline()
	pipe.Incr(ctx, "counter")
	pipe.Get(ctx, "counter")
	_, err = pipe.Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, pipeBefore+1, testutil.ToFloat64(redisRequestsTotal.WithLabelValues("pipeline")))
}

func TestHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := New(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.HealthCheck(ctx))

	mr.Close()
	assert.Error(t, client.HealthCheck(ctx))
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
