package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/config"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(context.Background(),
		config.RedisConfig{Addr: mr.Addr(), PoolSize: 2},
		config.RetryConfig{MaxAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestGetSetDel(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	require.True(t, IsNilError(err))

	require.NoError(t, c.Set(ctx, "threshold:abc:1", "payload", time.Minute))
	v, err := c.Get(ctx, "threshold:abc:1")
	require.NoError(t, err)
	require.Equal(t, "payload", v)
	require.Equal(t, time.Minute, mr.TTL("threshold:abc:1"))

	require.NoError(t, c.Del(ctx, "threshold:abc:1"))
	require.False(t, mr.Exists("threshold:abc:1"))
}

func TestFlushByPattern(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("threshold:a:1", "x"))
	require.NoError(t, mr.Set("threshold:a:2", "x"))
	require.NoError(t, mr.Set("other", "x"))

	deleted, err := c.FlushByPattern(ctx, "threshold:*")
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)
	require.True(t, mr.Exists("other"))
}

func TestNewClientUnreachable(t *testing.T) {
	_, err := NewClient(context.Background(),
		config.RedisConfig{Addr: "127.0.0.1:1"},
		config.RetryConfig{MaxAttempts: 1})
	require.Error(t, err)
}
