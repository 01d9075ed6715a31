// Package cache stores rendered threshold answers in Redis, keyed by the
// vocabulary checksum so a rebuilt vocabulary never serves stale answers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/headline-analytics/internal/vocab"
	"github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/headline-analytics/pkg/redis"
)

const keyPrefix = "threshold:"

// Store is the subset of *pkgredis.Client the cache uses.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

type ThresholdCache struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates a ThresholdCache. m may be nil.
func New(store Store, ttl time.Duration, m *metrics.Metrics) *ThresholdCache {
	return &ThresholdCache{
		store:   store,
		ttl:     ttl,
		metrics: m,
		logger:  slog.Default().With("component", "threshold-cache"),
	}
}

func (c *ThresholdCache) Get(ctx context.Context, checksum string, n int) (*vocab.Answer, bool) {
	key := Key(checksum, n)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.miss()
		return nil, false
	}
	var answer vocab.Answer
	if err := json.Unmarshal([]byte(data), &answer); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.miss()
		return nil, false
	}
	c.hit()
	c.logger.Debug("cache hit", "key", key)
	return &answer, true
}

func (c *ThresholdCache) Set(ctx context.Context, checksum string, n int, answer *vocab.Answer) {
	key := Key(checksum, n)
	data, err := json.Marshal(answer)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached answer for (checksum, n) or computes and
// stores it. Concurrent misses for the same key share one computation.
// Errors from compute are returned uncached; Redis errors never are.
func (c *ThresholdCache) GetOrCompute(
	ctx context.Context,
	checksum string,
	n int,
	compute func() (*vocab.Answer, error),
) (*vocab.Answer, bool, error) {
	if answer, ok := c.Get(ctx, checksum, n); ok {
		return answer, true, nil
	}
	val, err, _ := c.group.Do(Key(checksum, n), func() (any, error) {
		answer, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, checksum, n, answer)
		return answer, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*vocab.Answer), false, nil
}

// Invalidate deletes every cached threshold answer.
func (c *ThresholdCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating threshold cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

// Stats returns hit and miss counts since creation.
func (c *ThresholdCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Key builds the Redis key for rank n of the vocabulary with checksum.
func Key(checksum string, n int) string {
	if len(checksum) > 16 {
		checksum = checksum[:16]
	}
	return keyPrefix + checksum + ":" + strconv.Itoa(n)
}

func (c *ThresholdCache) hit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *ThresholdCache) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}
