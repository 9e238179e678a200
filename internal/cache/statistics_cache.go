// Package cache holds the Redis-backed read-through cache for statistics
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/syllablegame/backend/internal/models"
)

// Redis keys of the cached statistics response and of its version counter
//
// The version is bumped on every invalidation. A response read from the
// database is only stored when the version is still the one seen before the
// read, so a snapshot taken before a write can never outlive that write.
const (
	StatisticsKey        = "syllablegame:statistics"
	StatisticsVersionKey = "syllablegame:statistics:version"
)

// StatisticsCache caches the statistics response in Redis
type StatisticsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStatisticsCache creates a cache over an existing Redis client
func NewStatisticsCache(client redis.UniversalClient, ttl time.Duration) *StatisticsCache {
	return &StatisticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Connect parses a redis:// url, opens a client and pings it
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// GetStatistics returns the cached response (nil on a miss) and the current version
func (c *StatisticsCache) GetStatistics(ctx context.Context) (*models.StatisticsResponse, int64, error) {
	values, err := c.client.MGet(ctx, StatisticsKey, StatisticsVersionKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cached statistics: %w", err)
	}

	version, err := parseVersion(values[1])
	if err != nil {
		return nil, 0, err
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, version, nil
	}

	var stats models.StatisticsResponse
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cached statistics: %w", err)
	}
	return &stats, version, nil
}

func parseVersion(value any) (int64, error) {
	raw, ok := value.(string)
	if !ok {
		return 0, nil
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid statistics version %q: %w", raw, err)
	}
	return version, nil
}

// SetStatistics stores the response for the configured TTL if "version" is still current
//
// It reports false, nil when an invalidation happened since "version" was read.
func (c *StatisticsCache) SetStatistics(ctx context.Context, version int64, stats *models.StatisticsResponse) (bool, error) {
	data, err := json.Marshal(stats)
	if err != nil {
		return false, fmt.Errorf("failed to encode statistics: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, StatisticsVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, StatisticsKey, data, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, StatisticsVersionKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to cache statistics: %w", err)
	}
	return stored, nil
}

// InvalidateStatistics bumps the version and drops the cached response
func (c *StatisticsCache) InvalidateStatistics(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, StatisticsVersionKey)
		pipe.Del(ctx, StatisticsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate cached statistics: %w", err)
	}
	return nil
}
