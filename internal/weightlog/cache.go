package weightlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	latestKeyPrefix = "liftlog-latest-weight||"
	DefaultCacheTTL = 24 * time.Hour
)

// LatestCache keeps the most recent weight log of each user in redis.
type LatestCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewLatestCache(redisClient *redis.Client, ttl time.Duration) *LatestCache {
	return &LatestCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func LatestKey(userID string) string {
	return latestKeyPrefix + userID
}

// Get returns false on a cache miss.
func (c *LatestCache) Get(ctx context.Context, userID string) (*WeightLog, bool, error) {
	raw, err := c.redisClient.Get(ctx, LatestKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get latest weight: %w", err)
	}

	var wl WeightLog
	if err := json.Unmarshal(raw, &wl); err != nil {
		return nil, false, fmt.Errorf("unmarshal latest weight: %w", err)
	}
	return &wl, true, nil
}

func (c *LatestCache) Set(ctx context.Context, wl WeightLog) error {
	raw, err := json.Marshal(wl)
	if err != nil {
		return fmt.Errorf("marshal latest weight: %w", err)
	}
	if err := c.redisClient.Set(ctx, LatestKey(wl.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set latest weight: %w", err)
	}
	return nil
}
