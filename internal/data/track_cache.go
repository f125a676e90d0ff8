package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spotdown/spotdown/internal/domain/model"
)

// RedisTrackCache caches resolved track metadata in Redis, keyed by track ID.
// A nil client disables the cache; both operations become no-ops so callers
// never need to branch on availability.
type RedisTrackCache struct {
	client redis.UniversalClient
}

// NewRedisTrackCache creates a new RedisTrackCache with the given Redis client.
func NewRedisTrackCache(client redis.UniversalClient) *RedisTrackCache {
	return &RedisTrackCache{client: client}
}

// Get retrieves cached track metadata. A cache miss returns (nil, nil).
func (c *RedisTrackCache) Get(ctx context.Context, trackID string) (*model.TrackInfo, error) {
	if c.client == nil {
		return nil, nil
	}
	if trackID == "" {
		return nil, errors.New("trackID cannot be empty")
	}

	val, err := c.client.Get(ctx, cacheKey(trackID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var info model.TrackInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return nil, fmt.Errorf("decode cached track: %w", err)
	}
	return &info, nil
}

// Set stores track metadata with the given TTL.
func (c *RedisTrackCache) Set(ctx context.Context, trackID string, info *model.TrackInfo, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if trackID == "" {
		return errors.New("trackID cannot be empty")
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode track: %w", err)
	}
	return c.client.Set(ctx, cacheKey(trackID), payload, ttl).Err()
}

func cacheKey(trackID string) string {
	return "track:" + trackID
}
