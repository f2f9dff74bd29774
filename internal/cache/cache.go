// Package cache stores rendered timelines in Redis. Each matter keeps a set
// of its cached keys so one write can drop every page and time zone variant.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

type TimelineCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTimelineCache(client *redis.Client, ttl time.Duration) *TimelineCache {
	return &TimelineCache{client: client, ttl: ttl}
}

func TimelineKey(matterID string, limit, offset int, zone string) string {
	return fmt.Sprintf("timeline:%s:%d:%d:%s", matterID, limit, offset, zone)
}

func indexKey(matterID string) string {
	return "timeline-keys:" + matterID
}

func (c *TimelineCache) Get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (c *TimelineCache) Set(ctx context.Context, matterID, key string, value any) error {
	if c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, indexKey(matterID), key)
	pipe.Expire(ctx, indexKey(matterID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateMatter removes every cached timeline of the matter.
func (c *TimelineCache) InvalidateMatter(ctx context.Context, matterID string) error {
	idx := indexKey(matterID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, append(keys, idx)...).Err()
}
