// Package cache keeps the customer-facing menu listing in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lounge-orders/models"

	"github.com/redis/go-redis/v9"
)

const availableMenuKey = "menu:available"

type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

// NewRedisClient connects and pings
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}

// GetAvailable returns the cached listing; ok is false on a miss
func (c *MenuCache) GetAvailable(ctx context.Context) (items []models.MenuItem, ok bool, err error) {
	data, err := c.Client.Get(ctx, availableMenuKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *MenuCache) SetAvailable(ctx context.Context, items []models.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, availableMenuKey, data, c.TTL).Err()
}

func (c *MenuCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, availableMenuKey).Err()
}
