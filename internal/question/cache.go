package question

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL    = 10 * time.Minute
	defaultCachePrefix = "trivia"
)

// Cache provides Redis-backed category caching to offload store scans.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if prefix == "" {
		prefix = defaultCachePrefix
	}
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

func (c *Cache) categoriesKey() string {
	return c.prefix + ":categories"
}

// GetCategories returns the cached list, or nil on a miss.
func (c *Cache) GetCategories(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, c.categoriesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) SetCategories(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.categoriesKey(), data, c.ttl).Err()
}
