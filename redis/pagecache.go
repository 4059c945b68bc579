// Package redis provides a Redis-backed page cache shared across processes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces cached page keys.
const DefaultPrefix = "seogen:page:"

const scanBatchSize = 100

// Compile-time interface verification.
var _ seogen.PageCache = (*PageCache)(nil)

// PageCache implements seogen.PageCache on Redis. Pages are stored as JSON.
type PageCache struct {
	client *redis.Client
	prefix string

	// TTL bounds how long Redis keeps an entry. Zero keeps entries until
	// they are purged; staleness is still decided by the caller.
	TTL time.Duration
}

// NewPageCache returns a cache storing keys under DefaultPrefix.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client, prefix: DefaultPrefix}
}

// Open connects to the Redis server at url and verifies the connection.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, seogen.Errorf(seogen.EINVALID, "invalid redis url: %s", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *PageCache) key(slug string) string {
	return c.prefix + slug
}

// Get returns the cached page for slug.
// Returns ENOTFOUND if nothing is cached.
func (c *PageCache) Get(ctx context.Context, slug string) (*seogen.CachedPage, error) {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, seogen.Errorf(seogen.ENOTFOUND, "page %q not cached", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.key(slug), err)
	}

	var page seogen.CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode cached page %q: %w", slug, err)
	}
	return &page, nil
}

// Put stores page under slug, replacing any previous entry.
func (c *PageCache) Put(ctx context.Context, slug string, page *seogen.CachedPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode cached page %q: %w", slug, err)
	}
	if err := c.client.Set(ctx, c.key(slug), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("set %s: %w", c.key(slug), err)
	}
	return nil
}

// Purge deletes every key under the cache prefix. Other keys in the
// database are left alone.
func (c *PageCache) Purge(ctx context.Context) error {
	pattern := c.prefix + "*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("scan keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
