package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seogen"
)

// Ensure LoggingPageCache implements seogen.PageCache.
var _ seogen.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging.
type LoggingPageCache struct {
	next   seogen.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next seogen.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

func (c *LoggingPageCache) Get(ctx context.Context, slug string) (page *seogen.CachedPage, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"slug", slug,
			"hit", err == nil,
			"duration", time.Since(begin),
			"err", ignoreNotFound(err),
		)
	}(time.Now())
	return c.next.Get(ctx, slug)
}

func (c *LoggingPageCache) Put(ctx context.Context, slug string, page *seogen.CachedPage) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache put", "slug", slug, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return c.next.Put(ctx, slug, page)
}

func (c *LoggingPageCache) Purge(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache purge", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return c.next.Purge(ctx)
}

// ignoreNotFound hides cache misses, which are expected.
func ignoreNotFound(err error) error {
	if seogen.ErrorCode(err) == seogen.ENOTFOUND {
		return nil
	}
	return err
}
