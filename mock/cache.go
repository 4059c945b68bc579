package mock

import (
	"context"

	"github.com/fwojciec/seogen"
)

var _ seogen.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of seogen.PageCache.
type PageCache struct {
	GetFn   func(ctx context.Context, slug string) (*seogen.CachedPage, error)
	PutFn   func(ctx context.Context, slug string, page *seogen.CachedPage) error
	PurgeFn func(ctx context.Context) error
}

func (c *PageCache) Get(ctx context.Context, slug string) (*seogen.CachedPage, error) {
	return c.GetFn(ctx, slug)
}

func (c *PageCache) Put(ctx context.Context, slug string, page *seogen.CachedPage) error {
	return c.PutFn(ctx, slug, page)
}

func (c *PageCache) Purge(ctx context.Context) error {
	return c.PurgeFn(ctx)
}
