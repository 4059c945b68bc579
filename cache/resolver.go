package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/seogen"
	"golang.org/x/sync/singleflight"
)

var _ seogen.PageResolver = (*Resolver)(nil)

// Resolver serves pages from a cache and regenerates them through Next
// when they are missing or stale. Concurrent requests for the same slug
// share a single regeneration.
type Resolver struct {
	Next  seogen.PageResolver
	Store seogen.PageCache
	Stale seogen.StalenessFunc
	Now   func() time.Time

	group      singleflight.Group
	generation atomic.Uint64

	// purgeMu orders cache writes against purges. Writers hold it for
	// reading across the generation check and the write.
	purgeMu sync.RWMutex
}

// NewResolver creates a Resolver that regenerates pages older than maxAge.
func NewResolver(next seogen.PageResolver, store seogen.PageCache, maxAge time.Duration) *Resolver {
	return &Resolver{
		Next:  next,
		Store: store,
		Stale: seogen.MaxAge(maxAge),
		Now:   time.Now,
	}
}

// ResolvePage returns the cached bundle for slug while it is fresh.
// Failed resolutions are never cached.
func (r *Resolver) ResolvePage(ctx context.Context, slug string) (*seogen.PageBundle, error) {
	page, err := r.Store.Get(ctx, slug)
	if err == nil && !r.Stale(page, r.Now()) {
		return page.Bundle, nil
	}
	if err != nil && seogen.ErrorCode(err) != seogen.ENOTFOUND {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	gen := r.generation.Load()
	key := strconv.FormatUint(gen, 10) + "/" + slug

	// The shared call outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(key, func() (any, error) {
		bundle, err := r.Next.ResolvePage(shared, slug)
		if err != nil {
			return nil, err
		}
		if err := r.store(shared, gen, slug, bundle); err != nil {
			return nil, err
		}
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*seogen.PageBundle), nil
}

// store caches bundle unless a purge happened since generation gen began.
func (r *Resolver) store(ctx context.Context, gen uint64, slug string, bundle *seogen.PageBundle) error {
	r.purgeMu.RLock()
	defer r.purgeMu.RUnlock()

	if r.generation.Load() != gen {
		return nil
	}
	if err := r.Store.Put(ctx, slug, &seogen.CachedPage{Bundle: bundle, ComputedAt: r.Now()}); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Purge drops every cached page. Regenerations already in flight finish
// but are not stored; a write in progress completes before the purge.
func (r *Resolver) Purge(ctx context.Context) error {
	r.purgeMu.Lock()
	defer r.purgeMu.Unlock()

	r.generation.Add(1)
	return r.Store.Purge(ctx)
}
