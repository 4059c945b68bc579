package seogen

import (
	"context"
	"io"
	"time"
)

// PageBundle is everything needed to render one generated page.
type PageBundle struct {
	Slug           string         `json:"slug"`
	URL            string         `json:"url"`
	Content        *Record        `json:"content"`
	SEO            *Metadata      `json:"seo"`
	StructuredData StructuredData `json:"structuredData"`
}

// PageResolver resolves a slug into a page bundle.
type PageResolver interface {
	// ResolvePage returns ENOTFOUND if no record has the slug and
	// EMISSINGFIELD if the record cannot be derived.
	ResolvePage(ctx context.Context, slug string) (*PageBundle, error)
}

// IndexPublisher makes a freshly built index visible to resolvers.
type IndexPublisher interface {
	Publish(idx *Index)
	Index() *Index
}

// CachedPage is a generated bundle together with when it was computed.
type CachedPage struct {
	Bundle     *PageBundle `json:"bundle"`
	ComputedAt time.Time   `json:"computedAt"`
}

// PageCache stores generated bundles keyed by slug.
type PageCache interface {
	// Get returns ENOTFOUND if nothing is cached for the slug.
	Get(ctx context.Context, slug string) (*CachedPage, error)
	Put(ctx context.Context, slug string, page *CachedPage) error

	// Purge drops every cached page.
	Purge(ctx context.Context) error
}

// StalenessFunc reports whether a cached page must be regenerated at now.
type StalenessFunc func(page *CachedPage, now time.Time) bool

// MaxAge returns a StalenessFunc that expires pages older than d.
// A zero duration never expires pages.
func MaxAge(d time.Duration) StalenessFunc {
	return func(page *CachedPage, now time.Time) bool {
		if d == 0 {
			return false
		}
		return now.Sub(page.ComputedAt) >= d
	}
}

// PageStore persists generated pages with atomic semantics.
// Save writes to a pending location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *PageBundle) error
	SaveSitemap(ctx context.Context, sitemap []byte) error
	Commit() error
	Abort() error

	// Sitemap opens the sitemap of the last commit.
	// Returns ENOTFOUND if nothing has been committed.
	Sitemap() (io.ReadCloser, error)
}
