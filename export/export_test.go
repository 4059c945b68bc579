package export_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/etree"
	"github.com/fwojciec/seogen/export"
	"github.com/fwojciec/seogen/fs"
	"github.com/fwojciec/seogen/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Static Export
// Every published page is written out with a sitemap in one atomic step

func pages(failing ...string) *mock.PageResolver {
	return &mock.PageResolver{
		ResolvePageFn: func(_ context.Context, slug string) (*seogen.PageBundle, error) {
			for _, f := range failing {
				if f == slug {
					return nil, seogen.Errorf(seogen.EMISSINGFIELD, "record %q has no content", slug)
				}
			}
			return &seogen.PageBundle{Slug: slug, URL: "https://yourdomain.com/" + slug}, nil
		},
	}
}

func noSitemap() (io.ReadCloser, error) {
	return nil, seogen.Errorf(seogen.ENOTFOUND, "no previous export")
}

func TestExporter_WritesPagesAndSitemap(t *testing.T) {
	t.Parallel()

	// Given a site store and three published pages
	base := t.TempDir()
	e := &export.Exporter{
		Pages:   pages(),
		Store:   fs.NewSiteStore(base, "site"),
		BaseURL: "https://yourdomain.com",
	}

	// When I export
	result, err := e.Export(context.Background(), []string{"a", "b", "c"}, time.Time{}, nil)

	// Then every page is saved
	require.NoError(t, err)
	assert.Equal(t, 3, result.Saved)
	assert.Zero(t, result.Failed)
	for _, slug := range []string{"a", "b", "c"} {
		_, err := os.Stat(filepath.Join(base, "site", slug+".json"))
		assert.NoError(t, err)
	}

	// And the sitemap lists them in order
	f, err := os.Open(filepath.Join(base, "site", fs.SitemapFile))
	require.NoError(t, err)
	defer f.Close()
	urls, err := etree.ParseSitemap(f)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://yourdomain.com/a",
		"https://yourdomain.com/b",
		"https://yourdomain.com/c",
	}, urls)
}

func TestExporter_SkipsFailedPages(t *testing.T) {
	t.Parallel()

	// Given a page that cannot be derived
	var sitemap []byte
	var saved []string
	store := &mock.PageStore{
		SaveFn: func(_ context.Context, page *seogen.PageBundle) error {
			saved = append(saved, page.Slug)
			return nil
		},
		SaveSitemapFn: func(_ context.Context, b []byte) error {
			sitemap = b
			return nil
		},
		CommitFn:  func() error { return nil },
		SitemapFn: noSitemap,
	}
	var mu sync.Mutex
	var failed []string
	e := &export.Exporter{Pages: pages("b"), Store: store, BaseURL: "https://yourdomain.com"}

	// When I export
	result, err := e.Export(context.Background(), []string{"a", "b", "c"}, time.Time{}, func(ev export.ProgressEvent) {
		if ev.Type == export.ProgressFailed {
			mu.Lock()
			failed = append(failed, ev.Slug)
			mu.Unlock()
		}
	})

	// Then the failure is reported and left out
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"a", "c"}, saved)
	assert.Equal(t, []string{"b"}, failed)
	assert.NotContains(t, string(sitemap), "/b<")
}

func TestExporter_AbortsWhenSaveFails(t *testing.T) {
	t.Parallel()

	// Given a store that cannot write
	var aborted, committed bool
	store := &mock.PageStore{
		SaveFn:    func(context.Context, *seogen.PageBundle) error { return errors.New("disk full") },
		CommitFn:  func() error { committed = true; return nil },
		AbortFn:   func() error { aborted = true; return nil },
		SitemapFn: noSitemap,
	}
	e := &export.Exporter{Pages: pages(), Store: store, BaseURL: "https://yourdomain.com"}

	// When I export
	_, err := e.Export(context.Background(), []string{"a"}, time.Time{}, nil)

	// Then the export is aborted
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, aborted)
	assert.False(t, committed)
}

func TestExporter_AbortsWhenCanceled(t *testing.T) {
	t.Parallel()

	var aborted bool
	store := &mock.PageStore{
		AbortFn:   func() error { aborted = true; return nil },
		SitemapFn: noSitemap,
	}
	e := &export.Exporter{
		Pages: &mock.PageResolver{
			ResolvePageFn: func(ctx context.Context, _ string) (*seogen.PageBundle, error) {
				return nil, ctx.Err()
			},
		},
		Store: store,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Export(ctx, []string{"a", "b"}, time.Time{}, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, aborted)
}

func TestExporter_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int64
	e := &export.Exporter{
		Pages: &mock.PageResolver{
			ResolvePageFn: func(_ context.Context, slug string) (*seogen.PageBundle, error) {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return &seogen.PageBundle{Slug: slug}, nil
			},
		},
		Store:       fs.NewSiteStore(t.TempDir(), "site"),
		BaseURL:     "https://yourdomain.com",
		Concurrency: 2,
	}
	slugs := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	result, err := e.Export(context.Background(), slugs, time.Time{}, nil)

	require.NoError(t, err)
	assert.Equal(t, len(slugs), result.Saved)
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestExporter_ReportsPagesRemovedSincePreviousExport(t *testing.T) {
	t.Parallel()

	// Given a previous export of pages a and b
	base := t.TempDir()
	first := &export.Exporter{Pages: pages(), Store: fs.NewSiteStore(base, "site"), BaseURL: "https://yourdomain.com"}
	result, err := first.Export(context.Background(), []string{"a", "b"}, time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)

	// When the next export no longer has b
	next := &export.Exporter{Pages: pages(), Store: fs.NewSiteStore(base, "site"), BaseURL: "https://yourdomain.com"}
	result, err = next.Export(context.Background(), []string{"a", "c"}, time.Time{}, nil)

	// Then b is reported as removed
	require.NoError(t, err)
	assert.Equal(t, []string{"https://yourdomain.com/b"}, result.Removed)
}

func TestExporter_IgnoresDamagedPreviousSitemap(t *testing.T) {
	t.Parallel()

	// Given a previous sitemap that is not a urlset
	var committed bool
	store := &mock.PageStore{
		SaveFn:        func(context.Context, *seogen.PageBundle) error { return nil },
		SaveSitemapFn: func(context.Context, []byte) error { return nil },
		CommitFn:      func() error { committed = true; return nil },
		SitemapFn: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("<html></html>")), nil
		},
	}
	e := &export.Exporter{Pages: pages(), Store: store, BaseURL: "https://yourdomain.com"}

	// When I export
	result, err := e.Export(context.Background(), []string{"a"}, time.Time{}, nil)

	// Then the export replaces it
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Empty(t, result.Removed)
}
