// Package export writes every published page to a PageStore.
// Pages are resolved concurrently, then saved in table order together
// with a sitemap.
package export

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/etree"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent page resolution.
const DefaultConcurrency = 10

// Exporter resolves published pages and saves them atomically.
type Exporter struct {
	Pages       seogen.PageResolver
	Store       seogen.PageStore
	BaseURL     string
	Concurrency int
}

// Result holds the outcome of an export.
type Result struct {
	Saved  int
	Failed int

	// Removed lists URLs of the previous export's sitemap that the new
	// sitemap no longer contains, in their previous order.
	Removed []string
}

// ProgressEvent reports progress during an export.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Slug      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	position int
	slug     string
	page     *seogen.PageBundle
	err      error
}

// Export resolves every slug and saves the pages that resolve. Pages that
// fail are reported and left out of the sitemap. The store is committed
// unless saving fails or ctx is canceled, in which case it is aborted.
func (e *Exporter) Export(ctx context.Context, slugs []string, lastmod time.Time, progress ProgressFunc) (result *Result, err error) {
	defer func() {
		if err != nil {
			_ = e.Store.Abort()
		}
	}()

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	previous, err := e.previousURLs()
	if err != nil {
		return nil, err
	}

	total := len(slugs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, slug := range slugs {
			i, slug := i, slug
			g.Go(func() error {
				page, err := e.Pages.ResolvePage(gctx, slug)
				resultCh <- pageResult{position: i, slug: slug, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]pageResult, total)
	for r := range resultCh {
		n := int(completed.Add(1))
		results[r.position] = r
		if progress == nil {
			continue
		}
		if r.err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Slug: r.slug, Error: r.err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Slug: r.slug})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result = &Result{}
	saved := make([]string, 0, total)
	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}
		if err := e.Store.Save(ctx, r.page); err != nil {
			return nil, fmt.Errorf("save %q: %w", r.slug, err)
		}
		saved = append(saved, r.slug)
		result.Saved++
	}

	var sitemap bytes.Buffer
	if err := etree.EncodeSitemap(&sitemap, e.BaseURL, saved, lastmod); err != nil {
		return nil, err
	}
	if err := e.Store.SaveSitemap(ctx, sitemap.Bytes()); err != nil {
		return nil, fmt.Errorf("save sitemap: %w", err)
	}

	if err := e.Store.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	result.Removed = e.removed(previous, saved)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}

// previousURLs reads the sitemap of the last committed export. A missing or
// unreadable sitemap yields no URLs; this export replaces it.
func (e *Exporter) previousURLs() ([]string, error) {
	rc, err := e.Store.Sitemap()
	if seogen.ErrorCode(err) == seogen.ENOTFOUND {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open previous sitemap: %w", err)
	}
	defer rc.Close()

	urls, err := etree.ParseSitemap(rc)
	if seogen.ErrorCode(err) == seogen.EMALFORMED {
		return nil, nil
	}
	return urls, err
}

func (e *Exporter) removed(previous, saved []string) []string {
	current := make(map[string]bool, len(saved))
	for _, slug := range saved {
		current[seogen.PageURL(e.BaseURL, slug)] = true
	}
	var removed []string
	for _, url := range previous {
		if !current[url] {
			removed = append(removed, url)
		}
	}
	return removed
}
