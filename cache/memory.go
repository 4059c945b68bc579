// Package cache provides generate-and-cache page resolution with
// per-slug request coalescing.
package cache

import (
	"context"
	"sync"

	"github.com/fwojciec/seogen"
)

var _ seogen.PageCache = (*Memory)(nil)

// Memory is an in-process seogen.PageCache.
// It is safe for concurrent use by multiple goroutines.
type Memory struct {
	mu    sync.RWMutex
	pages map[string]*seogen.CachedPage
}

// NewMemory creates an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{pages: make(map[string]*seogen.CachedPage)}
}

// Get returns the cached page for slug.
func (m *Memory) Get(_ context.Context, slug string) (*seogen.CachedPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.pages[slug]
	if !ok {
		return nil, seogen.Errorf(seogen.ENOTFOUND, "page %q not cached", slug)
	}
	return page, nil
}

// Put stores page under slug, replacing any previous entry.
func (m *Memory) Put(_ context.Context, slug string, page *seogen.CachedPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[slug] = page
	return nil
}

// Purge drops every cached page.
func (m *Memory) Purge(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = make(map[string]*seogen.CachedPage)
	return nil
}

// Len returns the number of cached pages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}
