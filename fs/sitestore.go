// Package fs provides file-based export of generated pages.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/seogen"
)

// SitemapFile is the name of the sitemap written alongside the pages.
const SitemapFile = "sitemap.xml"

// Ensure SiteStore implements seogen.PageStore at compile time.
var _ seogen.PageStore = (*SiteStore)(nil)

// SiteStore implements seogen.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
// Save is safe for concurrent use.
type SiteStore struct {
	baseDir string
	name    string
}

// NewSiteStore creates a new SiteStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSiteStore(baseDir, name string) *SiteStore {
	return &SiteStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SiteStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *SiteStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// PagePath returns the file name a bundle is saved under.
// The empty slug maps to index.json.
func PagePath(slug string) string {
	if slug == "" {
		return "index.json"
	}
	return slug + ".json"
}

// Save writes the page bundle as indented JSON.
func (s *SiteStore) Save(ctx context.Context, page *seogen.PageBundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}
	return s.write(PagePath(page.Slug), data)
}

// SaveSitemap writes the sitemap document.
func (s *SiteStore) SaveSitemap(ctx context.Context, sitemap []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(SitemapFile, sitemap)
}

func (s *SiteStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644)
}

func (s *SiteStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *SiteStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// Sitemap opens the committed sitemap.
func (s *SiteStore) Sitemap() (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.finalDir(), SitemapFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, seogen.Errorf(seogen.ENOTFOUND, "no previous export in %s", s.finalDir())
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
