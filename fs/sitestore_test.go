package fs_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Site Export
// The store writes to a temp directory and swaps it in on commit

func samplePage() *seogen.PageBundle {
	return &seogen.PageBundle{
		Slug:    "ocean-view-suite",
		URL:     "https://yourdomain.com/ocean-view-suite",
		Content: &seogen.Record{Title: "Ocean View Suite", Content: "Pool."},
		SEO:     &seogen.Metadata{TitleTag: "Ocean View Suite | Your Brand Name"},
	}
}

func TestSiteStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewSiteStore(base, "site")

	// When I save a page
	err := store.Save(context.Background(), samplePage())

	// Then the bundle exists in the temp directory only
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "site.tmp", "ocean-view-suite.json"))
	require.NoError(t, err, "file should exist in temp directory")
	_, err = os.Stat(filepath.Join(base, "site"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestSiteStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with a saved page and sitemap
	base := t.TempDir()
	store := fs.NewSiteStore(base, "site")
	require.NoError(t, store.Save(context.Background(), samplePage()))
	require.NoError(t, store.SaveSitemap(context.Background(), []byte("<urlset/>")))

	// When I commit
	err := store.Commit()

	// Then the final directory holds the bundle and sitemap
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(base, "site", "ocean-view-suite.json"))
	require.NoError(t, err)
	var page seogen.PageBundle
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, "Ocean View Suite | Your Brand Name", page.SEO.TitleTag)

	sitemap, err := os.ReadFile(filepath.Join(base, "site", fs.SitemapFile))
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>", string(sitemap))

	// And the temp directory is gone
	_, err = os.Stat(filepath.Join(base, "site.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestSiteStore_CommitReplacesPreviousExport(t *testing.T) {
	t.Parallel()

	// Given a previous export with a page that no longer exists
	base := t.TempDir()
	old := fs.NewSiteStore(base, "site")
	stale := samplePage()
	stale.Slug = "old-page"
	require.NoError(t, old.Save(context.Background(), stale))
	require.NoError(t, old.Commit())

	// When a new export commits
	store := fs.NewSiteStore(base, "site")
	require.NoError(t, store.Save(context.Background(), samplePage()))
	require.NoError(t, store.Commit())

	// Then only the new pages remain
	entries, err := os.ReadDir(filepath.Join(base, "site"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ocean-view-suite.json", entries[0].Name())
}

func TestSiteStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with saved pages
	base := t.TempDir()
	store := fs.NewSiteStore(base, "site")
	require.NoError(t, store.Save(context.Background(), samplePage()))

	// When I abort
	err := store.Abort()

	// Then neither directory exists
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "site.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")
	_, err = os.Stat(filepath.Join(base, "site"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestSiteStore_SaveHonorsCancellation(t *testing.T) {
	t.Parallel()

	// Given a canceled context
	store := fs.NewSiteStore(t.TempDir(), "site")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When I save, then the cancellation is returned
	require.ErrorIs(t, store.Save(ctx, samplePage()), context.Canceled)
}

func TestPagePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "python-tips.json", fs.PagePath("python-tips"))
	assert.Equal(t, "index.json", fs.PagePath(""))
}

func TestSiteStore_SitemapOpensCommittedSitemap(t *testing.T) {
	t.Parallel()

	// Given no export yet
	base := t.TempDir()
	store := fs.NewSiteStore(base, "site")

	// Then there is no previous sitemap
	_, err := store.Sitemap()
	assert.Equal(t, seogen.ENOTFOUND, seogen.ErrorCode(err))

	// When a sitemap is committed
	require.NoError(t, store.SaveSitemap(context.Background(), []byte("<urlset/>")))
	require.NoError(t, store.Commit())

	// Then it can be read back
	rc, err := fs.NewSiteStore(base, "site").Sitemap()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>", string(data))
}
