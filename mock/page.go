package mock

import (
	"context"
	"io"

	"github.com/fwojciec/seogen"
)

var _ seogen.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of seogen.PageStore.
type PageStore struct {
	SaveFn        func(ctx context.Context, page *seogen.PageBundle) error
	SaveSitemapFn func(ctx context.Context, sitemap []byte) error
	CommitFn      func() error
	AbortFn       func() error
	SitemapFn     func() (io.ReadCloser, error)
}

func (s *PageStore) Save(ctx context.Context, page *seogen.PageBundle) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) SaveSitemap(ctx context.Context, sitemap []byte) error {
	return s.SaveSitemapFn(ctx, sitemap)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

func (s *PageStore) Sitemap() (io.ReadCloser, error) {
	return s.SitemapFn()
}
