package mock

import (
	"context"

	"github.com/fwojciec/seogen"
)

// Compile-time interface verification.
var (
	_ seogen.PageResolver   = (*PageResolver)(nil)
	_ seogen.IndexPublisher = (*IndexPublisher)(nil)
)

// PageResolver is a mock implementation of seogen.PageResolver.
type PageResolver struct {
	ResolvePageFn func(ctx context.Context, slug string) (*seogen.PageBundle, error)
}

func (r *PageResolver) ResolvePage(ctx context.Context, slug string) (*seogen.PageBundle, error) {
	return r.ResolvePageFn(ctx, slug)
}

// IndexPublisher is a mock implementation of seogen.IndexPublisher.
type IndexPublisher struct {
	PublishFn func(idx *seogen.Index)
	IndexFn   func() *seogen.Index
}

func (p *IndexPublisher) Publish(idx *seogen.Index) {
	p.PublishFn(idx)
}

func (p *IndexPublisher) Index() *seogen.Index {
	return p.IndexFn()
}
