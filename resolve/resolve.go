// Package resolve turns a requested slug into a page bundle using the
// currently published index.
package resolve

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/seogen"
)

// Compile-time interface verification.
var (
	_ seogen.PageResolver   = (*Resolver)(nil)
	_ seogen.IndexPublisher = (*Resolver)(nil)
)

// Resolver resolves slugs against a published index. The index is replaced
// wholesale on re-ingestion, so in-flight resolutions keep reading the index
// they started with.
type Resolver struct {
	Metadata seogen.MetadataDeriver
	Schemas  seogen.SchemaGenerator
	BaseURL  string

	index atomic.Pointer[seogen.Index]
}

// NewResolver creates a new Resolver with an empty index.
func NewResolver(metadata seogen.MetadataDeriver, schemas seogen.SchemaGenerator, baseURL string) *Resolver {
	return &Resolver{
		Metadata: metadata,
		Schemas:  schemas,
		BaseURL:  baseURL,
	}
}

// Publish atomically replaces the index used for new resolutions.
func (r *Resolver) Publish(idx *seogen.Index) {
	r.index.Store(idx)
}

// Index returns the currently published index, or nil if none was published.
func (r *Resolver) Index() *seogen.Index {
	return r.index.Load()
}

// ResolvePage resolves slug against the published index.
func (r *Resolver) ResolvePage(ctx context.Context, slug string) (*seogen.PageBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Page(r.index.Load(), slug, r.BaseURL, r.Metadata, r.Schemas)
}

// Page looks slug up in idx and derives its bundle. Unknown slugs return
// ENOTFOUND before any derivation runs.
func Page(idx *seogen.Index, slug, baseURL string, metadata seogen.MetadataDeriver, schemas seogen.SchemaGenerator) (*seogen.PageBundle, error) {
	record, err := idx.Lookup(slug)
	if err != nil {
		return nil, err
	}

	seo, err := metadata.DeriveMetadata(record)
	if err != nil {
		return nil, fmt.Errorf("derive metadata for %q: %w", slug, err)
	}

	url := seogen.PageURL(baseURL, slug)
	sd, err := schemas.GenerateSchema(record, url)
	if err != nil {
		return nil, fmt.Errorf("generate schema for %q: %w", slug, err)
	}

	return &seogen.PageBundle{
		Slug:           slug,
		URL:            url,
		Content:        record,
		SEO:            seo,
		StructuredData: sd,
	}, nil
}
