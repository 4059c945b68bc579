// Package ingest turns uploaded tables into the published page index.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/seogen"
)

var _ seogen.Ingester = (*Service)(nil)

// Purger drops cached pages after the index changes.
type Purger interface {
	Purge(ctx context.Context) error
}

// Service stores uploaded tables and republishes the index built from them.
type Service struct {
	Decoder   seogen.RecordDecoder
	Tables    seogen.TableService
	Publisher seogen.IndexPublisher
	Cache     Purger // optional
	Policy    seogen.CollisionPolicy
}

// Ingest decodes r, stores it as the latest table and publishes its index.
// A table that fails to decode or index is not stored.
func (s *Service) Ingest(ctx context.Context, name string, r io.Reader) (*seogen.IngestResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	records, err := s.Decoder.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	idx, err := seogen.BuildIndex(records, s.Policy)
	if err != nil {
		return nil, err
	}

	hash := strconv.FormatUint(xxhash.Sum64(data), 16)
	unchanged := false
	prev, err := s.Tables.FindLatestTable(ctx)
	switch {
	case err == nil:
		unchanged = prev.ContentHash == hash
	case seogen.ErrorCode(err) != seogen.ENOTFOUND:
		return nil, err
	}

	table := &seogen.Table{Name: name, ContentHash: hash}
	if err := s.Tables.CreateTable(ctx, table, records); err != nil {
		return nil, fmt.Errorf("store table: %w", err)
	}

	if err := s.publish(ctx, idx); err != nil {
		return nil, err
	}

	return &seogen.IngestResult{
		Table:      table,
		Pages:      idx.Len(),
		Collisions: idx.Collisions(),
		Unchanged:  unchanged,
	}, nil
}

// Load publishes the index of the latest stored table. With no stored
// table it publishes an empty index and returns a nil table.
func (s *Service) Load(ctx context.Context) (*seogen.Table, error) {
	table, err := s.Tables.FindLatestTable(ctx)
	if seogen.ErrorCode(err) == seogen.ENOTFOUND {
		idx, _ := seogen.BuildIndex(nil, s.Policy)
		return nil, s.publish(ctx, idx)
	}
	if err != nil {
		return nil, err
	}

	records, err := s.Tables.FindRecords(ctx, table.ID)
	if err != nil {
		return nil, err
	}

	idx, err := seogen.BuildIndex(records, s.Policy)
	if err != nil {
		return nil, err
	}

	return table, s.publish(ctx, idx)
}

func (s *Service) publish(ctx context.Context, idx *seogen.Index) error {
	s.Publisher.Publish(idx)
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	return nil
}
