package mock

import (
	"context"
	"io"

	"github.com/fwojciec/seogen"
)

// Compile-time interface verification.
var (
	_ seogen.TableService  = (*TableService)(nil)
	_ seogen.RecordDecoder = (*RecordDecoder)(nil)
	_ seogen.Ingester      = (*Ingester)(nil)
)

// TableService is a mock implementation of seogen.TableService.
type TableService struct {
	CreateTableFn     func(ctx context.Context, table *seogen.Table, records []*seogen.Record) error
	FindTableByIDFn   func(ctx context.Context, id string) (*seogen.Table, error)
	FindLatestTableFn func(ctx context.Context) (*seogen.Table, error)
	FindTablesFn      func(ctx context.Context) ([]*seogen.Table, error)
	FindRecordsFn     func(ctx context.Context, tableID string) ([]*seogen.Record, error)
	DeleteTableFn     func(ctx context.Context, id string) error
}

func (s *TableService) CreateTable(ctx context.Context, table *seogen.Table, records []*seogen.Record) error {
	return s.CreateTableFn(ctx, table, records)
}

func (s *TableService) FindTableByID(ctx context.Context, id string) (*seogen.Table, error) {
	return s.FindTableByIDFn(ctx, id)
}

func (s *TableService) FindLatestTable(ctx context.Context) (*seogen.Table, error) {
	return s.FindLatestTableFn(ctx)
}

func (s *TableService) FindTables(ctx context.Context) ([]*seogen.Table, error) {
	return s.FindTablesFn(ctx)
}

func (s *TableService) FindRecords(ctx context.Context, tableID string) ([]*seogen.Record, error) {
	return s.FindRecordsFn(ctx, tableID)
}

func (s *TableService) DeleteTable(ctx context.Context, id string) error {
	return s.DeleteTableFn(ctx, id)
}

// RecordDecoder is a mock implementation of seogen.RecordDecoder.
type RecordDecoder struct {
	DecodeFn func(r io.Reader) ([]*seogen.Record, error)
}

func (d *RecordDecoder) Decode(r io.Reader) ([]*seogen.Record, error) {
	return d.DecodeFn(r)
}

// Ingester is a mock implementation of seogen.Ingester.
type Ingester struct {
	IngestFn func(ctx context.Context, name string, r io.Reader) (*seogen.IngestResult, error)
	LoadFn   func(ctx context.Context) (*seogen.Table, error)
}

func (i *Ingester) Ingest(ctx context.Context, name string, r io.Reader) (*seogen.IngestResult, error) {
	return i.IngestFn(ctx, name, r)
}

func (i *Ingester) Load(ctx context.Context) (*seogen.Table, error) {
	return i.LoadFn(ctx)
}
