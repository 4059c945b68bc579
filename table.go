package seogen

import (
	"context"
	"io"
	"time"
)

// Table represents one uploaded table of content records.
type Table struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentHash string    `json:"contentHash"`
	Rows        int       `json:"rows"`
	ImportedAt  time.Time `json:"importedAt"`
}

// Validate returns an error if the table contains invalid fields.
func (t *Table) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "table name required")
	}
	return nil
}

// TableService represents a service for managing uploaded tables.
type TableService interface {
	// CreateTable stores a table and its records in row order.
	CreateTable(ctx context.Context, table *Table, records []*Record) error

	// FindTableByID retrieves a table by ID.
	// Returns ENOTFOUND if table does not exist.
	FindTableByID(ctx context.Context, id string) (*Table, error)

	// FindLatestTable retrieves the most recently imported table.
	// Returns ENOTFOUND if no table has been imported.
	FindLatestTable(ctx context.Context) (*Table, error)

	// FindTables retrieves all tables, newest first.
	FindTables(ctx context.Context) ([]*Table, error)

	// FindRecords retrieves a table's records in row order.
	FindRecords(ctx context.Context, tableID string) ([]*Record, error)

	// DeleteTable permanently removes a table and its records.
	// Returns ENOTFOUND if table does not exist.
	DeleteTable(ctx context.Context, id string) error
}

// RecordDecoder parses a delimited table into records.
type RecordDecoder interface {
	// Decode returns EMALFORMED if the input is not a valid table.
	Decode(r io.Reader) ([]*Record, error)
}

// IngestResult reports the outcome of ingesting a table.
type IngestResult struct {
	Table      *Table      `json:"table"`
	Pages      int         `json:"pages"` // distinct slugs published
	Collisions []Collision `json:"collisions"`
	Unchanged  bool        `json:"unchanged"` // same content as the previous table
}

// Ingester turns uploaded tables into the published index.
type Ingester interface {
	// Ingest stores the table, then rebuilds and publishes the index.
	Ingest(ctx context.Context, name string, r io.Reader) (*IngestResult, error)

	// Load publishes the index of the most recently stored table.
	Load(ctx context.Context) (*Table, error)
}
