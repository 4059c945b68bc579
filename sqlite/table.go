package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ seogen.TableService = (*TableService)(nil)

// TableService implements seogen.TableService using SQLite.
type TableService struct {
	db *DB
}

// NewTableService creates a new TableService.
func NewTableService(db *DB) *TableService {
	return &TableService{db: db}
}

// CreateTable stores a table and its records in a single transaction.
// The table becomes the latest table.
func (s *TableService) CreateTable(ctx context.Context, table *seogen.Table, records []*seogen.Record) error {
	if err := table.Validate(); err != nil {
		return err
	}

	table.ID = uuid.New().String()
	table.ImportedAt = time.Now().UTC().Truncate(time.Second)
	table.Rows = len(records)
	if table.ContentHash == "" {
		hash, err := hashRecords(records)
		if err != nil {
			return err
		}
		table.ContentHash = hash
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tables (id, name, content_hash, row_count, imported_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tables))
	`, table.ID, table.Name, table.ContentHash, table.Rows, table.ImportedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (table_id, position, title, description, content, keywords, location, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		attrs, err := marshalAttributes(r.Attributes)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, table.ID, i, r.Title, r.Description, r.Content,
			r.Keywords, r.Location, attrs); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// FindTableByID retrieves a table by ID.
func (s *TableService) FindTableByID(ctx context.Context, id string) (*seogen.Table, error) {
	return s.findTable(ctx, `
		SELECT id, name, content_hash, row_count, imported_at
		FROM tables
		WHERE id = ?
	`, id)
}

// FindLatestTable retrieves the most recently imported table.
func (s *TableService) FindLatestTable(ctx context.Context) (*seogen.Table, error) {
	return s.findTable(ctx, `
		SELECT id, name, content_hash, row_count, imported_at
		FROM tables
		ORDER BY seq DESC
		LIMIT 1
	`)
}

func (s *TableService) findTable(ctx context.Context, query string, args ...any) (*seogen.Table, error) {
	var table seogen.Table
	var importedAt string

	err := s.db.QueryRowContext(ctx, query, args...).Scan(&table.ID, &table.Name, &table.ContentHash,
		&table.Rows, &importedAt)
	if err == sql.ErrNoRows {
		return nil, seogen.Errorf(seogen.ENOTFOUND, "table not found")
	}
	if err != nil {
		return nil, err
	}

	table.ImportedAt, err = parseRFC3339(importedAt, "imported_at")
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// FindTables retrieves all tables, newest first.
func (s *TableService) FindTables(ctx context.Context) ([]*seogen.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, content_hash, row_count, imported_at
		FROM tables
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*seogen.Table
	for rows.Next() {
		var table seogen.Table
		var importedAt string

		if err := rows.Scan(&table.ID, &table.Name, &table.ContentHash, &table.Rows, &importedAt); err != nil {
			return nil, err
		}
		if table.ImportedAt, err = parseRFC3339(importedAt, "imported_at"); err != nil {
			return nil, err
		}
		tables = append(tables, &table)
	}

	return tables, rows.Err()
}

// FindRecords retrieves a table's records in row order.
// Returns ENOTFOUND if the table does not exist.
func (s *TableService) FindRecords(ctx context.Context, tableID string) ([]*seogen.Record, error) {
	if _, err := s.FindTableByID(ctx, tableID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, description, content, keywords, location, attributes
		FROM records
		WHERE table_id = ?
		ORDER BY position
	`, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*seogen.Record
	for rows.Next() {
		var r seogen.Record
		var attrs string

		if err := rows.Scan(&r.Title, &r.Description, &r.Content, &r.Keywords, &r.Location, &attrs); err != nil {
			return nil, err
		}
		if attrs != "" && attrs != "{}" {
			if err := json.Unmarshal([]byte(attrs), &r.Attributes); err != nil {
				return nil, fmt.Errorf("failed to parse attributes: %w", err)
			}
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// DeleteTable permanently removes a table and its records.
func (s *TableService) DeleteTable(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tables WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return seogen.Errorf(seogen.ENOTFOUND, "table not found")
	}
	return nil
}

func marshalAttributes(attrs map[string]string) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// hashRecords hashes the JSON encoding of records in order.
func hashRecords(records []*seogen.Record) (string, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return hashContent(b), nil
}
