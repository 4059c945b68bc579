// Package csv decodes uploaded delimited tables into content records.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/seogen"
)

var _ seogen.RecordDecoder = (*Decoder)(nil)

// Decoder parses a table with a header row into records. Fields are
// trimmed, blank lines are skipped and every row must have as many
// fields as the header.
type Decoder struct {
	// Comma is the field delimiter.
	Comma rune
}

// NewDecoder creates a comma-delimited Decoder.
func NewDecoder() *Decoder {
	return &Decoder{Comma: ','}
}

// Decode reads every row of r. Columns map onto record fields by exact
// header name; unknown headers become record attributes.
func (d *Decoder) Decode(r io.Reader) ([]*seogen.Record, error) {
	cr := stdcsv.NewReader(r)
	cr.Comma = d.Comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0 // rows must match the header width

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, seogen.Errorf(seogen.EMALFORMED, "table is empty")
	}
	if err != nil {
		return nil, malformed(err)
	}

	columns, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var records []*seogen.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		values := make(map[string]string, len(columns))
		for i, name := range columns {
			values[name] = strings.TrimSpace(row[i])
		}
		records = append(records, seogen.NewRecord(values))
	}

	return records, nil
}

// parseHeader trims header names and checks the required columns exist.
func parseHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, seogen.Errorf(seogen.EMALFORMED, "column %d has no header", i+1)
		}
		if seen[name] {
			return nil, seogen.Errorf(seogen.EMALFORMED, "duplicate column %q", name)
		}
		seen[name] = true
		columns[i] = name
	}

	for _, required := range seogen.RequiredColumns {
		if !seen[required] {
			return nil, seogen.Errorf(seogen.EMALFORMED, "missing required column %q", required)
		}
	}
	return columns, nil
}

func malformed(err error) error {
	var perr *stdcsv.ParseError
	if errors.As(err, &perr) {
		return seogen.Errorf(seogen.EMALFORMED, "line %d: %s", perr.Line, perr.Err)
	}
	return fmt.Errorf("read table: %w", err)
}
