package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/seogen"
)

// Ensure LoggingIngester implements seogen.Ingester.
var _ seogen.Ingester = (*LoggingIngester)(nil)

// LoggingIngester wraps an Ingester with logging. Every slug collision is
// logged at warn level so shadowed rows are visible to operators.
type LoggingIngester struct {
	next   seogen.Ingester
	logger *slog.Logger
}

// NewLoggingIngester creates a new LoggingIngester.
func NewLoggingIngester(next seogen.Ingester, logger *slog.Logger) *LoggingIngester {
	return &LoggingIngester{next: next, logger: logger}
}

// Ingest delegates to the wrapped ingester and logs the result.
func (i *LoggingIngester) Ingest(ctx context.Context, name string, r io.Reader) (result *seogen.IngestResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"name", name, "duration", time.Since(begin), "err", err}
		if result != nil {
			attrs = append(attrs,
				"rows", result.Table.Rows,
				"pages", result.Pages,
				"collisions", len(result.Collisions),
				"unchanged", result.Unchanged,
			)
			for _, c := range result.Collisions {
				i.logger.Warn("slug collision",
					"slug", c.Slug,
					"kept_row", c.Kept+1,
					"shadowed_row", c.Shadowed+1,
					"title", c.Title,
				)
			}
		}
		i.logger.Info("ingest table", attrs...)
	}(time.Now())
	return i.next.Ingest(ctx, name, r)
}

// Load delegates to the wrapped ingester and logs which table was loaded.
func (i *LoggingIngester) Load(ctx context.Context) (table *seogen.Table, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if table != nil {
			attrs = append(attrs, "table", table.Name, "rows", table.Rows)
		}
		i.logger.Info("load index", attrs...)
	}(time.Now())
	return i.next.Load(ctx)
}
