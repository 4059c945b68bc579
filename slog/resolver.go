// Package slog provides logging decorators for seogen services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seogen"
)

// Ensure LoggingPageResolver implements seogen.PageResolver.
var _ seogen.PageResolver = (*LoggingPageResolver)(nil)

// LoggingPageResolver wraps a PageResolver with request logging.
type LoggingPageResolver struct {
	next   seogen.PageResolver
	logger *slog.Logger
}

// NewLoggingPageResolver creates a new LoggingPageResolver.
func NewLoggingPageResolver(next seogen.PageResolver, logger *slog.Logger) *LoggingPageResolver {
	return &LoggingPageResolver{next: next, logger: logger}
}

// ResolvePage delegates to the wrapped resolver and logs the outcome.
// Failures other than unknown slugs are logged at warn level.
func (r *LoggingPageResolver) ResolvePage(ctx context.Context, slug string) (page *seogen.PageBundle, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil && seogen.ErrorCode(err) != seogen.ENOTFOUND {
			level = slog.LevelWarn
		}
		attrs := []any{"slug", slug, "duration", time.Since(begin), "err", err}
		if page != nil {
			attrs = append(attrs, "type", page.StructuredData.Type)
		}
		r.logger.Log(ctx, level, "resolve page", attrs...)
	}(time.Now())
	return r.next.ResolvePage(ctx, slug)
}
