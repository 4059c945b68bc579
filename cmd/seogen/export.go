package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/export"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	table, err := deps.Ingester.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	var lastmod time.Time
	if table != nil {
		lastmod = table.ImportedAt
	}

	e := &export.Exporter{
		Pages:       deps.Pages,
		Store:       deps.NewStore(c.Dir),
		BaseURL:     deps.Config.BaseURL,
		Concurrency: c.Concurrency,
	}
	result, err := e.Export(deps.Ctx, deps.Index.Index().Slugs(), lastmod, func(ev export.ProgressEvent) {
		if ev.Type == export.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "warning: skipped %q: %s\n", ev.Slug, seogen.ErrorMessage(ev.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s", result.Saved, c.Dir)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	if len(result.Removed) > 0 {
		fmt.Fprintf(deps.Stdout, "Removed %d pages since the previous export:\n", len(result.Removed))
		for _, url := range result.Removed {
			fmt.Fprintf(deps.Stdout, "  %s\n", url)
		}
	}
	return nil
}
