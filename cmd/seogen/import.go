package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/seogen"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	name := c.Name
	if name == "" {
		name = filepath.Base(c.File)
	}

	result, err := deps.Ingester.Ingest(deps.Ctx, name, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	for _, col := range result.Collisions {
		fmt.Fprintf(deps.Stderr, "warning: row %d %q shadowed by row %d (slug %q)\n",
			col.Shadowed+1, col.Title, col.Kept+1, col.Slug)
	}

	fmt.Fprintf(deps.Stdout, "Imported %q: %d rows, %d pages\n",
		result.Table.Name, result.Table.Rows, result.Pages)
	if result.Unchanged {
		fmt.Fprintln(deps.Stdout, "Content unchanged since the previous import.")
	}
	return nil
}
