package main

import (
	"fmt"

	"github.com/fwojciec/seogen"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if _, err := deps.Ingester.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	slugs := deps.Index.Index().Slugs()
	if len(slugs) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'seogen import' to add a table.")
		return nil
	}

	for _, slug := range slugs {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", slug, seogen.PageURL(deps.Config.BaseURL, slug))
	}
	return nil
}
