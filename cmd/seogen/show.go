package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/seogen"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	if _, err := deps.Ingester.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	page, err := deps.Pages.ResolvePage(deps.Ctx, c.Slug)
	if seogen.ErrorCode(err) == seogen.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: page %q not found. Use 'seogen list' to see available pages.\n", c.Slug)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}
