package main

import (
	"fmt"

	"github.com/fwojciec/seogen"
)

// Run executes the serve command. It publishes the latest table, then
// serves until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	table, err := deps.Ingester.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}
	if table == nil {
		fmt.Fprintln(deps.Stderr, "No table imported yet. Upload one at /api/upload.")
	}

	return deps.Server.ListenAndServe(deps.Ctx, c.Addr)
}
