package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/seogen"
)

// Run executes the tables command.
func (c *TablesCmd) Run(deps *Dependencies) error {
	tables, err := deps.Tables.FindTables(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	if len(tables) == 0 {
		fmt.Fprintln(deps.Stdout, "No tables found. Use 'seogen import' to add one.")
		return nil
	}

	for _, t := range tables {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d rows  %s\n", t.ID, t.Name, t.Rows, t.ImportedAt.Format(time.RFC3339))
	}
	return nil
}
