package main

import (
	"fmt"

	"github.com/fwojciec/seogen"
)

// Run executes the delete command. Deleting the latest table makes the
// previous one current on the next load.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return seogen.Errorf(seogen.EINVALID, "use --force to confirm deletion")
	}

	table, err := deps.Tables.FindTableByID(deps.Ctx, c.ID)
	if seogen.ErrorCode(err) == seogen.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: table %q not found. Use 'seogen tables' to see imported tables.\n", c.ID)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	if err := deps.Tables.DeleteTable(deps.Ctx, table.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seogen.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted table %q (%s)\n", table.Name, table.ID)
	return nil
}
