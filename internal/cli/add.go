package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <name> <quantity> <unit> <expiry>",
		Short: "Add an item to a category",
		Long: `Add files a new item under the given category, creating the category if it
does not exist. Category names are case-sensitive. Quantity is a
non-negative integer and expiry is a YYYY-MM-DD date.

Example:
  pantry add dairy milk 2 L 2025-01-10
  pantry add produce apple 6 pieces 2025-01-20 --json`,
		Args: wrapArgs(cobra.ExactArgs(5)),
		RunE: a.runAdd,
	}
}

func (a *app) runAdd(cmd *cobra.Command, args []string) error {
	category, name, unit := args[0], args[1], args[3]

	quantity, err := types.ParseQuantity(args[2])
	if err != nil {
		return err
	}
	expiry, err := types.ParseExpiry(args[4])
	if err != nil {
		return err
	}

	p, err := a.openPantry()
	if err != nil {
		return err
	}
	it, err := p.AddItem(category, name, quantity, unit, expiry)
	if err != nil {
		return err
	}
	if err := a.save(p); err != nil {
		return err
	}

	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), it)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d %s) to %s.\n", it.Name, it.Quantity, it.Unit, category)
	return nil
}
