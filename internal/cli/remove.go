package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <amount|all>",
		Short: "Remove some or all of an item",
		Long: `Remove takes units from the first item whose name matches, ignoring case.
An amount of "all", or one at least the item's quantity, removes the item.

Example:
  pantry remove milk 1
  pantry remove Milk all`,
		Aliases: []string{"rm"},
		Args:    wrapArgs(cobra.ExactArgs(2)),
		RunE:    a.runRemove,
	}
}

func (a *app) runRemove(cmd *cobra.Command, args []string) error {
	amount, err := types.ParseAmount(args[1])
	if err != nil {
		return err
	}

	p, err := a.openPantry()
	if err != nil {
		return err
	}
	res, err := p.RemoveQuantity(args[0], amount)
	if err != nil {
		return err
	}
	if err := a.save(p); err != nil {
		return err
	}

	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	if res.Deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed all of '%s' successfully.\n", res.Name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of '%s'. %d remaining.\n", res.Removed, res.Name, res.Remaining)
	}
	return nil
}
