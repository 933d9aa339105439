package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items grouped by category",
		Long: `List shows every item in category order with its expiry status.
Empty and unnamed categories are skipped.

Example:
  pantry list
  pantry list --json`,
		Aliases: []string{"ls"},
		Args:    wrapArgs(cobra.NoArgs),
		RunE:    a.runList,
	}
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	p, err := a.openPantry()
	if err != nil {
		return err
	}
	groups := p.ListAll()

	out := cmd.OutOrStdout()
	if a.jsonMode {
		if groups == nil {
			groups = []types.CategoryItems{}
		}
		return writeJSON(out, groups)
	}
	if len(groups) == 0 {
		fmt.Fprintln(out, "Pantry is empty!")
		return nil
	}

	today := now()
	var rows [][]string
	for _, g := range groups {
		for _, it := range g.Items {
			rows = append(rows, itemRow(g.Category, it, today))
		}
	}
	writeTable(out, itemHeader, rows)
	fmt.Fprintf(out, "Total: %d item(s)\n", len(rows))
	return nil
}
