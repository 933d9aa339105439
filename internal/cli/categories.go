package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category names, including empty ones",
		Args:  wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPantry()
			if err != nil {
				return err
			}

			var names []string
			for _, c := range p.Categories() {
				if c != "" {
					names = append(names, c)
				}
			}

			if a.jsonMode {
				if names == nil {
					names = []string{}
				}
				return writeJSON(cmd.OutOrStdout(), names)
			}
			for _, c := range names {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
