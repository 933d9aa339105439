package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newExpiringCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List items that are expired or expire soon",
		Long: `Expiring lists items already past their expiry date and items expiring
within --days days, soonest first.

Example:
  pantry expiring
  pantry expiring --days 3 --json`,
		Args: wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("%w: --days must be non-negative, got %d", types.ErrInput, days)
			}

			p, err := a.openPantry()
			if err != nil {
				return err
			}
			today := now()
			items := p.Expiring(today, days)

			out := cmd.OutOrStdout()
			if a.jsonMode {
				if items == nil {
					items = []*types.Item{}
				}
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintf(out, "Nothing expires within %d days.\n", days)
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, itemRow(it.Category, it, today))
			}
			writeTable(out, itemHeader, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", types.WarningDays, "window in days")
	return cmd
}
