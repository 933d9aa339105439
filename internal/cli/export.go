package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/export"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the pantry as SQLite or XLSX",
		Long: `Export writes the current pantry to a file other tools can open. The
snapshot is never read back; pantry.csv and pantry.json stay the stores.

Example:
  pantry export --format xlsx --out pantry.xlsx
  pantry export --format sqlite --out pantry.db`,
		Args: wrapArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("%w: --out is required", types.ErrInput)
			}

			p, err := a.openPantry()
			if err != nil {
				return err
			}
			if err := export.Write(format, out, p); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info("pantry exported", "format", format, "path", out)

			fmt.Fprintf(cmd.OutOrStdout(), "Exported pantry to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatXLSX, "export format: sqlite or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file path")
	return cmd
}
