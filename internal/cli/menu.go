package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/menu"
)

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  wrapArgs(cobra.NoArgs),
		RunE:  a.runMenu,
	}
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	p, err := a.openPantry()
	if err != nil {
		return err
	}
	m := menu.New(p, cmd.InOrStdin(), cmd.OutOrStdout())
	m.Now = now
	return m.Run()
}
