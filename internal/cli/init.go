package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the pantry files",
		Long: `Init writes config.yaml with default values if it is missing, creates the
data directory, and writes pantry.csv and pantry.json if neither exists yet.
Existing files are left as they are.

A --data-dir given to init is recorded in config.yaml.`,
		Args: wrapArgs(cobra.NoArgs),
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	var recordDataDir string
	if a.dataDir != "" {
		recordDataDir = a.cfg.DataDir
	}
	created, err := writeConfigIfMissing(configDir, recordDataDir)
	if err != nil {
		return err
	}
	if created {
		a.logger.Info("config written", "path", filepath.Join(configDir, configFileExt))
	}

	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	p, err := a.openPantry()
	if err != nil {
		return err
	}
	if p.Source() == types.SourceEmpty {
		if err := p.Save(); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pantry initialized in %s (loaded from %s)\n", a.cfg.DataDir, p.Source())
	return nil
}
