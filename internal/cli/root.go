// Package cli implements the pantry command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/export"
	"github.com/mesh-intelligence/pantry/internal/logging"
	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// userErrors are the sentinels that mean the invocation itself was wrong.
// Anything else is reported as a system error.
var userErrors = []error{
	types.ErrInput,
	types.ErrValidation,
	types.ErrNotFound,
	types.ErrCategoryExists,
	types.ErrLogLevelUnknown,
	types.ErrLogFormatUnknown,
	export.ErrUnknownFormat,
}

// app holds global flag values and the settings resolved before a
// subcommand runs. Each NewRootCmd gets its own.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool

	cfg    types.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "pantry" command with global flags and all
// subcommands registered. Run without a subcommand it starts the
// interactive menu.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Track pantry items, quantities, and expiry dates",
		Long: `Pantry keeps an inventory of food items grouped by category.

State is stored in pantry.csv and pantry.json in the data directory. On
start the CSV file is preferred, then the JSON file, then an empty pantry.
Commands that change the pantry write both files.

Run without a subcommand to use the interactive menu.`,
		Args:              wrapArgs(cobra.NoArgs),
		PersistentPreRunE: a.setup,
		RunE:              a.runMenu,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/pantry)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding pantry.csv and pantry.json (default: current directory)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", types.ErrInput, err)
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newCategoriesCmd(a),
		newExpiringCmd(a),
		newExportCmd(a),
		newMenuCmd(a),
	)

	return root
}

// dotEnvFile may set PANTRY_* variables for the working directory.
const dotEnvFile = ".env"

// Execute runs the root command against the process arguments and exits
// with the matching code.
func Execute() {
	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitSysError)
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// loadDotEnv adds the variables in path to the environment without
// replacing ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// setup resolves directories, reads config.yaml, and installs the logger.
// version needs none of it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	a.cfg = types.Config{
		DataDir:   dataDir,
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", configDir, err)
	}

	a.logger = logging.Setup(cmd.ErrOrStderr(), a.cfg.LogLevel, a.cfg.LogFormat)
	a.logger.Debug("config resolved", "config_dir", configDir, "data_dir", dataDir)
	return nil
}

// wrapArgs marks positional-argument errors as user input errors.
func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", types.ErrInput, err)
		}
		return nil
	}
}
