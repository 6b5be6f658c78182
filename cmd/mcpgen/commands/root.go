// Package commands implements the CLI commands for mcpgen.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/cmd"
	"github.com/thoreinstein/mcpgen/internal/config"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given.
const debugEnv = "MCPGEN_DEBUG"

var (
	// configFile holds the value of the --config flag.
	configFile string

	// registryFlag and envFileFlag override the configured inputs.
	registryFlag string
	envFileFlag  string

	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string
)

// cfg is the loaded configuration; set by loadConfig before any command runs.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or <config home>/mcpgen/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&registryFlag, "registry", "r", "",
		"server registry document (.yaml, .yml, .json or .toml)")
	rootCmd.PersistentFlags().StringVarP(&envFileFlag, "env-file", "e", "",
		"override file with KEY=VALUE lines")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("mcpgen version {{.Version}}\n")

	// Errors are printed by main so exit codes and suggestions stay in one place.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "mcpgen",
	Short: "Compile a registry of containerized MCP servers into client configs",
	Long: `mcpgen compiles a declarative registry of containerized MCP servers into the
mcpServers documents read by Claude Desktop and Cursor.

Every server becomes a "docker run" command line built from its archetype
(api_based, mount_based, privileged or standalone). Secrets never appear in
the output: servers read them from the --env-file at start-up, and command
arguments reference them as ${VAR} or a YOUR_VAR_HERE placeholder.

preview and write share one compilation path, so what preview prints is
exactly what write stores for each client.`,
	Example: `  # Print the compiled document
  mcpgen preview

  # Write it to both clients, backing up the previous files
  mcpgen write

  # Check the registry and .env before writing
  mcpgen validate

  # Start a .env from the registry's declared variables
  mcpgen env template > .env`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		cfg = config.Default()
		return nil
	}

	config.Init()
	loaded, err := config.Load(configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if registryFlag != "" {
		loaded.Registry = registryFlag
	}
	if envFileFlag != "" {
		loaded.EnvFile = envFileFlag
	}
	cfg = loaded

	logging.FromContext(cmd.Context()).Debug("configuration loaded",
		"registry", cfg.Registry,
		"env_file", cfg.EnvFile,
	)
	return nil
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	lc := logging.Config{
		Level:  logging.ResolveLevel(verbosity, quiet, os.Getenv(debugEnv)),
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		lc.File = f
	}

	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
