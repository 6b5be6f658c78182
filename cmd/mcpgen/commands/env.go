package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/registry"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

var (
	envTemplateOutput string
	envTemplateForce  bool
)

func init() {
	envTemplateCmd.Flags().StringVarP(&envTemplateOutput, "output", "o", "", "write the template to a file instead of stdout")
	envTemplateCmd.Flags().BoolVar(&envTemplateForce, "force", false, "overwrite an existing output file")
	envCmd.AddCommand(envTemplateCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Work with the .env override file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var envTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a .env template for the registry",
	Long: `Print a .env skeleton listing the variables each server declares, in
declaration order, with YOUR_<VAR>_HERE placeholders. mount_based servers
also get their directory-list variable.`,
	Example: `  mcpgen env template > .env
  mcpgen env template -o .env --force`,
	Args: cobra.NoArgs,
	RunE: runEnvTemplate,
}

func runEnvTemplate(cmd *cobra.Command, _ []string) error {
	opts := compileOptions()
	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return err
	}
	data := env.TemplateFor(reg, opts.Overrides.Classify)

	if envTemplateOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return errors.Wrap(err, "writing template")
	}

	if _, err := os.Stat(envTemplateOutput); err == nil && !envTemplateForce {
		return errors.NewUserError(errors.Newf("%s already exists", envTemplateOutput), "Use --force to overwrite it")
	}
	if err := fileutil.AtomicWriteFile(envTemplateOutput, data, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", envTemplateOutput)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", envTemplateOutput)
	}
	return nil
}
