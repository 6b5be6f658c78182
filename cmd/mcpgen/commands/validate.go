package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/compile"
	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/registry"
	"github.com/thoreinstein/mcpgen/internal/validator"
)

var (
	validateFormat string
	validateAll    bool
	validateStrict bool
)

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "report format: text, json")
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "include informational notes")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registry and .env file",
	Long: `Load the registry and the .env file, compile them, and report problems.

Errors are conditions that stop preview and write: a malformed registry or a
.env line that is not KEY=VALUE. Warnings flag output that is valid but
probably not what you want, such as secrets still set to placeholders or
$VAR references that were left literal.

Exits non-zero on errors, or on warnings with --strict.`,
	Example: `  mcpgen validate
  mcpgen validate --all
  mcpgen validate --format json --strict`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	format := validator.Format(validateFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown format %q", validateFormat), "Use --format text or --format json")
	}

	in, res, err := compile.Build(cmd.Context(), compileOptions())
	var result *validator.Result
	if err != nil {
		result = &validator.Result{}
		result.Add(loadIssue(err))
	} else {
		result = validator.Lint(in, res)
	}

	reporter := validator.NewReporter(cmd.OutOrStdout(), format, validator.WithInfo(validateAll))
	if err := reporter.Report(result); err != nil {
		return err
	}

	if result.HasErrors() || (validateStrict && result.HasWarnings()) {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// loadIssue converts a fatal load error into a report entry.
func loadIssue(err error) validator.Issue {
	issue := validator.Issue{Severity: validator.SeverityError, Message: err.Error()}

	var pe *registry.ParseError
	var fe *env.FormatError
	switch {
	case errors.As(err, &pe):
		issue.Kind = "registry_parse"
		issue.Server = pe.ServerID
		issue.Field = pe.Field
		issue.Message = pe.Err.Error()
		issue.Context = map[string]string{"file": pe.Path}
	case errors.As(err, &fe):
		issue.Kind = "env_format"
		issue.Message = fe.Err.Error()
		issue.Value = fe.Text
		issue.Context = map[string]string{"file": fe.Path, "line": strconv.Itoa(fe.Line)}
	}
	return issue
}
