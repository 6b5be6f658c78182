package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/compile"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the compiled mcpServers document",
	Long: `Compile the registry against the current environment and print the
mcpServers document to standard output. Nothing is written.

The output is byte-for-byte what "mcpgen write" stores for every client.
Warnings (placeholder secrets, unresolved references) go to standard error.`,
	Example: `  mcpgen preview
  mcpgen preview --registry servers.toml --env-file ~/.config/mcp/.env
  mcpgen preview | jq '.mcpServers | keys'`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	res, err := compile.Run(ctx, compileOptions(), compile.StdoutSink{W: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	logWarnings(ctx, res.Warnings)
	return nil
}
