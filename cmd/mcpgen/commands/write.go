package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/compile"
	"github.com/thoreinstein/mcpgen/internal/paths"
)

var (
	writeClients  []string
	writeNoBackup bool
)

func init() {
	writeCmd.Flags().StringSliceVarP(&writeClients, "client", "c", nil,
		"client(s) to write: claude-desktop, cursor (default: all enabled)")
	writeCmd.Flags().BoolVar(&writeNoBackup, "no-backup", false,
		"do not back up existing client files")
	rootCmd.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the compiled document to each client's config file",
	Long: `Compile the registry and write the mcpServers document to every enabled
client:

  claude-desktop  <config home>/Claude/claude_desktop_config.json
  cursor          ~/.cursor/mcp.json

Each file is replaced atomically. Existing files are backed up first unless
--no-backup is given or backups are disabled in the config. If the registry
or the .env file cannot be loaded, nothing is written.`,
	Example: `  # Write both clients
  mcpgen write

  # Only Cursor, without a backup
  mcpgen write --client cursor --no-backup

  See Also:
    mcpgen preview      - Print what would be written
    mcpgen backup list  - Inspect backups taken before writes`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	targets, err := resolveTargets(writeClients)
	if err != nil {
		return err
	}

	sink := compile.FileSink{Targets: targets}
	if cfg.Backup.Enabled && !writeNoBackup {
		sink.Backups = newBackupManager()
	}

	res, err := compile.Run(ctx, compileOptions(), sink)
	if err != nil {
		return err
	}
	logWarnings(ctx, res.Warnings)

	if quiet {
		return nil
	}
	w := cmd.OutOrStdout()
	for _, t := range targets {
		fmt.Fprintf(w, "%s Wrote %d server(s) to %s %s\n",
			color.GreenString("✓"),
			len(res.Document.MCPServers),
			paths.ClientDisplayName(t.Client),
			color.HiBlackString("(%s)", t.Path))
	}
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(w, "%s %d warning(s); run 'mcpgen validate' for details\n", color.YellowString("!"), n)
	}
	return nil
}
