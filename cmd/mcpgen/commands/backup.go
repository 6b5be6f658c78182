package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/backup"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/paths"
)

var (
	backupClients  []string
	backupListJSON bool
)

func init() {
	backupCmd.PersistentFlags().StringSliceVarP(&backupClients, "client", "c", nil,
		"client(s): claude-desktop, cursor (default: all)")
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupCmd.AddCommand(backupListCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage client config backups",
	Long: `mcpgen write backs up each existing client config file before replacing
it. Backups live under <data home>/mcpgen/backups/<client>/ and the oldest
are pruned beyond backup.retention.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Example: `  mcpgen backup list
  mcpgen backup list --client cursor --json`,
	Args: cobra.NoArgs,
	RunE: runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore a client config from a backup",
	Long: `Restore one client's config file from a backup. Without an id the most
recent backup is used. --client is required and must name one client.`,
	Example: `  mcpgen backup restore --client cursor
  mcpgen backup restore 20260123T100712 --client claude-desktop`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupRestore,
}

// backupListOutput is one client's backups in JSON output.
type backupListOutput struct {
	Client  string             `json:"client"`
	Backups []backupInfoOutput `json:"backups"`
}

type backupInfoOutput struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Version   string    `json:"mcpgen_version"`
}

func backupClientList() ([]string, error) {
	if len(backupClients) == 0 {
		return paths.Clients(), nil
	}
	for _, c := range backupClients {
		if !paths.ValidClient(c) {
			return nil, errors.NewUserError(errors.Newf("invalid client %q", c), "Valid clients: claude-desktop, cursor")
		}
	}
	return backupClients, nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	clients, err := backupClientList()
	if err != nil {
		return err
	}
	mgr := newBackupManager()

	output := make([]backupListOutput, 0, len(clients))
	for _, c := range clients {
		manifests, err := mgr.List(c)
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.Wrapf(err, "listing backups for %s", c)
		}
		infos := make([]backupInfoOutput, len(manifests))
		for i, m := range manifests {
			infos[i] = backupInfoOutput{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				Path:      m.File.OriginalPath,
				Size:      m.File.Size,
				Version:   m.ToolVersion,
			}
		}
		output = append(output, backupListOutput{Client: c, Backups: infos})
	}

	if backupListJSON {
		return writeJSON(cmd.OutOrStdout(), output)
	}
	renderBackups(cmd.OutOrStdout(), output)
	return nil
}

func renderBackups(w io.Writer, output []backupListOutput) {
	for i, o := range output {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, color.New(color.FgCyan, color.Bold).Sprintf("Client: %s", paths.ClientDisplayName(o.Client)))
		if len(o.Backups) == 0 {
			fmt.Fprintln(w, color.HiBlackString("  (no backups available)"))
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "CREATED", "SIZE", "VERSION"})
		for _, b := range o.Backups {
			t.AppendRow(table.Row{
				b.ID,
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				b.Size,
				b.Version,
			})
		}
		t.Render()
	}
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if len(backupClients) != 1 {
		return errors.NewUserError(errors.New("restore requires exactly one --client"), "Example: mcpgen backup restore --client cursor")
	}
	clients, err := backupClientList()
	if err != nil {
		return err
	}
	client := clients[0]
	mgr := newBackupManager()
	w := cmd.OutOrStdout()

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		latest, err := mgr.Latest(client)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Newf("no backups found for %s", paths.ClientDisplayName(client)), "Run: mcpgen backup list")
			}
			return errors.Wrap(err, "listing backups")
		}
		id = latest.ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", id)
	}

	m, err := mgr.Restore(client, id)
	if err != nil {
		return errors.Wrapf(err, "restoring backup %s", id)
	}
	fmt.Fprintf(w, "%s Restored %s config %s from backup %s\n",
		color.GreenString("✓"), paths.ClientDisplayName(client), m.File.OriginalPath, id)
	return nil
}
