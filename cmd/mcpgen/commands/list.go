package commands

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/registry"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the servers in the registry",
	Long: `List every server in the registry with the archetype it is built as, its
image and the environment variables it declares.

The TYPE column shows the archetype after overrides, marked with "*" when an
override replaced the registry's server_type.`,
	Example: `  mcpgen list
  mcpgen list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one server in JSON output.
type listEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Archetype   string   `json:"archetype"`
	Declared    string   `json:"declared_archetype"`
	Source      string   `json:"source"`
	Image       string   `json:"image"`
	Environment []string `json:"environment_variables"`
}

func runList(cmd *cobra.Command, _ []string) error {
	opts := compileOptions()
	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return err
	}
	logging.FromContext(cmd.Context()).Debug("listing registry", "servers", len(reg.Servers))

	entries := make([]listEntry, 0, len(reg.Servers))
	for _, e := range reg.Entries() {
		env := e.EnvironmentVariables
		if env == nil {
			env = []string{}
		}
		entries = append(entries, listEntry{
			ID:          e.ID,
			Name:        e.DisplayName(),
			Description: e.Description,
			Archetype:   string(opts.Overrides.Classify(e)),
			Declared:    string(e.Archetype),
			Source:      string(e.Source.Kind),
			Image:       e.Source.ImageRef(),
			Environment: env,
		})
	}

	if listJSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	renderList(cmd.OutOrStdout(), entries)
	return nil
}

func renderList(w io.Writer, entries []listEntry) {
	if len(entries) == 0 {
		io.WriteString(w, text.FgYellow.Sprint("No servers in registry")+"\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("TYPE"),
		text.FgHiCyan.Sprint("IMAGE"),
		text.FgHiCyan.Sprint("ENV"),
	})
	for _, e := range entries {
		archetype := e.Archetype
		if archetype != e.Declared {
			archetype += "*"
		}
		t.AppendRow(table.Row{
			e.ID,
			truncate(e.Name, 30),
			archetype,
			truncate(e.Image, 50),
			strings.Join(e.Environment, ", "),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(entries)})
	t.Render()
}

// writeJSON writes v the way every mcpgen document is serialized.
func writeJSON(w io.Writer, v any) error {
	data, err := fileutil.MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}

