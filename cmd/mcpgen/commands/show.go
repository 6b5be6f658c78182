package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpgen/internal/compile"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the server's mcpServers entry as JSON")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the rendered command line of one server",
	Long: `Show how one registry entry is rendered: its archetype, image and the full
docker command line, plus any warnings raised while rendering it.

Without an id, an interactive fuzzy finder lists the registry when running
in a terminal.`,
	Example: `  mcpgen show github
  mcpgen show filesystem --json
  mcpgen show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := compileOptions()
	in, res, err := compile.Build(ctx, opts)
	if err != nil {
		return err
	}

	var id string
	switch {
	case len(args) == 1:
		id = args[0]
	case logging.Interactive():
		picked, ok, err := pickServer(in.Registry, res.Document)
		if err != nil || !ok {
			return err
		}
		id = picked
	default:
		return errors.NewUserError(errors.New("server id required"), "Run: mcpgen list")
	}

	entry, ok := in.Registry.Get(id)
	if !ok {
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "server %q", id), "Run: mcpgen list")
	}
	rendered := res.Document.MCPServers[id]

	var warnings []compile.Warning
	for _, w := range res.Warnings {
		if w.ServerID == id {
			warnings = append(warnings, w)
		}
	}

	if showJSON {
		doc := compile.NewDocument()
		doc.MCPServers[id] = rendered
		return writeJSON(cmd.OutOrStdout(), doc)
	}

	archetype := compile.NewCompilerFor(ctx, opts, in).Classify(entry)
	printServer(cmd.OutOrStdout(), entry, archetype, rendered, warnings)
	return nil
}

// pickServer lets the user choose an id. ok is false when the finder was
// aborted.
func pickServer(reg *registry.Registry, doc *compile.Document) (string, bool, error) {
	entries := reg.Entries()
	if len(entries) == 0 {
		return "", false, errors.NewUserError(errors.New("registry declares no servers"), "")
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].ID, entries[i].Archetype)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			e := entries[i]
			rs := doc.MCPServers[e.ID]
			return fmt.Sprintf("%s\n%s\n\nImage: %s\n\n%s %s",
				e.DisplayName(),
				e.Description,
				e.Source.ImageRef(),
				rs.Command,
				strings.Join(rs.Args, " "))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "interactive selection failed")
	}
	return entries[idx].ID, true, nil
}

func printServer(w io.Writer, e *registry.ServerEntry, archetype registry.Archetype, rs compile.RenderedServer, warnings []compile.Warning) {
	bold := color.New(color.Bold)
	label := color.New(color.FgCyan).SprintFunc()

	bold.Fprintf(w, "%s ", e.DisplayName())
	fmt.Fprintln(w, color.HiBlackString("(%s)", e.ID))
	if e.Description != "" {
		fmt.Fprintln(w, e.Description)
	}
	fmt.Fprintln(w)

	kind := string(archetype)
	if archetype != e.Archetype {
		kind += color.HiBlackString(" (registry: %s)", e.Archetype)
	}
	fmt.Fprintf(w, "%s %s\n", label("Archetype:"), kind)
	fmt.Fprintf(w, "%s %s %s\n", label("Image:    "), e.Source.ImageRef(), color.HiBlackString("[%s]", e.Source.Kind))
	if len(e.EnvironmentVariables) > 0 {
		fmt.Fprintf(w, "%s %s\n", label("Env:      "), strings.Join(e.EnvironmentVariables, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", label("Command:"))
	fmt.Fprintf(w, "  %s", rs.Command)
	for i := 0; i < len(rs.Args); i++ {
		a := rs.Args[i]
		if strings.HasPrefix(a, "--") && i+1 < len(rs.Args) && !strings.HasPrefix(rs.Args[i+1], "-") {
			fmt.Fprintf(w, " \\\n    %s %s", a, rs.Args[i+1])
			i++
			continue
		}
		fmt.Fprintf(w, " %s", a)
	}
	fmt.Fprintln(w)

	if len(warnings) > 0 {
		fmt.Fprintf(w, "\n%s\n", color.YellowString("Warnings:"))
		for _, warn := range warnings {
			fmt.Fprintf(w, "  • %s\n", warn.Message)
		}
	}
}
