package commands

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/backup"
	"github.com/thoreinstein/mcpgen/internal/compile"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/paths"
)

// compileOptions builds the inputs of a compilation run from the loaded
// configuration.
func compileOptions() compile.Options {
	o := compile.DefaultOverrides().Merge(compile.Overrides{
		Archetype: cfg.ArchetypeOverrides(),
		Cmd:       cfg.CommandOverrides(),
	})
	return compile.Options{
		RegistryPath: paths.ExpandHome(cfg.Registry),
		EnvFile:      cfg.EnvFile,
		Overrides:    &o,
	}
}

// resolveTargets returns the client files to write. An empty selection means
// every enabled client.
func resolveTargets(selected []string) ([]compile.Target, error) {
	clients := cfg.EnabledClients()
	if len(selected) > 0 {
		var invalid []string
		for _, c := range selected {
			if !paths.ValidClient(c) {
				invalid = append(invalid, c)
			}
		}
		if len(invalid) > 0 {
			err := errors.Newf("invalid client(s): %s (valid: %s)",
				strings.Join(invalid, ", "),
				strings.Join(paths.Clients(), ", "))
			return nil, errors.NewUserError(err, "Run 'mcpgen write --help' to see valid clients")
		}
		clients = slices.DeleteFunc(slices.Clone(paths.Clients()), func(c string) bool {
			return !slices.Contains(selected, c)
		})
	}
	if len(clients) == 0 {
		return nil, errors.NewUserError(errors.New("no clients enabled"), "Enable a client under clients.<name>.enabled")
	}

	targets := make([]compile.Target, 0, len(clients))
	for _, c := range clients {
		targets = append(targets, compile.Target{Client: c, Path: cfg.ClientPath(c)})
	}
	return targets, nil
}

// newBackupManager returns the backup manager configured for this run.
func newBackupManager() *backup.Manager {
	opts := []backup.Option{backup.WithRetentionCount(cfg.Backup.Retention)}
	if cfg.Backup.Dir != "" {
		opts = append(opts, backup.WithBackupDir(paths.ExpandHome(cfg.Backup.Dir)))
	}
	return backup.NewManager(opts...)
}

// logWarnings reports compile warnings through the logger.
func logWarnings(ctx context.Context, warnings []compile.Warning) {
	logger := logging.FromContext(ctx)
	for _, w := range warnings {
		attrs := []any{slog.String("server", w.ServerID), slog.String("kind", string(w.Kind))}
		if w.Field != "" {
			attrs = append(attrs, slog.String("field", w.Field))
		}
		logger.Warn(w.Message, attrs...)
	}
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
