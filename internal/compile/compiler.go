package compile

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// Command is the executable every rendered server runs.
const Command = "docker"

// RenderedServer is the final command line for one registry entry.
type RenderedServer struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Compiler renders registry entries. It holds no per-run state and is safe
// to reuse.
type Compiler struct {
	envFile   string
	overrides Overrides
	logger    *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOverrides replaces the exception tables. The default is
// DefaultOverrides().
func WithOverrides(o Overrides) Option {
	return func(c *Compiler) {
		c.overrides = o
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompiler returns a Compiler that points every server at envFile, which
// should be absolute.
func NewCompiler(envFile string, opts ...Option) *Compiler {
	c := &Compiler{
		envFile:   envFile,
		overrides: DefaultOverrides(),
		logger:    logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnvFile returns the --env-file path written into every server.
func (c *Compiler) EnvFile() string {
	return c.envFile
}

// Classify returns the archetype e is built as.
func (c *Compiler) Classify(e *registry.ServerEntry) registry.Archetype {
	return c.overrides.Classify(e)
}

// Render builds the command line for e against snap.
func (c *Compiler) Render(e *registry.ServerEntry, snap *env.Snapshot) (RenderedServer, []Warning, error) {
	var warnings []Warning
	warn := func(kind WarningKind, field, msg string) {
		warnings = append(warnings, Warning{ServerID: e.ID, Kind: kind, Field: field, Message: msg})
	}

	archetype := c.Classify(e)
	build, ok := builders[archetype]
	if !ok {
		return RenderedServer{}, nil, errors.Wrapf(registry.ErrUnknownArchetype, "server %q: %q", e.ID, archetype)
	}
	if archetype != e.Archetype {
		c.logger.Debug("archetype overridden", "server", e.ID, "declared", e.Archetype, "used", archetype)
	}

	for _, name := range e.EnvironmentVariables {
		if _, ok := snap.Real(name); !ok {
			warn(WarnPlaceholderSecret, "environment_variables", name+" has no real value")
		}
	}

	image := e.Source.ImageRef()
	if image == "" {
		return RenderedServer{}, nil, errors.Newf("server %q: image is empty", e.ID)
	}

	args := []string{"run", "--rm", "-i"}
	args = append(args, build(&buildContext{entry: e, snap: snap, warn: warn})...)
	if e.Entrypoint != "" {
		args = append(args, "--entrypoint", e.Entrypoint)
	}
	args = append(args, "--env-file", c.envFile, image)
	args = append(args, c.commandArgs(e, snap, warn)...)

	c.logger.Log(context.Background(), logging.LevelTrace, "rendered server", "server", e.ID, "archetype", archetype, "args", len(args))
	return RenderedServer{Command: Command, Args: args}, warnings, nil
}

// commandArgs resolves the cmd tokens of e. References become ${VAR} or a
// placeholder, never the value itself.
func (c *Compiler) commandArgs(e *registry.ServerEntry, snap *env.Snapshot, warn func(WarningKind, string, string)) []string {
	cmd := c.overrides.Command(e)
	if cmd.Empty() {
		return nil
	}
	out := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		resolved, placeholders := snap.ResolveTokens(arg)
		for _, name := range placeholders {
			warn(WarnPlaceholderSecret, "cmd", name+" has no real value; emitted "+env.Placeholder(name))
		}
		out = append(out, resolved)
	}
	return out
}

// Compile renders every entry of reg in sorted id order.
func (c *Compiler) Compile(reg *registry.Registry, snap *env.Snapshot) (*Document, []Warning, error) {
	doc := NewDocument()
	var warnings []Warning
	for _, e := range reg.Entries() {
		rs, w, err := c.Render(e, snap)
		if err != nil {
			return nil, nil, err
		}
		doc.MCPServers[e.ID] = rs
		warnings = append(warnings, w...)
	}
	c.logger.Debug("compiled registry", "servers", len(doc.MCPServers), "warnings", len(warnings))
	return doc, warnings, nil
}
