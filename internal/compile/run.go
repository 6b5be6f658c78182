package compile

import (
	"context"
	"os"

	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/paths"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// DefaultEnvFile is the override file used when none is configured.
const DefaultEnvFile = ".env"

// Options are the inputs of one compilation run.
type Options struct {
	// RegistryPath is the registry document to load.
	RegistryPath string
	// EnvFile is the .env override file. It need not exist. Its absolute
	// path is written into every server's --env-file.
	EnvFile string
	// Environ is the process environment in KEY=VALUE form. Nil means
	// os.Environ().
	Environ []string
	// Overrides replaces the built-in exception tables when non-nil.
	Overrides *Overrides
}

// Input is everything a run reads before compiling.
type Input struct {
	Registry *registry.Registry
	Env      *env.Overrides
	Snapshot *env.Snapshot
	// EnvFile is the absolute override file path.
	EnvFile string
	// Overrides are the exception tables the run classifies with.
	Overrides Overrides
}

// Result is the outcome of a compilation.
type Result struct {
	Document *Document
	Warnings []Warning
	// Data is the serialized document handed to the sink.
	Data []byte
}

// Load reads the registry and the override file and builds the snapshot.
// Nothing is written.
func Load(ctx context.Context, opts Options) (*Input, error) {
	logger := logging.FromContext(ctx)

	if opts.RegistryPath == "" {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "no registry path configured")
	}
	envPath := opts.EnvFile
	if envPath == "" {
		envPath = DefaultEnvFile
	}
	absEnv, err := paths.Absolute(envPath)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded registry", "path", opts.RegistryPath, "servers", len(reg.Servers))

	overrides, err := env.ParseFile(absEnv)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded env file", "path", absEnv, "keys", len(overrides.Keys))

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	o := opts.overrides()
	return &Input{
		Registry:  reg,
		Env:       overrides,
		Snapshot:  env.NewSnapshot(env.DefaultsFor(reg, o.Classify), environ, overrides),
		EnvFile:   absEnv,
		Overrides: o,
	}, nil
}

func (opts Options) overrides() Overrides {
	if opts.Overrides != nil {
		return *opts.Overrides
	}
	return DefaultOverrides()
}

// NewCompilerFor returns the compiler a run with opts uses for in.
func NewCompilerFor(ctx context.Context, opts Options, in *Input) *Compiler {
	return NewCompiler(in.EnvFile, WithOverrides(opts.overrides()), WithLogger(logging.FromContext(ctx)))
}

// Build loads and compiles without emitting.
func Build(ctx context.Context, opts Options) (*Input, *Result, error) {
	in, err := Load(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	doc, warnings, err := NewCompilerFor(ctx, opts, in).Compile(in.Registry, in.Snapshot)
	if err != nil {
		return nil, nil, err
	}
	data, err := doc.Marshal()
	if err != nil {
		return nil, nil, err
	}
	return in, &Result{Document: doc, Warnings: warnings, Data: data}, nil
}

// Run compiles and hands the document to sink. Any load or compile failure
// returns before the sink is touched.
func Run(ctx context.Context, opts Options, sink Sink) (*Result, error) {
	_, res, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sink.Emit(ctx, res.Data); err != nil {
		return nil, err
	}
	return res, nil
}
