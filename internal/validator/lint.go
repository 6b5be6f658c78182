package validator

import (
	"os"

	"github.com/thoreinstein/mcpgen/internal/compile"
	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// Lint kinds reported in addition to compile warning kinds.
const (
	KindBuildContext  = "missing_build_context"
	KindNoServers     = "empty_registry"
	KindNoEnvFile     = "missing_env_file"
	KindUnusedEnvKey  = "unused_env_key"
	KindPlaceholderIn = "placeholder_in_env_file"
)

// Lint turns the compile warnings of a run and a few input checks into a
// Result. It never reports errors: anything fatal already failed the load.
func Lint(in *compile.Input, res *compile.Result) *Result {
	r := &Result{}

	if len(in.Registry.Servers) == 0 {
		r.Add(Issue{Severity: SeverityWarning, Kind: KindNoServers, Message: "registry declares no servers", Value: in.Registry.Path})
	}

	for _, e := range in.Registry.Entries() {
		if e.Source.Kind == registry.SourceBuild && e.Source.BuildContext == "" {
			r.Add(Issue{
				Severity: SeverityWarning,
				Server:   e.ID,
				Kind:     KindBuildContext,
				Field:    "source.build_context",
				Message:  "build sources should name a build context",
			})
		}
	}

	if res != nil {
		for _, w := range res.Warnings {
			r.Add(Issue{
				Severity: SeverityWarning,
				Server:   w.ServerID,
				Kind:     string(w.Kind),
				Field:    w.Field,
				Message:  w.Message,
			})
		}
	}

	lintEnvFile(r, in)
	return r
}

func lintEnvFile(r *Result, in *compile.Input) {
	if _, err := os.Stat(in.EnvFile); os.IsNotExist(err) {
		r.Add(Issue{
			Severity: SeverityInfo,
			Kind:     KindNoEnvFile,
			Message:  "no .env file; declared variables fall back to the process environment or placeholders",
			Value:    in.EnvFile,
		})
		return
	}

	declared := env.DefaultsFor(in.Registry, in.Overrides.Classify)
	for _, key := range in.Env.Keys {
		value := in.Env.Values[key]
		if _, ok := declared[key]; !ok {
			r.Add(Issue{
				Severity: SeverityInfo,
				Kind:     KindUnusedEnvKey,
				Field:    key,
				Message:  "not declared by any server",
				Context:  map[string]string{"file": in.EnvFile},
			})
			continue
		}
		if env.IsPlaceholder(value) {
			r.Add(Issue{
				Severity: SeverityWarning,
				Kind:     KindPlaceholderIn,
				Field:    key,
				Message:  "still holds a placeholder",
				Context:  map[string]string{"file": in.EnvFile},
			})
		}
	}
}
