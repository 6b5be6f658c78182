package compile

import (
	"maps"
	"slices"

	"github.com/thoreinstein/mcpgen/internal/registry"
)

// ArchetypeOverrides forces the archetype of named entries regardless of the
// registry's server_type.
var ArchetypeOverrides = map[string]registry.Archetype{
	"docker": registry.Privileged,
}

// CommandOverrides replaces the registry cmd of named entries.
var CommandOverrides = map[string][]string{
	"docker": {"mcp"},
}

// Overrides is the pair of exception tables consulted after the registry.
type Overrides struct {
	Archetype map[string]registry.Archetype
	Cmd       map[string][]string
}

// DefaultOverrides returns a copy of the built-in tables.
func DefaultOverrides() Overrides {
	o := Overrides{
		Archetype: maps.Clone(ArchetypeOverrides),
		Cmd:       make(map[string][]string, len(CommandOverrides)),
	}
	for id, args := range CommandOverrides {
		o.Cmd[id] = slices.Clone(args)
	}
	return o
}

// Merge returns o with the entries of extra added. Entries in extra win.
func (o Overrides) Merge(extra Overrides) Overrides {
	out := Overrides{
		Archetype: maps.Clone(o.Archetype),
		Cmd:       maps.Clone(o.Cmd),
	}
	if out.Archetype == nil {
		out.Archetype = map[string]registry.Archetype{}
	}
	if out.Cmd == nil {
		out.Cmd = map[string][]string{}
	}
	maps.Copy(out.Archetype, extra.Archetype)
	for id, args := range extra.Cmd {
		out.Cmd[id] = slices.Clone(args)
	}
	return out
}

// Classify returns the archetype used to build e. The override table is
// consulted first; otherwise the declared archetype is used as is.
func (o Overrides) Classify(e *registry.ServerEntry) registry.Archetype {
	if a, ok := o.Archetype[e.ID]; ok {
		return a
	}
	return e.Archetype
}

// Command returns the cmd used for e, applying the command override table.
func (o Overrides) Command(e *registry.ServerEntry) registry.CmdArgs {
	if args, ok := o.Cmd[e.ID]; ok {
		if len(args) == 1 && args[0] == registry.NullCommand {
			return registry.CmdArgs{Null: true}
		}
		return registry.CmdArgs{Args: slices.Clone(args)}
	}
	return e.Cmd
}
