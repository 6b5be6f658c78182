package env

import (
	"bytes"
	"fmt"

	"github.com/thoreinstein/mcpgen/internal/registry"
)

// Template renders a .env skeleton for reg. Servers appear in id order and
// each lists its variables in declaration order with placeholder values. A
// variable shared by several servers is emitted once, under the first.
func Template(reg *registry.Registry) []byte {
	return TemplateFor(reg, nil)
}

// TemplateFor is Template with archetypes taken from classify.
func TemplateFor(reg *registry.Registry, classify Classifier) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Generated by mcpgen. Replace each placeholder with a real value.\n")
	buf.WriteString("# Lines must be KEY=VALUE; no shell syntax is interpreted.\n")

	seen := make(map[string]string)
	for _, e := range reg.Entries() {
		mountBased := classify.archetype(e) == registry.MountBased
		names := append([]string(nil), e.EnvironmentVariables...)
		if mountBased {
			names = append(names, e.MountVar())
		}
		if len(names) == 0 {
			continue
		}

		fmt.Fprintf(&buf, "\n# %s (%s)\n", e.DisplayName(), e.ID)
		for _, name := range names {
			if first, ok := seen[name]; ok {
				fmt.Fprintf(&buf, "# %s is set above for %s\n", name, first)
				continue
			}
			seen[name] = e.ID
			if mountBased && name == e.MountVar() {
				buf.WriteString("# Comma-separated host directories, mounted under /projects.\n")
			}
			fmt.Fprintf(&buf, "%s=%s\n", name, Placeholder(name))
		}
	}
	return buf.Bytes()
}
