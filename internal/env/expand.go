package env

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/paths"
)

// refPattern matches ${NAME} and $NAME references.
var refPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Unresolved is a reference left literal because the snapshot had no real
// value for it.
type Unresolved struct {
	Name string
	// Text is the literal reference as written, e.g. "${HOME}".
	Text string
}

// References returns the variable names referenced in s, in order of
// appearance, without duplicates.
func References(s string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range refPattern.FindAllStringSubmatch(s, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Expand substitutes $NAME and ${NAME} in s with real snapshot values. The
// result is not scanned again, so a value containing "$X" stays literal.
// References without a real value are left as written and reported.
func (s *Snapshot) Expand(in string) (string, []Unresolved) {
	var unresolved []Unresolved
	out := refPattern.ReplaceAllStringFunc(in, func(ref string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(ref, "$"), "{"), "}")
		if v, ok := s.Real(name); ok {
			return v
		}
		unresolved = append(unresolved, Unresolved{Name: name, Text: ref})
		return ref
	})
	return out, unresolved
}

// Mount is one host directory bound into a container.
type Mount struct {
	Host      string
	Container string
}

// Spec renders the mount as a --volume value.
func (m Mount) Spec() string {
	return m.Host + ":" + m.Container
}

// ProjectsRoot is the container directory mount lists are bound under.
const ProjectsRoot = "/projects"

// MountResult is the outcome of expanding a mount variable.
type MountResult struct {
	Mounts     []Mount
	Unresolved []Unresolved
	// Placeholder is set when the variable itself had no real value.
	Placeholder bool
}

// MountDirs expands the comma-separated directory list held by name. Each
// element is trimmed, has references expanded, a leading "~" replaced, and is
// made absolute. An element with an unresolved reference is kept exactly as
// expanded, so the output never depends on the working directory. Directory D maps to /projects/<base(D)>. Order follows the
// source list. Directories are not checked for existence.
func (s *Snapshot) MountDirs(name string) MountResult {
	raw, ok := s.Real(name)
	if !ok {
		return MountResult{Placeholder: true}
	}

	var res MountResult
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		expanded, unresolved := s.Expand(part)
		res.Unresolved = append(res.Unresolved, unresolved...)

		host := expanded
		if len(unresolved) == 0 {
			host = filepath.Clean(paths.ExpandHome(expanded))
			if abs, err := filepath.Abs(host); err == nil {
				host = abs
			}
		}
		res.Mounts = append(res.Mounts, Mount{
			Host:      host,
			Container: ProjectsRoot + "/" + filepath.Base(host),
		})
	}
	return res
}

// ResolveTokens rewrites every reference in s with ResolveToken, so
// "--token=$GITHUB_TOKEN" becomes "--token=${GITHUB_TOKEN}" or
// "--token=YOUR_GITHUB_TOKEN_HERE". It returns the names that fell back to a
// placeholder.
func (s *Snapshot) ResolveTokens(in string) (string, []string) {
	var placeholders []string
	out := refPattern.ReplaceAllStringFunc(in, func(ref string) string {
		m := refPattern.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if _, ok := s.Real(name); !ok {
			placeholders = append(placeholders, name)
		}
		return s.ResolveToken(name)
	})
	return out, placeholders
}
