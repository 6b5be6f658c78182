// Package env builds the environment snapshot a compilation run resolves
// tokens, volumes and mount lists against.
//
// Values are merged in increasing precedence: placeholder defaults derived
// from the registry, then the process environment, then the .env override
// file. A value is "real" when it is neither empty nor a placeholder.
package env

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/registry"
)

// Origin records which layer supplied a snapshot value.
type Origin int

const (
	// OriginDefault values are registry placeholders.
	OriginDefault Origin = iota
	// OriginProcess values come from the process environment.
	OriginProcess
	// OriginFile values come from the .env override file.
	OriginFile
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginProcess:
		return "process"
	case OriginFile:
		return "file"
	default:
		return "unknown"
	}
}

var placeholderPattern = regexp.MustCompile(`(?i)^(YOUR_[A-Z0-9_]+_HERE|<[^<>]*>)$`)

// Placeholder returns the human-readable stand-in emitted for name when no
// real value is available.
func Placeholder(name string) string {
	return "YOUR_" + name + "_HERE"
}

// IsPlaceholder reports whether v is empty or a placeholder such as
// YOUR_GITHUB_TOKEN_HERE or <path-to-dir>.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || placeholderPattern.MatchString(v)
}

// Classifier returns the archetype an entry is built as. A nil Classifier
// means the declared server_type.
type Classifier func(*registry.ServerEntry) registry.Archetype

func (c Classifier) archetype(e *registry.ServerEntry) registry.Archetype {
	if c == nil {
		return e.Archetype
	}
	return c(e)
}

// Defaults returns the placeholder defaults for every variable the registry
// declares, including the mount variable of each mount_based server.
func Defaults(reg *registry.Registry) map[string]string {
	return DefaultsFor(reg, nil)
}

// DefaultsFor is Defaults with archetypes taken from classify, so an entry
// forced to mount_based also gets its mount variable seeded.
func DefaultsFor(reg *registry.Registry, classify Classifier) map[string]string {
	defaults := make(map[string]string)
	for _, e := range reg.Entries() {
		for _, name := range e.EnvironmentVariables {
			defaults[name] = Placeholder(name)
		}
		if classify.archetype(e) == registry.MountBased {
			defaults[e.MountVar()] = Placeholder(e.MountVar())
		}
	}
	return defaults
}

// Snapshot is the resolved key/value view used by one compilation run. It is
// immutable once built.
type Snapshot struct {
	values  map[string]string
	origins map[string]Origin
}

// NewSnapshot merges defaults < environ < overrides. environ uses the
// os.Environ "KEY=VALUE" form; overrides may be nil.
func NewSnapshot(defaults map[string]string, environ []string, overrides *Overrides) *Snapshot {
	s := &Snapshot{
		values:  make(map[string]string, len(defaults)+len(environ)),
		origins: make(map[string]Origin, len(defaults)+len(environ)),
	}
	for k, v := range defaults {
		s.set(k, v, OriginDefault)
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		s.set(k, v, OriginProcess)
	}
	if overrides != nil {
		for _, k := range overrides.Keys {
			s.set(k, overrides.Values[k], OriginFile)
		}
	}
	return s
}

// FromMap builds a snapshot whose values all count as coming from the
// override file. It is mainly useful in tests.
func FromMap(values map[string]string) *Snapshot {
	keys := slices.Sorted(maps.Keys(values))
	return NewSnapshot(nil, nil, &Overrides{Keys: keys, Values: values})
}

func (s *Snapshot) set(k, v string, o Origin) {
	s.values[k] = v
	s.origins[k] = o
}

// Lookup returns the raw value for key, placeholder or not.
func (s *Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Real returns the value for key only when it is a real, non-placeholder value.
func (s *Snapshot) Real(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok || IsPlaceholder(v) {
		return "", false
	}
	return v, true
}

// Origin reports which layer supplied key.
func (s *Snapshot) Origin(key string) (Origin, bool) {
	o, ok := s.origins[key]
	return o, ok
}

// ResolveToken returns "${name}" when the snapshot holds a real value for
// name, and Placeholder(name) otherwise. The token is never expanded here; the
// client or container runtime expands it later.
func (s *Snapshot) ResolveToken(name string) string {
	if _, ok := s.Real(name); ok {
		return "${" + name + "}"
	}
	return Placeholder(name)
}
