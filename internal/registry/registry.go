// Package registry loads the declarative server registry that mcpgen compiles
// into client configuration files.
package registry

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// Format identifies the encoding of a registry document.
type Format string

const (
	// FormatYAML covers .yaml, .yml and .json documents (JSON is valid YAML,
	// and the YAML decoder rejects duplicate keys).
	FormatYAML Format = "yaml"
	// FormatTOML covers .toml documents.
	FormatTOML Format = "toml"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseError reports a malformed or incomplete registry document.
// It matches errors.ErrRegistryParse.
type ParseError struct {
	Path     string
	ServerID string
	Field    string
	Err      error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("registry")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.ServerID != "" {
		fmt.Fprintf(&sb, ": server %q", e.ServerID)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, ": field %q", e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match errors.ErrRegistryParse.
func (e *ParseError) Is(target error) bool {
	return target == errors.ErrRegistryParse
}

// Registry is the loaded set of server entries keyed by id.
type Registry struct {
	// Path is the file the registry was loaded from, if any.
	Path    string
	Servers map[string]*ServerEntry
}

// IDs returns the server ids in sorted order. Every consumer iterates in this
// order so output is reproducible.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Servers))
	for id := range r.Servers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*ServerEntry, bool) {
	e, ok := r.Servers[id]
	return e, ok
}

// Entries returns the server entries in IDs order.
func (r *Registry) Entries() []*ServerEntry {
	ids := r.IDs()
	out := make([]*ServerEntry, len(ids))
	for i, id := range ids {
		out[i] = r.Servers[id]
	}
	return out
}

type rawSource struct {
	Type         string `yaml:"type" toml:"type"`
	Image        string `yaml:"image" toml:"image"`
	Repository   string `yaml:"repository" toml:"repository"`
	BuildContext string `yaml:"build_context" toml:"build_context"`
}

type rawEntry struct {
	Name                 string    `yaml:"name" toml:"name"`
	Description          string    `yaml:"description" toml:"description"`
	ServerType           string    `yaml:"server_type" toml:"server_type"`
	Source               rawSource `yaml:"source" toml:"source"`
	EnvironmentVariables []string  `yaml:"environment_variables" toml:"environment_variables"`
	Volumes              []string  `yaml:"volumes" toml:"volumes"`
	Networks             []string  `yaml:"networks" toml:"networks"`
	Entrypoint           string    `yaml:"entrypoint" toml:"entrypoint"`
	Cmd                  any       `yaml:"cmd" toml:"cmd"`
	MountVariable        string    `yaml:"mount_variable" toml:"mount_variable"`
}

type rawDocument struct {
	Servers map[string]rawEntry `yaml:"servers" toml:"servers"`
}

// Load reads and parses the registry at path.
func Load(path string) (*Registry, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	reg, err := Parse(data, FormatForPath(path))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	reg.Path = path
	return reg, nil
}

// Parse decodes a registry document. Unknown keys are ignored; a missing
// image or an absent/unknown server_type fails the whole document.
func Parse(data []byte, format Format) (*Registry, error) {
	var doc rawDocument
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Err: errors.Wrap(err, "decoding document")}
	}
	if doc.Servers == nil {
		return nil, &ParseError{Field: "servers", Err: errors.New("missing top-level servers map")}
	}

	ids := make([]string, 0, len(doc.Servers))
	for id := range doc.Servers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	reg := &Registry{Servers: make(map[string]*ServerEntry, len(doc.Servers))}
	for _, id := range ids {
		entry, err := convert(id, doc.Servers[id])
		if err != nil {
			return nil, err
		}
		reg.Servers[id] = entry
	}
	return reg, nil
}

func convert(id string, raw rawEntry) (*ServerEntry, error) {
	fail := func(field string, err error) error {
		return &ParseError{ServerID: id, Field: field, Err: err}
	}

	if strings.TrimSpace(id) == "" {
		return nil, fail("", errors.New("server id is empty"))
	}

	if strings.TrimSpace(raw.ServerType) == "" {
		return nil, fail("server_type", errors.New("server_type is required"))
	}
	archetype, err := ParseArchetype(raw.ServerType)
	if err != nil {
		return nil, fail("server_type", err)
	}

	kind := SourceKind(strings.TrimSpace(raw.Source.Type))
	switch kind {
	case "":
		kind = SourceRegistry
	case SourceRegistry, SourceBuild:
	default:
		return nil, fail("source.type", errors.Newf("unknown source type %q", raw.Source.Type))
	}

	if strings.TrimSpace(raw.Source.Image) == "" {
		return nil, fail("source.image", errors.New("image is required"))
	}

	envVars := make([]string, 0, len(raw.EnvironmentVariables))
	for _, name := range raw.EnvironmentVariables {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fail("environment_variables", errors.New("empty variable name"))
		}
		if slices.Contains(envVars, name) {
			return nil, fail("environment_variables", errors.Newf("duplicate variable %s", name))
		}
		envVars = append(envVars, name)
	}

	cmd, err := parseCmd(raw.Cmd)
	if err != nil {
		return nil, fail("cmd", err)
	}

	mountVar := strings.TrimSpace(raw.MountVariable)
	if mountVar == "" && archetype == MountBased {
		mountVar = DefaultMountVariable
	}

	return &ServerEntry{
		ID:          id,
		Name:        raw.Name,
		Description: raw.Description,
		Archetype:   archetype,
		Source: Source{
			Kind:         kind,
			Image:        strings.TrimSpace(raw.Source.Image),
			Repository:   raw.Source.Repository,
			BuildContext: raw.Source.BuildContext,
		},
		EnvironmentVariables: envVars,
		Volumes:              raw.Volumes,
		Networks:             raw.Networks,
		Entrypoint:           strings.TrimSpace(raw.Entrypoint),
		Cmd:                  cmd,
		MountVariable:        mountVar,
	}, nil
}

// parseCmd accepts a list of tokens, a single string, or the literal "null".
// A document-level null is treated as absent.
func parseCmd(v any) (CmdArgs, error) {
	switch c := v.(type) {
	case nil:
		return CmdArgs{}, nil
	case string:
		if c == NullCommand {
			return CmdArgs{Null: true}, nil
		}
		return CmdArgs{Args: strings.Fields(c)}, nil
	case []any:
		args := make([]string, 0, len(c))
		for _, item := range c {
			s, ok := item.(string)
			if !ok {
				return CmdArgs{}, errors.Newf("cmd entries must be strings, got %T", item)
			}
			args = append(args, s)
		}
		if len(args) == 1 && args[0] == NullCommand {
			return CmdArgs{Null: true}, nil
		}
		return CmdArgs{Args: args}, nil
	default:
		return CmdArgs{}, errors.Newf("cmd must be a list or string, got %T", v)
	}
}
