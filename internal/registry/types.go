package registry

import (
	"slices"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/errors"
)

// Archetype selects the container arguments a server needs.
type Archetype string

// The four archetypes. The set is closed: any other value in a registry is
// rejected at load time.
const (
	// APIBased servers talk to a remote API; credentials arrive via the env file.
	APIBased Archetype = "api_based"
	// MountBased servers operate on host directories listed in a mount variable.
	MountBased Archetype = "mount_based"
	// Privileged servers need extra networks, volumes or a command override.
	Privileged Archetype = "privileged"
	// Standalone servers are self-contained images.
	Standalone Archetype = "standalone"
)

// ErrUnknownArchetype indicates a server_type value outside the closed set.
var ErrUnknownArchetype = errors.New("unknown server_type")

// Archetypes returns every archetype in a stable order.
func Archetypes() []Archetype {
	return []Archetype{APIBased, MountBased, Privileged, Standalone}
}

// ParseArchetype converts a registry server_type value to an Archetype.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.TrimSpace(s))
	if slices.Contains(Archetypes(), a) {
		return a, nil
	}
	return "", errors.Wrapf(ErrUnknownArchetype, "%q", s)
}

func (a Archetype) String() string {
	return string(a)
}

// SourceKind says where a server image comes from.
type SourceKind string

const (
	// SourceRegistry images are pulled from a container registry.
	SourceRegistry SourceKind = "registry"
	// SourceBuild images are built locally from BuildContext.
	SourceBuild SourceKind = "build"
)

// DefaultMountVariable names the mount list used by mount_based servers that
// do not declare one.
const DefaultMountVariable = "FILESYSTEM_ALLOWED_DIRS"

// NullCommand is the literal cmd value that means "keep the image's default
// command". It is kept distinct from an empty list.
const NullCommand = "null"

// Source describes the image of a server.
type Source struct {
	Kind         SourceKind
	Image        string
	Repository   string
	BuildContext string
}

// ImageRef returns the image reference passed to the container runtime.
// References without a tag or digest get ":latest".
func (s Source) ImageRef() string {
	img := strings.TrimSpace(s.Image)
	if img == "" || strings.Contains(img, "@") {
		return img
	}
	last := img
	if i := strings.LastIndex(img, "/"); i >= 0 {
		last = img[i+1:]
	}
	if strings.Contains(last, ":") {
		return img
	}
	return img + ":latest"
}

// CmdArgs holds a server's command override.
type CmdArgs struct {
	// Args are the tokens appended after the image.
	Args []string
	// Null is set when the registry spelled the command as the literal "null".
	Null bool
}

// Empty reports whether the override contributes no tokens.
func (c CmdArgs) Empty() bool {
	return c.Null || len(c.Args) == 0
}

// ServerEntry is one server definition from the registry.
type ServerEntry struct {
	ID          string
	Name        string
	Description string
	Archetype   Archetype
	Source      Source

	// EnvironmentVariables lists the variable names the server expects, in
	// declaration order.
	EnvironmentVariables []string

	// Volumes are host_path:container_path[:mode] specs, possibly with
	// unexpanded $VAR references.
	Volumes []string

	Networks   []string
	Entrypoint string
	Cmd        CmdArgs

	// MountVariable names the variable holding the comma-separated host
	// directories of a mount_based server.
	MountVariable string
}

// MountVar returns the mount variable, or DefaultMountVariable when none is
// set. Entries forced to mount_based by an override carry no declared one.
func (e *ServerEntry) MountVar() string {
	if e.MountVariable != "" {
		return e.MountVariable
	}
	return DefaultMountVariable
}

// DisplayName returns Name, falling back to ID.
func (e *ServerEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}
