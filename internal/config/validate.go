package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/paths"
	"github.com/thoreinstein/mcpgen/internal/registry"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than 1.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidClient indicates an unrecognized client name.
	ErrInvalidClient = errors.New("invalid client")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidOverride indicates an unusable override table entry.
	ErrInvalidOverride = errors.New("invalid override")
)

// ValidationError collects every problem found in a config. It matches
// errors.ErrInvalidConfig.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "validating config: " + strings.Join(msgs, "; ")
}

// Is makes every ValidationError match errors.ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrInvalidConfig
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, errors.Wrapf(ErrUnsupportedVersion, "version %d", cfg.Version))
	}

	if strings.TrimSpace(cfg.Registry) == "" {
		errs = append(errs, &PathError{Field: "registry", Path: cfg.Registry, Err: ErrInvalidPath})
	} else if err := validatePath(cfg.Registry); err != nil {
		errs = append(errs, &PathError{Field: "registry", Path: cfg.Registry, Err: err})
	}
	if err := validatePath(cfg.EnvFile); err != nil {
		errs = append(errs, &PathError{Field: "env_file", Path: cfg.EnvFile, Err: err})
	}

	names := make([]string, 0, len(cfg.Clients))
	for name := range cfg.Clients {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !paths.ValidClient(name) {
			errs = append(errs, &ClientError{Client: name, Err: ErrInvalidClient})
			continue
		}
		if err := validatePath(cfg.Clients[name].Path); err != nil {
			errs = append(errs, &PathError{Field: "clients." + name + ".path", Path: cfg.Clients[name].Path, Err: err})
		}
	}

	if cfg.Backup.Dir != "" {
		if err := validatePath(cfg.Backup.Dir); err != nil {
			errs = append(errs, &PathError{Field: "backup.dir", Path: cfg.Backup.Dir, Err: err})
		}
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, errors.New("backup.retention must be >= 0"))
	}

	ids := make([]string, 0, len(cfg.Overrides.Archetype))
	for id := range cfg.Overrides.Archetype {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, err := registry.ParseArchetype(cfg.Overrides.Archetype[id]); err != nil {
			errs = append(errs, errors.Wrapf(ErrInvalidOverride, "overrides.archetype.%s: %v", id, err))
		}
	}

	ids = ids[:0]
	for id := range cfg.Overrides.Cmd {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if len(cfg.Overrides.Cmd[id]) == 0 {
			errs = append(errs, errors.Wrapf(ErrInvalidOverride, "overrides.cmd.%s: empty command", id))
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// ClientError represents an error for a specific client.
type ClientError struct {
	Client string
	Err    error
}

func (e *ClientError) Error() string {
	return e.Err.Error() + ": " + e.Client
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
