package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/mcpgen/internal/errors"
)

// AppName is the directory name used under the XDG config and data homes.
const AppName = "mcpgen"

// Client identifiers for the desktop applications that consume the compiled
// mcpServers document.
const (
	ClientClaudeDesktop = "claude-desktop"
	ClientCursor        = "cursor"
)

// clientDisplayNames maps client identifiers to human-readable names.
var clientDisplayNames = map[string]string{
	ClientClaudeDesktop: "Claude Desktop",
	ClientCursor:        "Cursor",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrUnknownClient indicates the client identifier is not supported.
	ErrUnknownClient = errors.New("unknown client")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used. It returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// AppConfigDir returns <ConfigHome>/mcpgen.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the root directory for client config backups:
// <DataHome>/mcpgen/backups.
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// Clients returns the supported client identifiers in emission order.
func Clients() []string {
	return []string{ClientClaudeDesktop, ClientCursor}
}

// ValidClient returns true if the client identifier is recognized.
func ValidClient(name string) bool {
	_, ok := clientDisplayNames[name]
	return ok
}

// ClientDisplayName returns the human-readable name for a client, or the
// identifier itself for unknown clients.
func ClientDisplayName(name string) string {
	if d, ok := clientDisplayNames[name]; ok {
		return d
	}
	return name
}

// ClientConfigPath returns the default location of a client's MCP config file.
//
// Client paths:
//   - claude-desktop: <ConfigHome>/Claude/claude_desktop_config.json
//   - cursor: ~/.cursor/mcp.json
//
// Returns an empty string for unknown clients or when the home directory
// cannot be determined.
func ClientConfigPath(name string) string {
	switch name {
	case ClientClaudeDesktop:
		return filepath.Join(ConfigHome(), "Claude", "claude_desktop_config.json")
	case ClientCursor:
		home := Home()
		if home == "" {
			return ""
		}
		return filepath.Join(home, ".cursor", "mcp.json")
	default:
		return ""
	}
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths that do not start with "~" are returned unchanged.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home := Home()
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// Absolute expands a leading "~" and returns the cleaned absolute form of p.
func Absolute(p string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(p))
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", p)
	}
	return abs, nil
}
