package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/mcpgen/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of backups kept per client.
const DefaultRetentionCount = 5

// manifestName is the manifest file inside each backup directory.
const manifestName = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the client.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the stored copy no longer matches its
	// recorded SHA256 hash.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackUp indicates the client file does not exist yet.
	ErrNothingToBackUp = errors.New("nothing to back up")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Client is the client whose config file was copied.
	Client string `json:"client"`

	File File `json:"file"`

	// ToolVersion is the mcpgen version that created the backup.
	ToolVersion string `json:"mcpgen_version"`

	// ID is the backup directory name. It is populated on load.
	ID string `json:"-"`
}

// File records the copied config file.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`

	// Name is the file name inside the backup directory.
	Name string `json:"name"`

	// SHA256Hash is the hex-encoded SHA256 of the contents.
	SHA256Hash string `json:"sha256_hash"`

	Mode fs.FileMode `json:"mode"`
	Size int64       `json:"size"`
}
