package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/thoreinstein/mcpgen/cmd"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/paths"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// idLayout is the timestamp layout of backup IDs.
const idLayout = "20060102T150405"

// Manager creates, lists, restores and prunes client config backups.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups kept per client. Values
// below 1 are ignored.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager rooted at paths.BackupDir() unless
// overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RetentionCount returns the number of backups kept per client.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// Backup copies the client's config file at path into a new backup and then
// prunes old backups beyond the retention count. It returns
// ErrNothingToBackUp when path does not exist.
func (m *Manager) Backup(client, path string) (*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}
	src, err := paths.Absolute(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNothingToBackUp
		}
		return nil, errors.Wrapf(err, "stat %s", src)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", src)
	}

	created := m.now().UTC()
	id, dir, err := m.reserveDir(client, created)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(src)
	hash, mode, err := copyFile(src, filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "backing up %s", src)
	}

	manifest := &Manifest{
		Version:   ManifestVersion,
		CreatedAt: created,
		Client:    client,
		File: File{
			OriginalPath: src,
			Name:         name,
			SHA256Hash:   hash,
			Mode:         mode,
			Size:         info.Size(),
		},
		ToolVersion: cmd.Version,
		ID:          id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(client, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// reserveDir creates a fresh backup directory. Backups taken within the same
// second get a numeric suffix.
func (m *Manager) reserveDir(client string, t time.Time) (string, string, error) {
	clientDir := m.clientDir(client)
	if err := paths.EnsureDir(clientDir, 0); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	base := t.Format(idLayout)
	for i := 0; i < 1000; i++ {
		id := base
		if i > 0 {
			id = base + "-" + strconv.Itoa(i)
		}
		dir := filepath.Join(clientDir, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
	return "", "", errors.Newf("too many backups for %s at %s", client, base)
}

// Restore copies a backup over its original path after verifying its hash.
func (m *Manager) Restore(client, backupID string) (*Manifest, error) {
	manifest, err := m.Get(client, backupID)
	if err != nil {
		return nil, err
	}

	stored := filepath.Join(m.backupPath(client, manifest.ID), manifest.File.Name)
	data, err := os.ReadFile(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup file %s", stored)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != manifest.File.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s", manifest.ID)
	}

	dst := manifest.File.OriginalPath
	if err := paths.EnsureDir(filepath.Dir(dst), 0); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", dst)
	}
	if err := fileutil.AtomicWriteFile(dst, data, manifest.File.Mode.Perm()); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", dst)
	}
	return manifest, nil
}

// Latest returns the newest backup for client.
func (m *Manager) Latest(client string) (*Manifest, error) {
	list, err := m.List(client)
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// List returns the backups for client, newest first.
func (m *Manager) List(client string) ([]Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	entries, err := os.ReadDir(m.clientDir(client))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(client, entry.Name())
		if err != nil {
			// Skip directories without a readable manifest.
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})
	return manifests, nil
}

// compareIDs orders "T" before "T-1" before "T-10".
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Prune removes backups beyond the newest keep for client.
func (m *Manager) Prune(client string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}
	manifests, err := m.List(client)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}
	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(client, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(client, backupID string) (*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}
	if filepath.Base(backupID) != backupID {
		return nil, errors.Newf("invalid backup ID %q", backupID)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(client, backupID), manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = backupID
	return &manifest, nil
}

func (m *Manager) backupPath(client, backupID string) string {
	return filepath.Join(m.clientDir(client), backupID)
}

func (m *Manager) clientDir(client string) string {
	return filepath.Join(m.rootDir, client)
}

// copyFile copies src to dst, returning the SHA256 hash and source mode.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
