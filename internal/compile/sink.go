package compile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/mcpgen/internal/backup"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/logging"
	"github.com/thoreinstein/mcpgen/internal/paths"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// Sink receives the marshaled document. Implementations must not alter it.
type Sink interface {
	Emit(ctx context.Context, data []byte) error
}

// StdoutSink prints the document once. It backs the preview command.
type StdoutSink struct {
	W io.Writer
}

// Emit writes data to W, or to os.Stdout when W is nil.
func (s StdoutSink) Emit(_ context.Context, data []byte) error {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing preview")
	}
	return nil
}

// WriteError reports a client file that could not be persisted.
// It matches errors.ErrWriteFailure.
type WriteError struct {
	Client string
	Path   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s config %s: %v", paths.ClientDisplayName(e.Client), e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes every WriteError match errors.ErrWriteFailure.
func (e *WriteError) Is(target error) bool {
	return target == errors.ErrWriteFailure
}

// Target is one client file the write sink updates.
type Target struct {
	Client string
	Path   string
}

// DefaultTargets returns the default config path of every supported client.
func DefaultTargets() []Target {
	targets := make([]Target, 0, len(paths.Clients()))
	for _, c := range paths.Clients() {
		targets = append(targets, Target{Client: c, Path: paths.ClientConfigPath(c)})
	}
	return targets
}

// Backuper snapshots a client file before it is replaced.
type Backuper interface {
	Backup(client, path string) (*backup.Manifest, error)
}

// FileSink writes the document to every target. Each file is replaced
// atomically, so an interrupted run leaves either the old or the new
// document in place.
type FileSink struct {
	Targets []Target
	// Backups, when set, is asked to copy each existing file first.
	Backups Backuper
	// Perm is the mode of newly written files; 0 means 0644.
	Perm os.FileMode
}

// Emit writes data to each target in order and stops at the first failure.
func (s FileSink) Emit(ctx context.Context, data []byte) error {
	logger := logging.FromContext(ctx)
	if len(s.Targets) == 0 {
		return errors.New("no client targets to write")
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	for _, t := range s.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.Path == "" {
			return &WriteError{Client: t.Client, Path: t.Path, Err: errors.New("config path could not be determined")}
		}
		if err := s.writeOne(logger, t, data, perm); err != nil {
			return err
		}
	}
	return nil
}

func (s FileSink) writeOne(logger *slog.Logger, t Target, data []byte, perm os.FileMode) error {
	if s.Backups != nil {
		m, err := s.Backups.Backup(t.Client, t.Path)
		switch {
		case errors.Is(err, backup.ErrNothingToBackUp):
			logger.Debug("no existing config to back up", "client", t.Client, "path", t.Path)
		case err != nil:
			return &WriteError{Client: t.Client, Path: t.Path, Err: errors.Wrap(err, "backing up existing config")}
		default:
			logger.Info("backed up client config", "client", t.Client, "backup", m.ID)
		}
	}

	if err := paths.EnsureDir(filepath.Dir(t.Path), 0); err != nil {
		return &WriteError{Client: t.Client, Path: t.Path, Err: err}
	}
	if err := fileutil.AtomicWriteFile(t.Path, data, perm); err != nil {
		return &WriteError{Client: t.Client, Path: t.Path, Err: err}
	}
	logger.Info("wrote client config", "client", t.Client, "path", t.Path, "bytes", len(data))
	return nil
}
