package logging

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/mcpgen/internal/errors"
)

// Format selects how log records are rendered on the primary output.
type Format string

const (
	// FormatText renders records with Handler, colorized on a terminal.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf("unknown log format %q (valid: text, json)", s)
	}
}

// Config describes the logger for one mcpgen invocation.
type Config struct {
	// Level is the minimum level for every output.
	Level slog.Level
	// Format applies to Output only.
	Format Format
	// Output receives human-facing logs. Nil means os.Stderr.
	Output io.Writer
	// File, when set, additionally receives every record as JSON. It backs
	// the --log-file flag.
	File io.Writer
}

// New creates a logger from cfg. An unknown Format falls back to text.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts)
	}
	if cfg.File != nil {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(cfg.File, opts))
	}
	return slog.New(handler)
}

// NewDiscard creates a logger that drops every record.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter sends handler output to t.Log.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest returns a trace-level logger writing to t.Log, so compile traces
// show up for failing tests.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
