package env

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// keyPattern is the accepted variable name syntax.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FormatError reports a line of an override file that is not KEY=VALUE.
// It matches errors.ErrEnvironmentFormat.
type FormatError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "env"
	}
	return fmt.Sprintf("%s:%d: %v: %q", loc, e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes every FormatError match errors.ErrEnvironmentFormat.
func (e *FormatError) Is(target error) bool {
	return target == errors.ErrEnvironmentFormat
}

// Overrides is the parsed content of a .env override file.
type Overrides struct {
	// Path is the file the overrides came from; empty for in-memory input.
	Path string
	// Keys lists variable names in file order. A key assigned twice keeps its
	// first position and its last value.
	Keys   []string
	Values map[string]string
}

// ParseFile reads an override file. A missing file yields empty overrides;
// configuration generation must work before a .env exists.
func ParseFile(path string) (*Overrides, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Overrides{Path: path, Values: map[string]string{}}, nil
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	o, err := Parse(data)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	o.Path = path
	return o, nil
}

// Parse reads KEY=VALUE lines. Blank lines and lines starting with # are
// skipped, an optional "export " prefix is accepted, and matching single or
// double quotes around a value are removed. Values are taken literally: no
// variable or command substitution happens here. Any other line is rejected
// rather than skipped.
func Parse(data []byte) (*Overrides, error) {
	o := &Overrides{Values: map[string]string{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), fileutil.MaxFileSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseLine(line)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: raw, Err: err}
		}
		if _, seen := o.Values[key]; !seen {
			o.Keys = append(o.Keys, key)
		}
		o.Values[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning env file")
	}
	return o, nil
}

func parseLine(line string) (string, string, error) {
	line = strings.TrimPrefix(line, "export ")

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", errors.New("expected KEY=VALUE")
	}
	key = strings.TrimSpace(key)
	if !keyPattern.MatchString(key) {
		return "", "", errors.Newf("invalid variable name %q", key)
	}

	value = strings.TrimSpace(value)
	if n := len(value); n > 0 && (value[0] == '"' || value[0] == '\'') {
		if n < 2 || value[n-1] != value[0] {
			return "", "", errors.New("unterminated quoted value")
		}
		return key, value[1 : n-1], nil
	}
	if strings.HasPrefix(value, "<<") {
		return "", "", errors.New("heredoc syntax is not supported")
	}
	return key, value, nil
}
