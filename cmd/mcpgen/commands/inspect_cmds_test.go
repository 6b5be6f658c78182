package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcpgen/internal/env"
	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/internal/validator"
)

// withFlag sets *p to v for the rest of the test.
func withFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	orig := *p
	*p = v
	t.Cleanup(func() { *p = orig })
}

func TestList_JSON(t *testing.T) {
	setupTestEnv(t, "")
	withFlag(t, &listJSON, true)

	cmd, out := newTestCommand(t)
	require.NoError(t, runList(cmd, nil))

	var entries []listEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "filesystem", entries[0].ID)
	assert.Equal(t, "github", entries[1].ID)
	assert.Equal(t, []string{"MCPGEN_TEST_GITHUB_TOKEN"}, entries[1].Environment)
	assert.Equal(t, "mcp/time:latest", entries[2].Image)
	assert.Equal(t, []string{}, entries[2].Environment)
}

func TestList_Table(t *testing.T) {
	setupTestEnv(t, "")
	withFlag(t, &listJSON, false)

	cmd, out := newTestCommand(t)
	require.NoError(t, runList(cmd, nil))

	output := out.String()
	for _, want := range []string{"github", "mount_based", "mcp/filesystem:latest", "MCPGEN_TEST_GITHUB_TOKEN"} {
		assert.Contains(t, output, want)
	}
}

func TestShow_JSON(t *testing.T) {
	te := setupTestEnv(t, "FILESYSTEM_ALLOWED_DIRS="+t.TempDir()+"\n")
	withFlag(t, &showJSON, true)

	cmd, out := newTestCommand(t)
	require.NoError(t, runShow(cmd, []string{"filesystem"}))

	var doc struct {
		MCPServers map[string]struct {
			Args []string `json:"args"`
		} `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.MCPServers, 1)
	args := doc.MCPServers["filesystem"].Args
	assert.Contains(t, args, "--volume")
	assert.Contains(t, args, te.envFile)
}

func TestShow_Text(t *testing.T) {
	setupTestEnv(t, "")
	withFlag(t, &showJSON, false)

	cmd, out := newTestCommand(t)
	require.NoError(t, runShow(cmd, []string{"github"}))

	output := out.String()
	assert.Contains(t, output, "GitHub (github)")
	assert.Contains(t, output, "Archetype: api_based")
	assert.Contains(t, output, "docker run --rm -i")
	assert.Contains(t, output, "Warnings:")
}

func TestShow_UnknownID(t *testing.T) {
	setupTestEnv(t, "")

	cmd, _ := newTestCommand(t)
	err := runShow(cmd, []string{"nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		strict    bool
		wantErr   bool
		wantInOut string
	}{
		{
			name:      "placeholders are warnings",
			env:       "",
			wantInOut: "Validation passed with warnings",
		},
		{
			name:    "strict fails on warnings",
			env:     "",
			strict:  true,
			wantErr: true,
		},
		{
			name:      "malformed env is an error",
			env:       "export\n",
			wantErr:   true,
			wantInOut: "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnv(t, tt.env)
			withFlag(t, &validateFormat, "text")
			withFlag(t, &validateStrict, tt.strict)
			withFlag(t, &validateAll, false)

			cmd, out := newTestCommand(t)
			err := runValidate(cmd, nil)
			if tt.wantErr {
				var exitErr *errors.ExitError
				require.True(t, errors.As(err, &exitErr), "got %v", err)
				assert.Equal(t, errors.ExitUser, exitErr.Code)
				assert.True(t, exitErr.Silent())
			} else {
				require.NoError(t, err)
			}
			if tt.wantInOut != "" {
				assert.Contains(t, out.String(), tt.wantInOut)
			}
		})
	}
}

func TestValidate_JSONEnvFormatContext(t *testing.T) {
	te := setupTestEnv(t, "GOOD=1\nbroken line\n")
	withFlag(t, &validateFormat, "json")
	withFlag(t, &validateStrict, false)

	cmd, out := newTestCommand(t)
	require.Error(t, runValidate(cmd, nil))

	var report struct {
		Issues []validator.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report), out.String())
	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, "env_format", issue.Kind)
	assert.Equal(t, "2", issue.Context["line"])
	assert.Equal(t, te.envFile, issue.Context["file"])
}

func TestValidate_UnknownFormat(t *testing.T) {
	setupTestEnv(t, "")
	withFlag(t, &validateFormat, "xml")

	cmd, _ := newTestCommand(t)
	require.Error(t, runValidate(cmd, nil))
}

func TestEnvTemplate(t *testing.T) {
	te := setupTestEnv(t, "")

	t.Run("stdout", func(t *testing.T) {
		withFlag(t, &envTemplateOutput, "")
		cmd, out := newTestCommand(t)
		require.NoError(t, runEnvTemplate(cmd, nil))

		assert.Contains(t, out.String(), "MCPGEN_TEST_GITHUB_TOKEN=YOUR_MCPGEN_TEST_GITHUB_TOKEN_HERE")
		assert.Contains(t, out.String(), "FILESYSTEM_ALLOWED_DIRS=YOUR_FILESYSTEM_ALLOWED_DIRS_HERE")
		_, err := env.Parse(out.Bytes())
		require.NoError(t, err)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		withFlag(t, &envTemplateOutput, te.envFile)
		withFlag(t, &envTemplateForce, false)
		cmd, _ := newTestCommand(t)
		require.Error(t, runEnvTemplate(cmd, nil))
	})

	t.Run("writes file", func(t *testing.T) {
		path := filepath.Join(te.dir, "new.env")
		withFlag(t, &envTemplateOutput, path)
		cmd, out := newTestCommand(t)
		require.NoError(t, runEnvTemplate(cmd, nil))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		assert.True(t, strings.HasPrefix(out.String(), "Wrote "))
	})
}

func TestVersionCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	versionCmd.Run(cmd, nil)

	output := out.String()
	for _, want := range []string{"mcpgen version dev", "commit: none", "built:  unknown"} {
		assert.Contains(t, output, want)
	}
}
