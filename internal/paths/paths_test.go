package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/mcpgen/internal/errors"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestAppDirs(t *testing.T) {
	if got, want := AppConfigDir(), filepath.Join(ConfigHome(), "mcpgen"); got != want {
		t.Errorf("AppConfigDir() = %q, want %q", got, want)
	}
	if got, want := BackupDir(), filepath.Join(DataHome(), "mcpgen", "backups"); got != want {
		t.Errorf("BackupDir() = %q, want %q", got, want)
	}
}

func TestClients(t *testing.T) {
	clients := Clients()
	if len(clients) != 2 {
		t.Fatalf("Clients() returned %d clients, want 2", len(clients))
	}
	for _, c := range clients {
		if !ValidClient(c) {
			t.Errorf("ValidClient(%q) = false for a listed client", c)
		}
		if ClientConfigPath(c) == "" {
			t.Errorf("ClientConfigPath(%q) is empty", c)
		}
		if ClientDisplayName(c) == c {
			t.Errorf("ClientDisplayName(%q) has no display name", c)
		}
	}
	if ValidClient("vscode") {
		t.Error("ValidClient(vscode) = true, want false")
	}
	if ClientConfigPath("vscode") != "" {
		t.Error("ClientConfigPath(vscode) should be empty")
	}
}

func TestClientConfigPath(t *testing.T) {
	tests := []struct {
		client string
		want   string
	}{
		{ClientClaudeDesktop, filepath.Join(ConfigHome(), "Claude", "claude_desktop_config.json")},
		{ClientCursor, filepath.Join(Home(), ".cursor", "mcp.json")},
	}
	for _, tt := range tests {
		t.Run(tt.client, func(t *testing.T) {
			if got := ClientConfigPath(tt.client); got != tt.want {
				t.Errorf("ClientConfigPath(%q) = %q, want %q", tt.client, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := Home()
	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/projects", filepath.Join(home, "projects")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAbsolute(t *testing.T) {
	got, err := Absolute("some/dir/../rel")
	if err != nil {
		t.Fatalf("Absolute() error = %v", err)
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "some", "rel"); got != want {
		t.Errorf("Absolute() = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", dir)
	}
}
