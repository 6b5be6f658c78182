package validator

import (
	"encoding/json"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "registry parse error",
			issue: Issue{
				Severity: SeverityError,
				Server:   "github",
				Field:    "server_type",
				Message:  `unknown archetype "remote"`,
			},
			want: `error: server "github": field "server_type": unknown archetype "remote"`,
		},
		{
			name: "env format error with offending line",
			issue: Issue{
				Severity: SeverityError,
				Message:  "expected KEY=VALUE",
				Value:    "cat <<EOF",
			},
			want: "error: expected KEY=VALUE (got cat <<EOF)",
		},
		{
			name: "placeholder warning",
			issue: Issue{
				Severity: SeverityWarning,
				Server:   "github",
				Field:    "cmd",
				Message:  "GITHUB_TOKEN has no real value",
			},
			want: `warning: server "github": field "cmd": GITHUB_TOKEN has no real value`,
		},
		{
			name:  "note without server or field",
			issue: Issue{Severity: SeverityInfo, Message: "no .env file"},
			want:  "info: no .env file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.issue.Error(); got != tt.want {
				t.Errorf("Issue.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_BySeverity(t *testing.T) {
	r := &Result{}
	if r.HasErrors() || r.HasWarnings() {
		t.Fatal("empty result reports issues")
	}

	r.Add(Issue{Severity: SeverityWarning, Server: "filesystem", Message: "no directories mounted"})
	r.Add(Issue{Severity: SeverityInfo, Message: "unused key"})
	r.Add(Issue{Severity: SeverityWarning, Server: "github", Message: "placeholder"})

	if r.HasErrors() {
		t.Error("HasErrors() = true, want false")
	}
	if !r.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}
	warnings := r.Warnings()
	if len(warnings) != 2 || warnings[0].Server != "filesystem" || warnings[1].Server != "github" {
		t.Errorf("Warnings() = %+v, want filesystem then github", warnings)
	}
	if len(r.Infos()) != 1 {
		t.Errorf("Infos() has %d issues, want 1", len(r.Infos()))
	}

	r.Add(Issue{Severity: SeverityError, Message: "registry parse error"})
	if !r.HasErrors() || len(r.Errors()) != 1 {
		t.Errorf("Errors() = %+v, want one error", r.Errors())
	}
}

func TestResult_NilSafety(t *testing.T) {
	var r *Result
	if r.HasErrors() || r.HasWarnings() {
		t.Error("nil result reports issues")
	}
	if r.Errors() != nil || r.Warnings() != nil || r.Infos() != nil {
		t.Error("nil result returns non-nil slices")
	}
}

func TestSeverity_JSON(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v) error: %v", s, err)
		}
		if want := `"` + s.String() + `"`; string(data) != want {
			t.Errorf("Marshal(%v) = %s, want %s", s, data, want)
		}
		var got Severity
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", data, err)
		}
		if got != s {
			t.Errorf("Unmarshal(%s) = %v, want %v", data, got, s)
		}
	}

	var s Severity
	if err := json.Unmarshal([]byte(`"fatal"`), &s); err == nil {
		t.Error("expected error for unknown severity")
	}
}
