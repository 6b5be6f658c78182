package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestReporter_Report(t *testing.T) {
	result := &Result{}
	result.Add(Issue{Severity: SeverityError, Field: "name", Message: "is required"})
	result.Add(Issue{Severity: SeverityWarning, Server: "github", Field: "cmd", Message: "placeholder emitted", Value: "some val"})
	result.Add(Issue{Severity: SeverityInfo, Field: "EXTRA", Message: "not declared by any server"})
	result.Issues[0].Context = map[string]string{"file": "servers.yaml"}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Validation failed",
			"1 error(s)",
			"1 warning(s)",
			"name: is required",
			"(file=servers.yaml)",
			"[github] cmd: placeholder emitted",
			"[some val]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
		if strings.Contains(output, "EXTRA") {
			t.Error("info issues should be hidden by default")
		}
	})

	t.Run("text format with info", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText, WithInfo(true)).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Notes:") || !strings.Contains(buf.String(), "EXTRA") {
			t.Errorf("output missing notes:\n%s", buf.String())
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatJSON).Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}
		if len(decoded.Issues) != 3 {
			t.Errorf("decoded issues count = %d, want 3", len(decoded.Issues))
		}
		if decoded.Issues[1].Severity != SeverityWarning || decoded.Issues[1].Server != "github" {
			t.Errorf("second issue = %+v", decoded.Issues[1])
		}
		if !strings.Contains(buf.String(), `"severity": "error"`) {
			t.Errorf("severity should be encoded by name:\n%s", buf.String())
		}
	})

	t.Run("warnings only", func(t *testing.T) {
		r := &Result{}
		r.Add(Issue{Severity: SeverityWarning, Field: "volumes", Message: "ignored"})
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(r); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed with warnings") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("empty result", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Validation passed") {
			t.Error("output missing success message")
		}

		buf.Reset()
		if err := NewReporter(&buf, FormatJSON).Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), `"issues": []`) {
			t.Errorf("empty JSON report = %s", buf.String())
		}
	})
}

func TestReporter_TruncatesValues(t *testing.T) {
	r := &Result{}
	r.Add(Issue{Severity: SeverityWarning, Field: "f", Message: "long", Value: strings.Repeat("x", 80)})
	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText).Report(r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), strings.Repeat("x", 47)+"...") {
		t.Errorf("value not truncated:\n%s", buf.String())
	}
}
