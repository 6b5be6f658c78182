package validator

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen bounds values shown in text reports.
const maxValueLen = 50

// Reporter formats and writes validation results.
type Reporter struct {
	out         io.Writer
	format      Format
	includeInfo bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithInfo includes info issues in text output.
func WithInfo(include bool) ReporterOption {
	return func(r *Reporter) {
		r.includeInfo = include
	}
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{out: out, format: format}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}
	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	if result.Issues == nil {
		result = &Result{Issues: []Issue{}}
	}
	data, err := fileutil.MarshalJSON(result)
	if err != nil {
		return errors.Wrap(err, "encoding JSON report")
	}
	_, err = r.out.Write(data)
	return errors.Wrap(err, "writing JSON report")
}

func (r *Reporter) reportText(result *Result) error {
	errs := result.Errors()
	warnings := result.Warnings()
	var infos []Issue
	if r.includeInfo {
		infos = result.Infos()
	}

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Validation passed"))
	} else {
		var summary []string
		if len(errs) > 0 {
			summary = append(summary, color.RedString("%d error(s)", len(errs)))
		}
		if len(warnings) > 0 {
			summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
		}
		verdict := "Validation passed with warnings"
		if len(errs) > 0 {
			verdict = "Validation failed"
		}
		fmt.Fprintf(r.out, "%s: %s\n", verdict, strings.Join(summary, ", "))
	}

	r.printSection("Errors", errs, color.FgRed)
	r.printSection("Warnings", warnings, color.FgYellow)
	r.printSection("Notes", infos, color.FgCyan)
	return nil
}

func (r *Reporter) printSection(title string, issues []Issue, c color.Attribute) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n%s:\n", title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
}

// printIssue writes "  • [server] field: message (context) [value]".
func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()
	dim := color.New(color.FgHiBlack)

	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Server != "" {
		sb.WriteString(color.New(color.Bold).Sprintf("[%s]", i.Server))
		sb.WriteString(" ")
	}
	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		parts := make([]string, 0, len(i.Context))
		for k, v := range i.Context {
			parts = append(parts, k+"="+v)
		}
		slices.Sort(parts)
		sb.WriteString(" ")
		sb.WriteString(dim.Sprintf("(%s)", strings.Join(parts, ", ")))
	}

	if i.Value != nil {
		val := fmt.Sprintf("%v", i.Value)
		if len(val) > maxValueLen {
			val = val[:maxValueLen-3] + "..."
		}
		sb.WriteString(dim.Sprintf(" [%s]", val))
	}

	fmt.Fprintln(r.out, sb.String())
}
