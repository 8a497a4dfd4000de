package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/lint"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Positions are rendered 1-based, the way editors display them.
func (s *Styles) FormatDiagnostic(path string, diag lint.Diagnostic, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Range.Start.Line+1,
		diag.Range.Start.Character+1,
	)

	severity := s.FormatSeverity(diag.Severity)

	ruleDisplay := ""
	if diag.Code != "" {
		ruleDisplay = "  " + s.RuleID.Render("("+diag.Code+")")
	}

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s%s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Range.Start.Character+1))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatSummary renders the one-line result summary for a check run.
func (s *Styles) FormatSummary(files, issues int) string {
	if issues == 0 {
		return s.Success.Render("✓") + fmt.Sprintf(" %d file(s) checked, no issues", files)
	}
	return s.Failure.Render("✗") + fmt.Sprintf(" %d issue(s) in %d file(s)", issues, files)
}
