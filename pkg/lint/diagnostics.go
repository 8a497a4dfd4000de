package lint

import (
	"fmt"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/text"
)

// Source tags every diagnostic this service emits.
const Source = "lintbridge"

// Diagnostic is an editor-facing report of a single rule violation.
type Diagnostic struct {
	Range    text.Range      `json:"range"`
	Severity config.Severity `json:"severity"`
	Code     string          `json:"code,omitempty"`
	Source   string          `json:"source"`
	Message  string          `json:"message"`
}

// ToDiagnostics maps failures to diagnostics. Pure, total, and
// order-preserving: no hidden state, same input yields the same output.
//
// Severity is always warning; the engine does not distinguish errors from
// warnings in its reports. Ranges are copied verbatim from the failures'
// already-resolved positions.
func ToDiagnostics(failures []engine.Failure) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(failures))

	for _, f := range failures {
		message := f.Message
		if f.RuleID != "" {
			message = fmt.Sprintf("%s (%s)", f.Message, f.RuleID)
		}

		diagnostics = append(diagnostics, Diagnostic{
			Range:    text.Range{Start: f.Start, End: f.End},
			Severity: config.SeverityWarning,
			Code:     f.RuleID,
			Source:   Source,
			Message:  message,
		})
	}

	return diagnostics
}
