// Package engine locates, loads, and invokes quicklint engine
// installations. Two incompatible engine API generations exist in the wild;
// this package hides the difference behind one uniform failure model.
package engine

import (
	"fmt"

	"github.com/yaklabco/lintbridge/pkg/text"
)

// Replacement is a contiguous [Start, End) span in the original linted text
// plus replacement text. Empty Text denotes deletion.
type Replacement struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`
}

// Failure is one rule violation in the uniform model shared by both engine
// generations. Offsets index the linted text; Start and End positions are
// resolved against that same text by the driver before the failure leaves
// this package.
type Failure struct {
	// RuleID identifies the violated rule. May be empty for engine-level
	// findings.
	RuleID string

	// Message is the human-readable description of the violation.
	Message string

	// StartOffset and EndOffset delimit the violation span [start, end)
	// in the linted text.
	StartOffset int
	EndOffset   int

	// Start and End are the offsets resolved to line/character positions.
	Start text.Position
	End   text.Position

	// Replacements is the canonical fix for this failure, normalized from
	// whichever shape the engine generation reported. Nil when the rule
	// offers no fix.
	Replacements []Replacement
}

// HasFix reports whether the failure carries a fix.
func (f *Failure) HasFix() bool {
	return len(f.Replacements) > 0
}

// legacyFailure is the result shape produced by legacy (≤ 3.x) engines.
// Fix is absent (nil), a single Replacement, or a []Replacement.
type legacyFailure struct {
	RuleName    string
	Failure     string
	StartOffset int
	EndOffset   int
	Fix         any
}

// modernFix is the fix shape produced by modern engines: always a
// replacements list, possibly empty.
type modernFix struct {
	Replacements []Replacement
}

// modernFailure is the result shape produced by modern engines.
type modernFailure struct {
	Rule        string
	Text        string
	StartOffset int
	EndOffset   int
	Fix         *modernFix
}

// normalizeLegacyFix converts a legacy fix value into the canonical
// replacement list. Legacy engines report either nothing, one replacement,
// or an ordered list; the ambiguity stops here.
func normalizeLegacyFix(fix any) ([]Replacement, error) {
	switch v := fix.(type) {
	case nil:
		return nil, nil
	case Replacement:
		return []Replacement{v}, nil
	case *Replacement:
		if v == nil {
			return nil, nil
		}
		return []Replacement{*v}, nil
	case []Replacement:
		return v, nil
	default:
		return nil, fmt.Errorf("unrecognized legacy fix shape %T", fix)
	}
}

// resolvePositions fills in the line/character positions of a failure from
// its offsets.
func resolvePositions(f *Failure, idx *text.Index) {
	f.Start = idx.PositionFor(f.StartOffset)
	f.End = idx.PositionFor(f.EndOffset)
}
