// Package fix converts lint failures into text edits: position-based edits
// for editors, and validated offset edits for in-place application.
package fix

import "github.com/yaklabco/lintbridge/pkg/text"

// TextEdit is an editor-facing instruction to replace a range of text.
type TextEdit struct {
	Range   text.Range `json:"range"`
	NewText string     `json:"newText"`
}

// OffsetEdit is a single text replacement expressed in byte offsets,
// used when applying fixes directly to file content.
type OffsetEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}
