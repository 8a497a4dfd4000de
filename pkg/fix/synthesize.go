package fix

import (
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/text"
)

// FixResult is the response to a fix request: the edits plus the document
// version captured when the lint ran. The editor compares the version
// against its live buffer and refuses to apply stale edits; the version is
// reported unmodified even if the buffer has moved on.
type FixResult struct {
	DocumentVersion int        `json:"documentVersion"`
	Edits           []TextEdit `json:"edits"`
}

// Synthesize converts the failures' replacements into position-based text
// edits against the snapshot text that was linted, not the live buffer.
//
// Edits from different failures are concatenated in failure order with no
// sorting or overlap resolution: when two violations produce overlapping
// replacements the outcome is undefined. Known limitation, kept for
// compatibility with how editors already consume this response.
func Synthesize(failures []engine.Failure, snapshotText string, version int) FixResult {
	result := FixResult{
		DocumentVersion: version,
		Edits:           []TextEdit{},
	}

	idx := text.NewIndex(snapshotText)

	for _, f := range failures {
		for _, r := range f.Replacements {
			result.Edits = append(result.Edits, TextEdit{
				Range:   idx.RangeFor(r.Start, r.End),
				NewText: r.Text,
			})
		}
	}

	return result
}

// OffsetEdits flattens the failures' replacements into offset edits,
// preserving failure order. Used by the in-place fix path, which validates
// and conflict-filters before applying.
func OffsetEdits(failures []engine.Failure) []OffsetEdit {
	var edits []OffsetEdit
	for _, f := range failures {
		for _, r := range f.Replacements {
			edits = append(edits, OffsetEdit{
				StartOffset: r.Start,
				EndOffset:   r.End,
				NewText:     r.Text,
			})
		}
	}
	return edits
}
