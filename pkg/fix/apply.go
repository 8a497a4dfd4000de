package fix

import "bytes"

// ApplyEdits applies a sorted, validated slice of offset edits to content.
// Edits must be prepared with PrepareEdits before calling.
// Returns the modified content; the input is not mutated.
func ApplyEdits(content []byte, edits []OffsetEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	// Estimate result size.
	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
