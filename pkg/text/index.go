package text

import (
	"sort"
	"strings"
)

// lineInfo records the span of a single line within the text.
type lineInfo struct {
	// startOffset is the offset of the first character of the line.
	startOffset int

	// newlineStart is the offset where the line's newline sequence begins
	// (equal to endOffset for the final line without a trailing newline).
	newlineStart int

	// endOffset is the offset one past the newline, i.e. the start of the
	// next line.
	endOffset int
}

// Index maps between byte offsets and line/character positions for one
// immutable text snapshot. Build it once per linted document; positions it
// produces are only meaningful against that same snapshot.
type Index struct {
	text  string
	lines []lineInfo
}

// NewIndex builds an Index over the given text.
// It handles both LF and CRLF line endings.
func NewIndex(content string) *Index {
	idx := &Index{text: content}

	lineStart := 0
	for i := 0; i < len(content); i++ {
		if content[i] != '\n' {
			continue
		}
		newlineStart := i
		if i > 0 && content[i-1] == '\r' {
			newlineStart = i - 1
		}
		idx.lines = append(idx.lines, lineInfo{
			startOffset:  lineStart,
			newlineStart: newlineStart,
			endOffset:    i + 1,
		})
		lineStart = i + 1
	}

	// Last line, with or without a trailing newline. An empty text still
	// gets one empty line so offset 0 maps to (0, 0).
	idx.lines = append(idx.lines, lineInfo{
		startOffset:  lineStart,
		newlineStart: len(content),
		endOffset:    len(content),
	})

	return idx
}

// Len returns the length of the indexed text.
func (x *Index) Len() int {
	return len(x.text)
}

// Text returns the indexed text.
func (x *Index) Text() string {
	return x.text
}

// LineCount returns the number of lines in the text.
func (x *Index) LineCount() int {
	return len(x.lines)
}

// PositionFor converts a byte offset to a 0-based Position.
// Offsets past the end of the text clamp to the end of the last line;
// negative offsets clamp to the start.
func (x *Index) PositionFor(offset int) Position {
	if offset <= 0 {
		return Position{Line: 0, Character: 0}
	}
	if offset > len(x.text) {
		offset = len(x.text)
	}

	// Binary search for the line whose end lies past the offset.
	lineIdx := sort.Search(len(x.lines), func(i int) bool {
		return x.lines[i].endOffset > offset
	})
	if lineIdx >= len(x.lines) {
		lineIdx = len(x.lines) - 1
	}

	return Position{
		Line:      lineIdx,
		Character: offset - x.lines[lineIdx].startOffset,
	}
}

// RangeFor converts a half-open [start, end) offset span to a Range.
func (x *Index) RangeFor(start, end int) Range {
	return Range{
		Start: x.PositionFor(start),
		End:   x.PositionFor(end),
	}
}

// OffsetFor converts a 0-based Position back to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (x *Index) OffsetFor(pos Position) (int, bool) {
	if pos.Line < 0 || pos.Line >= len(x.lines) || pos.Character < 0 {
		return 0, false
	}

	line := x.lines[pos.Line]
	offset := line.startOffset + pos.Character
	if offset > line.endOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns the content of a 0-based line, excluding the newline.
// Returns "" if the line number is out of range.
func (x *Index) LineContent(line int) string {
	if line < 0 || line >= len(x.lines) {
		return ""
	}
	info := x.lines[line]
	return x.text[info.startOffset:info.newlineStart]
}

// Slice returns the text covered by a Range, or "" if the range does not
// map back onto this snapshot.
func (x *Index) Slice(r Range) string {
	start, ok := x.OffsetFor(r.Start)
	if !ok {
		return ""
	}
	end, ok := x.OffsetFor(r.End)
	if !ok || end < start {
		return ""
	}
	return x.text[start:end]
}

// CountLines returns the number of lines a string would occupy.
func CountLines(s string) int {
	return strings.Count(s, "\n") + 1
}
