package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an invalid offset edit.
type ValidationError struct {
	Edit    OffsetEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that all edits have valid ranges for the given
// content length. Returns nil if all edits are valid, or the first
// validation error encountered.
func ValidateEdits(edits []OffsetEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.StartOffset < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.EndOffset < edit.StartOffset {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.EndOffset > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset, for a
// deterministic application order.
func SortEdits(edits []OffsetEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// FilterConflicts filters out overlapping edits from a sorted slice.
// Returns the non-conflicting edits (accepted) and the conflicting edits
// (skipped). Greedy: earlier edits by start position take precedence.
func FilterConflicts(edits []OffsetEdit) ([]OffsetEdit, []OffsetEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted := make([]OffsetEdit, 0, len(edits))
	skipped := make([]OffsetEdit, 0)

	accepted = append(accepted, edits[0])
	lastAcceptedEnd := edits[0].EndOffset

	for i := 1; i < len(edits); i++ {
		edit := edits[i]
		if edit.StartOffset >= lastAcceptedEnd {
			accepted = append(accepted, edit)
			lastAcceptedEnd = edit.EndOffset
		} else {
			skipped = append(skipped, edit)
		}
	}

	return accepted, skipped
}

// PrepareEdits validates, sorts, and conflict-filters edits for in-place
// application. Returns (accepted, skipped, error); error only for
// validation failures, never for conflicts.
func PrepareEdits(edits []OffsetEdit, contentLen int) ([]OffsetEdit, []OffsetEdit, error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := make([]OffsetEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped := FilterConflicts(sorted)
	return accepted, skipped, nil
}
