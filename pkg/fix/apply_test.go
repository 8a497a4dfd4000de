package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintbridge/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.OffsetEdit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			edits:   nil,
			want:    "hello world",
		},
		{
			name:    "single replacement",
			content: "var x = 1;",
			edits: []fix.OffsetEdit{
				{StartOffset: 0, EndOffset: 3, NewText: "let"},
			},
			want: "let x = 1;",
		},
		{
			name:    "insertion",
			content: "hello world",
			edits: []fix.OffsetEdit{
				{StartOffset: 5, EndOffset: 5, NewText: " beautiful"},
			},
			want: "hello beautiful world",
		},
		{
			name:    "deletion",
			content: "hello world",
			edits: []fix.OffsetEdit{
				{StartOffset: 5, EndOffset: 11, NewText: ""},
			},
			want: "hello",
		},
		{
			name:    "multiple non-overlapping edits",
			content: "var a; var b;",
			edits: []fix.OffsetEdit{
				{StartOffset: 0, EndOffset: 3, NewText: "let"},
				{StartOffset: 7, EndOffset: 10, NewText: "let"},
			},
			want: "let a; let b;",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.OffsetEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
				{StartOffset: 2, EndOffset: 4, NewText: "YY"},
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
			},
			want: "XXYYZZ",
		},
		{
			name:    "delete all content",
			content: "hello",
			edits: []fix.OffsetEdit{
				{StartOffset: 0, EndOffset: 5, NewText: ""},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := fix.ApplyEdits([]byte(tt.content), tt.edits)
			assert.Equal(t, tt.want, string(result))
		})
	}
}

func TestApplyEdits_PreservesOriginal(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")
	original := make([]byte, len(content))
	copy(original, content)

	_ = fix.ApplyEdits(content, []fix.OffsetEdit{{StartOffset: 0, EndOffset: 5, NewText: "hi"}})

	assert.Equal(t, original, content)
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.OffsetEdit
		length  int
		wantErr bool
	}{
		{"valid", []fix.OffsetEdit{{StartOffset: 0, EndOffset: 3}}, 10, false},
		{"negative start", []fix.OffsetEdit{{StartOffset: -1, EndOffset: 3}}, 10, true},
		{"end before start", []fix.OffsetEdit{{StartOffset: 5, EndOffset: 3}}, 10, true},
		{"end past content", []fix.OffsetEdit{{StartOffset: 0, EndOffset: 11}}, 10, true},
		{"empty", nil, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tt.edits, tt.length)
			if tt.wantErr {
				require.Error(t, err)

				var vErr *fix.ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareEdits_SortsAndFilters(t *testing.T) {
	t.Parallel()

	edits := []fix.OffsetEdit{
		{StartOffset: 6, EndOffset: 9, NewText: "b"},
		{StartOffset: 0, EndOffset: 3, NewText: "a"},
		{StartOffset: 2, EndOffset: 5, NewText: "c"}, // overlaps the first edit
	}

	accepted, skipped, err := fix.PrepareEdits(edits, 20)
	require.NoError(t, err)

	assert.Equal(t, []fix.OffsetEdit{
		{StartOffset: 0, EndOffset: 3, NewText: "a"},
		{StartOffset: 6, EndOffset: 9, NewText: "b"},
	}, accepted)
	assert.Equal(t, []fix.OffsetEdit{
		{StartOffset: 2, EndOffset: 5, NewText: "c"},
	}, skipped)
}

func TestPrepareEdits_ValidationFailure(t *testing.T) {
	t.Parallel()

	_, _, err := fix.PrepareEdits([]fix.OffsetEdit{{StartOffset: 0, EndOffset: 99}}, 10)
	require.Error(t, err)
}
