package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/fix"
	"github.com/yaklabco/lintbridge/pkg/text"
)

func TestSynthesize_SingleReplacement(t *testing.T) {
	t.Parallel()

	content := "var x = 1;"
	failures := []engine.Failure{
		{
			RuleID:       "no-var-keyword",
			Replacements: []engine.Replacement{{Start: 0, End: 3, Text: "let"}},
		},
	}

	result := fix.Synthesize(failures, content, 7)

	assert.Equal(t, 7, result.DocumentVersion)
	require.Len(t, result.Edits, 1)
	assert.Equal(t, "let", result.Edits[0].NewText)
	assert.Equal(t, text.Range{
		Start: text.Position{Line: 0, Character: 0},
		End:   text.Position{Line: 0, Character: 3},
	}, result.Edits[0].Range)
}

func TestSynthesize_RoundTripsOntoSnapshot(t *testing.T) {
	t.Parallel()

	// The synthesized range, mapped back onto the snapshot, must span
	// exactly the replaced characters.
	content := "let a = 1;\nvar b = 2;\nvar c = 3;\n"
	idx := text.NewIndex(content)

	spans := []struct{ start, end int }{
		{11, 14}, // second-line var
		{22, 25}, // third-line var
	}

	var failures []engine.Failure
	for _, s := range spans {
		failures = append(failures, engine.Failure{
			Replacements: []engine.Replacement{{Start: s.start, End: s.end, Text: "let"}},
		})
	}

	result := fix.Synthesize(failures, content, 1)
	require.Len(t, result.Edits, len(spans))

	for i, edit := range result.Edits {
		assert.Equal(t, content[spans[i].start:spans[i].end], idx.Slice(edit.Range))
	}
}

func TestSynthesize_FailureOrderPreserved(t *testing.T) {
	t.Parallel()

	// Edits are concatenated in failure order even when that is not text
	// order; no sorting or overlap resolution happens here.
	content := "abcdef"
	failures := []engine.Failure{
		{Replacements: []engine.Replacement{{Start: 4, End: 5, Text: "Y"}}},
		{Replacements: []engine.Replacement{{Start: 0, End: 1, Text: "X"}}},
	}

	result := fix.Synthesize(failures, content, 1)
	require.Len(t, result.Edits, 2)
	assert.Equal(t, "Y", result.Edits[0].NewText)
	assert.Equal(t, "X", result.Edits[1].NewText)
}

func TestSynthesize_SkipsFailuresWithoutFix(t *testing.T) {
	t.Parallel()

	failures := []engine.Failure{
		{RuleID: "no-console"},
		{Replacements: []engine.Replacement{{Start: 0, End: 1, Text: "x"}}},
		{RuleID: "no-any"},
	}

	result := fix.Synthesize(failures, "abc", 2)
	require.Len(t, result.Edits, 1)
}

func TestSynthesize_MultiReplacementFailure(t *testing.T) {
	t.Parallel()

	failures := []engine.Failure{
		{Replacements: []engine.Replacement{
			{Start: 0, End: 1, Text: ""},
			{Start: 2, End: 3, Text: ""},
		}},
	}

	result := fix.Synthesize(failures, "abc", 1)
	assert.Len(t, result.Edits, 2)
}

func TestSynthesize_EmptyFailures(t *testing.T) {
	t.Parallel()

	result := fix.Synthesize(nil, "abc", 3)
	assert.Equal(t, 3, result.DocumentVersion)
	assert.NotNil(t, result.Edits)
	assert.Empty(t, result.Edits)
}

func TestOffsetEdits(t *testing.T) {
	t.Parallel()

	failures := []engine.Failure{
		{Replacements: []engine.Replacement{{Start: 4, End: 5, Text: "y"}}},
		{Replacements: []engine.Replacement{{Start: 0, End: 3, Text: "let"}}},
	}

	edits := fix.OffsetEdits(failures)
	assert.Equal(t, []fix.OffsetEdit{
		{StartOffset: 4, EndOffset: 5, NewText: "y"},
		{StartOffset: 0, EndOffset: 3, NewText: "let"},
	}, edits)
}
