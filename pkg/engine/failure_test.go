package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLegacyFix(t *testing.T) {
	t.Parallel()

	single := Replacement{Start: 0, End: 3, Text: "let"}
	list := []Replacement{
		{Start: 0, End: 3, Text: "let"},
		{Start: 10, End: 12, Text: ""},
	}

	tests := []struct {
		name    string
		fix     any
		want    []Replacement
		wantErr bool
	}{
		{"absent fix", nil, nil, false},
		{"single replacement", single, []Replacement{single}, false},
		{"pointer to replacement", &single, []Replacement{single}, false},
		{"nil pointer", (*Replacement)(nil), nil, false},
		{"replacement list used as-is", list, list, false},
		{"unknown shape", 42, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalizeLegacyFix(tt.fix)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFailure_HasFix(t *testing.T) {
	t.Parallel()

	withFix := Failure{Replacements: []Replacement{{Start: 0, End: 1, Text: "x"}}}
	withoutFix := Failure{}

	assert.True(t, withFix.HasFix())
	assert.False(t, withoutFix.HasFix())
}
