package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintbridge/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{"javascript by extension", "a.js", "var x = 1;", "javascript"},
		{"typescript by extension", "a.ts", "const x: number = 1;", "typescript"},
		{"go by extension", "main.go", "package main", "go"},
		{"python by shebang", "script", "#!/usr/bin/env python\nprint(1)\n", "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Detect(tt.filename, []byte(tt.content)))
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		filename string
		content  string
		want     bool
	}{
		{"exact match", "javascript", "a.js", "var x = 1;", true},
		{"mismatch", "javascript", "main.go", "package main", false},
		{"no declared language accepts all", "", "main.go", "package main", true},
		{"typescript engine accepts javascript", "typescript", "a.js", "var x = 1;", true},
		{"case insensitive", "JavaScript", "a.js", "var x = 1;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Matches(tt.declared, tt.filename, []byte(tt.content)))
		})
	}
}
