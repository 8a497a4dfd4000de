// Package langdetect decides whether a document is written in the language
// an engine targets. Engines lint exactly one source language; requests for
// anything else are skipped rather than fed to the wrong rule set.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Detect returns the lowercase language name for a file, preferring the
// filename extension and falling back to content classification.
// Returns "" when detection fails.
func Detect(filename string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(filename); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	lang := enry.GetLanguage(filename, content)
	if lang == enry.OtherLanguage {
		return ""
	}
	return normalize(lang)
}

// Matches reports whether the file is written in the engine's declared
// target language. An engine that declares no language accepts everything;
// an undetectable file is given the benefit of the doubt.
func Matches(declared, filename string, content []byte) bool {
	if declared == "" {
		return true
	}

	detected := Detect(filename, content)
	if detected == "" {
		return true
	}

	declared = normalize(declared)

	// TypeScript engines lint JavaScript files too, matching how their
	// ecosystems ship one engine for both.
	if declared == "typescript" && detected == "javascript" {
		return true
	}

	return detected == declared
}

// normalize lowercases go-enry language names for comparison.
func normalize(lang string) string {
	return strings.ToLower(lang)
}
