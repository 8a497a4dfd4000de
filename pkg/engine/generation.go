package engine

import (
	"strconv"
	"strings"
)

// Generation classifies an engine installation's API shape.
// It is detected once at load time and never re-derived per call.
type Generation string

const (
	// GenerationLegacy covers engines at or below major version 3, which
	// expose the single-shot lint API and loosely shaped fixes.
	GenerationLegacy Generation = "legacy"

	// GenerationModern covers engines above major version 3, which expose
	// the two-step Linter API and structured replacement lists.
	GenerationModern Generation = "modern"
)

// legacyMajorCeiling is the highest major version using the legacy API.
const legacyMajorCeiling = 3

// DetectGeneration classifies an engine version string.
// Detection is best-effort: a missing or unparseable version is treated as
// a pre-modern release and classified legacy.
func DetectGeneration(version string) Generation {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" {
		return GenerationLegacy
	}

	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return GenerationLegacy
	}

	if n <= legacyMajorCeiling {
		return GenerationLegacy
	}
	return GenerationModern
}
