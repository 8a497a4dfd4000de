package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ManifestFileName is the file every engine installation must carry.
	ManifestFileName = "engine.yaml"

	// DefaultEngineName is the engine package resolved when no override is
	// configured.
	DefaultEngineName = "quicklint"
)

// Manifest describes an on-disk engine installation.
type Manifest struct {
	// Name is the engine package name.
	Name string `yaml:"name"`

	// Version is the engine release version. Pre-modern installations may
	// omit it entirely.
	Version string `yaml:"version"`

	// Language is the source language this engine lints (go-enry name,
	// lowercase), e.g. "javascript".
	Language string `yaml:"language"`

	// Rules are the rule definitions shipped with this installation.
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef defines a single pattern rule shipped by an engine.
type RuleDef struct {
	// ID is the rule identifier, e.g. "no-var-keyword".
	ID string `yaml:"id"`

	// Message is the violation message reported for each match.
	Message string `yaml:"message"`

	// Pattern is the regular expression matched against the linted text.
	Pattern string `yaml:"pattern"`

	// Replace, when set, is the fix template for the matched span. It may
	// reference capture groups ($1, ${name}). Nil means the rule has no fix.
	Replace *string `yaml:"replace,omitempty"`
}

// LoadManifest reads and parses the engine manifest in dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse engine manifest %s: %w", path, err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("engine manifest %s has no name", path)
	}

	return &m, nil
}

// manifestExists reports whether dir contains an engine manifest.
func manifestExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFileName))
	return err == nil && !info.IsDir()
}
