package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/lintbridge/pkg/config"
)

// Handle is a loaded engine installation. The generation is detected once
// here and reused for every call; it is never re-derived per file.
type Handle struct {
	// Root is the installation directory the engine was loaded from.
	Root string

	// Manifest is the parsed engine manifest.
	Manifest *Manifest

	// Generation is the API generation detected from the manifest version.
	Generation Generation

	driver driver
}

// Load reads the engine installation at dir, detects its API generation,
// and binds the matching driver.
func Load(dir string) (*Handle, error) {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	rules, err := compileRules(manifest.Rules)
	if err != nil {
		return nil, fmt.Errorf("load engine %s: %w", manifest.Name, err)
	}

	h := &Handle{
		Root:       dir,
		Manifest:   manifest,
		Generation: DetectGeneration(manifest.Version),
	}

	switch h.Generation {
	case GenerationModern:
		h.driver = &modernDriver{engineName: manifest.Name, rules: rules}
	default:
		h.driver = &legacyDriver{engineName: manifest.Name, rules: rules}
	}

	return h, nil
}

// Lint runs one lint pass over content through the generation-specific
// driver. Failures come back in the uniform model: canonical replacement
// lists and resolved line/character positions.
func (h *Handle) Lint(ctx context.Context, path, content string, cfg *config.Configuration, opts Options) ([]Failure, error) {
	return h.driver.lint(ctx, path, content, cfg, opts)
}

// LoadConfiguration parses the lintrc file at path using this generation's
// schema and associates the result with the file's directory.
func (h *Handle) LoadConfiguration(path string) (*config.Configuration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return h.driver.parseConfig(raw, path)
}

// newConfiguration returns an empty Configuration bound to the directory of
// the config file at path.
func newConfiguration(path string) *config.Configuration {
	return &config.Configuration{
		Path:  path,
		Dir:   filepath.Dir(path),
		Rules: make(map[string]config.RuleSetting),
	}
}

// yamlUnmarshalStrict decodes YAML while rejecting unknown fields, so a
// config written for the other generation's schema fails loudly instead of
// half-loading.
func yamlUnmarshalStrict(raw []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
