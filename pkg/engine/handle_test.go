package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/text"
)

// writeEngine writes an engine installation into dir and returns dir.
func writeEngine(t *testing.T, dir, version string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))

	manifest := "name: quicklint\nversion: \"" + version + "\"\nlanguage: javascript\n" + `rules:
  - id: no-var-keyword
    message: use let or const instead of var
    pattern: \bvar\b
    replace: let
  - id: no-trailing-semi-space
    message: no space before semicolon
    pattern: ' +;'
    replace: ;
  - id: no-console
    message: no console calls
    pattern: console\.\w+
`
	if version == "" {
		// Pre-modern installs omit the version field entirely.
		manifest = "name: quicklint\nlanguage: javascript\n" + `rules:
  - id: no-var-keyword
    message: use let or const instead of var
    pattern: \bvar\b
    replace: let
`
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, engine.ManifestFileName), []byte(manifest), 0o644))
	return dir
}

// testConfig returns a configuration with the given rules enabled.
func testConfig(ids ...string) *config.Configuration {
	cfg := &config.Configuration{Rules: make(map[string]config.RuleSetting)}
	for _, id := range ids {
		cfg.Rules[id] = config.RuleSetting{Enabled: true}
	}
	return cfg
}

func TestLoad_GenerationDetectedOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		want    engine.Generation
	}{
		{"legacy version", "3.15.1", engine.GenerationLegacy},
		{"missing version", "", engine.GenerationLegacy},
		{"modern version", "6.1.0", engine.GenerationModern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), tt.version)

			h, err := engine.Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Generation)
			assert.Equal(t, "quicklint", h.Manifest.Name)
			assert.Equal(t, dir, h.Root)
		})
	}
}

func TestLoad_BadRulePattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := `name: quicklint
version: "6.0.0"
rules:
  - id: broken
    message: broken rule
    pattern: '['
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, engine.ManifestFileName), []byte(manifest), 0o644))

	_, err := engine.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestHandle_Lint_BothGenerations(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"3.15.1", "6.1.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), version)
			h, err := engine.Load(dir)
			require.NoError(t, err)

			content := "var x = 1;"
			failures, err := h.Lint(context.Background(), "/src/a.js", content,
				testConfig("no-var-keyword"), engine.Options{Formatter: "json"})
			require.NoError(t, err)
			require.Len(t, failures, 1)

			f := failures[0]
			assert.Equal(t, "no-var-keyword", f.RuleID)
			assert.Equal(t, "use let or const instead of var", f.Message)
			assert.Equal(t, 0, f.StartOffset)
			assert.Equal(t, 3, f.EndOffset)
			assert.Equal(t, text.Position{Line: 0, Character: 0}, f.Start)
			assert.Equal(t, text.Position{Line: 0, Character: 3}, f.End)

			// Fix normalized to a canonical replacement list in both shapes.
			require.True(t, f.HasFix())
			require.Len(t, f.Replacements, 1)
			assert.Equal(t, engine.Replacement{Start: 0, End: 3, Text: "let"}, f.Replacements[0])
		})
	}
}

func TestHandle_Lint_DisabledRulesProduceNothing(t *testing.T) {
	t.Parallel()

	dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.1.0")
	h, err := engine.Load(dir)
	require.NoError(t, err)

	failures, err := h.Lint(context.Background(), "/src/a.js", "var x = 1;",
		testConfig( /* nothing enabled */ ), engine.Options{})
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestHandle_Lint_MultilinePositions(t *testing.T) {
	t.Parallel()

	dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.1.0")
	h, err := engine.Load(dir)
	require.NoError(t, err)

	content := "let a = 1;\nvar b = 2;\n"
	failures, err := h.Lint(context.Background(), "/src/a.js", content,
		testConfig("no-var-keyword"), engine.Options{})
	require.NoError(t, err)
	require.Len(t, failures, 1)

	assert.Equal(t, text.Position{Line: 1, Character: 0}, failures[0].Start)
	assert.Equal(t, text.Position{Line: 1, Character: 3}, failures[0].End)
}

func TestHandle_Lint_RuleWithoutFix(t *testing.T) {
	t.Parallel()

	dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.1.0")
	h, err := engine.Load(dir)
	require.NoError(t, err)

	failures, err := h.Lint(context.Background(), "/src/a.js", "console.log(1)",
		testConfig("no-console"), engine.Options{})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.False(t, failures[0].HasFix())
}

func TestHandle_Lint_EvaluatorFaultBecomesExecError(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"3.15.1", "6.1.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), version)
			h, err := engine.Load(dir)
			require.NoError(t, err)

			cfg := &config.Configuration{Rules: map[string]config.RuleSetting{
				"no-var-keyword": {
					Enabled: true,
					Options: map[string]any{"pattern": "["},
				},
			}}

			_, err = h.Lint(context.Background(), "/src/a.js", "var x = 1;", cfg, engine.Options{})
			require.Error(t, err)

			var execErr *engine.ExecError
			require.ErrorAs(t, err, &execErr)
			assert.Equal(t, "quicklint", execErr.Engine)
			assert.Equal(t, "/src/a.js", execErr.Path)
		})
	}
}

func TestHandle_Lint_ContextCancelled(t *testing.T) {
	t.Parallel()

	dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.1.0")
	h, err := engine.Load(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Lint(ctx, "/src/a.js", "var x = 1;", testConfig("no-var-keyword"), engine.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestHandle_LoadConfiguration_GenerationSchemas(t *testing.T) {
	t.Parallel()

	t.Run("legacy flat schema", func(t *testing.T) {
		t.Parallel()

		dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "3.0.0")
		h, err := engine.Load(dir)
		require.NoError(t, err)

		cfgDir := t.TempDir()
		cfgPath := filepath.Join(cfgDir, ".lintrc.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("rules:\n  no-var-keyword: true\n  no-console: false\n"), 0o644))

		cfg, err := h.LoadConfiguration(cfgPath)
		require.NoError(t, err)
		assert.Equal(t, cfgDir, cfg.Dir)
		assert.True(t, cfg.RuleEnabled("no-var-keyword"))
		assert.False(t, cfg.RuleEnabled("no-console"))
	})

	t.Run("modern structured schema", func(t *testing.T) {
		t.Parallel()

		dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.0.0")
		h, err := engine.Load(dir)
		require.NoError(t, err)

		cfgDir := t.TempDir()
		cfgPath := filepath.Join(cfgDir, ".lintrc.yaml")
		doc := `rules:
  no-var-keyword:
    enabled: true
    options:
      pattern: \bvar\b
  no-console:
    enabled: false
`
		require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

		cfg, err := h.LoadConfiguration(cfgPath)
		require.NoError(t, err)
		assert.True(t, cfg.RuleEnabled("no-var-keyword"))
		assert.Equal(t, `\bvar\b`, cfg.Rules["no-var-keyword"].Options["pattern"])
		assert.False(t, cfg.RuleEnabled("no-console"))
	})

	t.Run("empty config file", func(t *testing.T) {
		t.Parallel()

		dir := writeEngine(t, filepath.Join(t.TempDir(), "quicklint"), "6.0.0")
		h, err := engine.Load(dir)
		require.NoError(t, err)

		cfgPath := filepath.Join(t.TempDir(), ".lintrc.yaml")
		require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))

		cfg, err := h.LoadConfiguration(cfgPath)
		require.NoError(t, err)
		assert.Empty(t, cfg.EnabledRules())
	})
}
