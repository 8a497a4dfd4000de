package engine

import (
	"context"
	"fmt"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/text"
)

// Options is the invocation record both generations accept: the formatter
// kind and whether the engine should run in fix mode.
type Options struct {
	Formatter string
	Fix       bool
}

// driver is the generation-specific invocation strategy. One driver is
// selected when the installation is loaded; structural differences between
// the generations must not leak past it.
type driver interface {
	// lint runs a lint pass and returns failures in the uniform model,
	// with fixes normalized and positions resolved.
	lint(ctx context.Context, path, content string, cfg *config.Configuration, opts Options) ([]Failure, error)

	// parseConfig parses a raw lintrc document in this generation's schema.
	parseConfig(raw []byte, path string) (*config.Configuration, error)
}

// recoverExec converts an evaluator panic into an ExecError.
func recoverExec(engineName, path string, errp *error) {
	if r := recover(); r != nil {
		*errp = &ExecError{
			Engine: engineName,
			Path:   path,
			Err:    fmt.Errorf("%v", r),
		}
	}
}

// legacyDriver drives engines at or below major version 3. Configuration is
// folded directly into the options record and a single construction call
// with file path, text, and options produces results directly.
type legacyDriver struct {
	engineName string
	rules      []compiledRule
}

// legacyOptions is the legacy instantiation record: the shared options plus
// the configuration folded in.
type legacyOptions struct {
	Options
	Configuration *config.Configuration
}

func (d *legacyDriver) lint(ctx context.Context, path, content string, cfg *config.Configuration, opts Options) (failures []Failure, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}
	defer recoverExec(d.engineName, path, &err)

	legacyOpts := legacyOptions{Options: opts, Configuration: cfg}
	raw := d.run(content, legacyOpts)

	idx := text.NewIndex(content)
	failures = make([]Failure, 0, len(raw))
	for _, lf := range raw {
		replacements, err := normalizeLegacyFix(lf.Fix)
		if err != nil {
			return nil, &ExecError{Engine: d.engineName, Path: path, Err: err}
		}
		f := Failure{
			RuleID:       lf.RuleName,
			Message:      lf.Failure,
			StartOffset:  lf.StartOffset,
			EndOffset:    lf.EndOffset,
			Replacements: replacements,
		}
		resolvePositions(&f, idx)
		failures = append(failures, f)
	}
	return failures, nil
}

// run produces legacy-shaped results: fixes are nil, a bare Replacement, or
// a []Replacement, exactly as legacy engines report them.
func (d *legacyDriver) run(content string, opts legacyOptions) []legacyFailure {
	matches := evaluate(d.rules, content, opts.Configuration)

	results := make([]legacyFailure, 0, len(matches))
	for _, m := range matches {
		lf := legacyFailure{
			RuleName:    m.ruleID,
			Failure:     m.message,
			StartOffset: m.start,
			EndOffset:   m.end,
		}
		if m.fix != nil {
			lf.Fix = *m.fix
		}
		results = append(results, lf)
	}
	return results
}

// parseConfig reads the legacy flat schema: rules map to plain booleans.
func (d *legacyDriver) parseConfig(raw []byte, path string) (*config.Configuration, error) {
	var doc struct {
		Rules map[string]bool `yaml:"rules"`
	}
	if err := yamlUnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse legacy config %s: %w", path, err)
	}

	cfg := newConfiguration(path)
	for id, enabled := range doc.Rules {
		cfg.Rules[id] = config.RuleSetting{Enabled: enabled}
	}
	return cfg, nil
}

// modernDriver drives engines above major version 3. The linter value is
// instantiated with the options record and used in a two-step
// lint-then-collect pattern.
type modernDriver struct {
	engineName string
	rules      []compiledRule
}

// modernLinter is the modern engine's linter type: Lint accumulates,
// Results collects.
type modernLinter struct {
	opts    Options
	rules   []compiledRule
	results []modernFailure
}

func newModernLinter(opts Options, rules []compiledRule) *modernLinter {
	return &modernLinter{opts: opts, rules: rules}
}

func (l *modernLinter) Lint(content string, cfg *config.Configuration) {
	for _, m := range evaluate(l.rules, content, cfg) {
		mf := modernFailure{
			Rule:        m.ruleID,
			Text:        m.message,
			StartOffset: m.start,
			EndOffset:   m.end,
		}
		if m.fix != nil {
			mf.Fix = &modernFix{Replacements: []Replacement{*m.fix}}
		}
		l.results = append(l.results, mf)
	}
}

func (l *modernLinter) Results() []modernFailure {
	return l.results
}

func (d *modernDriver) lint(ctx context.Context, path, content string, cfg *config.Configuration, opts Options) (failures []Failure, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}
	defer recoverExec(d.engineName, path, &err)

	linter := newModernLinter(opts, d.rules)
	linter.Lint(content, cfg)
	raw := linter.Results()

	idx := text.NewIndex(content)
	failures = make([]Failure, 0, len(raw))
	for _, mf := range raw {
		f := Failure{
			RuleID:      mf.Rule,
			Message:     mf.Text,
			StartOffset: mf.StartOffset,
			EndOffset:   mf.EndOffset,
		}
		if mf.Fix != nil {
			f.Replacements = mf.Fix.Replacements
		}
		resolvePositions(&f, idx)
		failures = append(failures, f)
	}
	return failures, nil
}

// parseConfig reads the modern structured schema: rules map to setting
// records with enabled flags and options.
func (d *modernDriver) parseConfig(raw []byte, path string) (*config.Configuration, error) {
	var doc struct {
		Rules map[string]struct {
			Enabled bool           `yaml:"enabled"`
			Options map[string]any `yaml:"options"`
		} `yaml:"rules"`
	}
	if err := yamlUnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := newConfiguration(path)
	for id, s := range doc.Rules {
		cfg.Rules[id] = config.RuleSetting{Enabled: s.Enabled, Options: s.Options}
	}
	return cfg, nil
}
