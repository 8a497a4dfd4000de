// Package lint runs lint passes through a loaded engine and maps the
// resulting failures to editor diagnostics.
package lint

import (
	"context"

	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
)

// defaultFormatter is the formatter kind passed in the engine options
// record. Both generations accept it.
const defaultFormatter = "json"

// Runner executes lint passes against loaded engine handles.
type Runner struct {
	// Formatter overrides the formatter kind in the engine options.
	// Empty means defaultFormatter.
	Formatter string
}

// Run executes one diagnostics-only lint pass. Fix mode stays disabled:
// fixes are derived from this same failure set, not by asking the engine to
// rewrite and diffing. Engine failures propagate as ExecError, never
// swallowed.
func (r *Runner) Run(ctx context.Context, path, content string, handle *engine.Handle, cfg *config.Configuration) ([]engine.Failure, error) {
	formatter := r.Formatter
	if formatter == "" {
		formatter = defaultFormatter
	}

	opts := engine.Options{
		Formatter: formatter,
		Fix:       false,
	}

	return handle.Lint(ctx, path, content, cfg, opts)
}
