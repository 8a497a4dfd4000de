package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintbridge/internal/configloader"
	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/internal/ui/pretty"
	"github.com/yaklabco/lintbridge/pkg/config"
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/langdetect"
	"github.com/yaklabco/lintbridge/pkg/lint"
	"github.com/yaklabco/lintbridge/pkg/text"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type checkFlags struct {
	noContext bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Lint files and report diagnostics",
		Long: `Lint the given files through their resolved engine and print the
diagnostics. The engine is resolved per file: the nearest lint_modules
directory wins, then the user and system package roots.

Examples:
  lintbridge check src/a.js            # Check one file
  lintbridge check src/*.js            # Check several
  lintbridge check --no-context a.js   # Hide source context`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	resolver := engine.NewResolver()
	runner := &lint.Runner{}
	out := cmd.OutOrStdout()
	width := pretty.TerminalWidth(out, 120)

	totalIssues := 0
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		handle, cfg, err := resolveFor(ctx, resolver, path)
		if err != nil {
			return errors.Join(fmt.Errorf("resolve %s", path), err)
		}

		if !langdetect.Matches(handle.Manifest.Language, path, content) {
			logger.Debug("skipping file outside engine language",
				logging.FieldPath, path,
				logging.FieldLanguage, handle.Manifest.Language)
			continue
		}

		failures, err := runner.Run(ctx, path, string(content), handle, cfg)
		if err != nil {
			return errors.Join(errors.New("lint run failed"), err)
		}

		diagnostics := lint.ToDiagnostics(failures)
		if len(diagnostics) > 0 {
			fmt.Fprintln(out, styles.FormatFileHeader(path, len(diagnostics)))

			idx := text.NewIndex(string(content))
			for _, d := range diagnostics {
				sourceLine := ""
				if !flags.noContext {
					sourceLine = idx.LineContent(d.Range.Start.Line)
					if len(sourceLine) > width {
						sourceLine = sourceLine[:width]
					}
				}
				fmt.Fprint(out, styles.FormatDiagnostic(path, d, sourceLine))
			}
		}
		totalIssues += len(diagnostics)
	}

	fmt.Fprintln(out, styles.FormatSummary(len(args), totalIssues))

	if totalIssues > 0 {
		return ErrLintIssuesFound
	}
	return nil
}

// resolveFor locates the engine and configuration governing path.
func resolveFor(ctx context.Context, resolver *engine.Resolver, path string) (*engine.Handle, *config.Configuration, error) {
	handle, err := resolver.Resolve(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := configloader.Resolve(path, handle)
	if err != nil {
		return nil, nil, err
	}

	return handle, cfg, nil
}
