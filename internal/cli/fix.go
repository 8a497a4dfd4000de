package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/pkg/engine"
	"github.com/yaklabco/lintbridge/pkg/fix"
	"github.com/yaklabco/lintbridge/pkg/fsutil"
	"github.com/yaklabco/lintbridge/pkg/langdetect"
	"github.com/yaklabco/lintbridge/pkg/lint"
)

type fixFlags struct {
	dryRun    bool
	noBackups bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Apply engine fixes to files in place",
		Long: `Lint the given files and apply the resulting fixes directly on disk.

Edits are validated and sorted before applying; overlapping edits are
skipped rather than applied blind, and re-running fix picks them up once
the surviving edits have landed. A sidecar backup of each modified file
is written unless --no-backups is set.

Examples:
  lintbridge fix src/a.js             # Fix one file
  lintbridge fix --dry-run src/a.js   # Report without writing
  lintbridge fix --no-backups a.js    # Skip backup creation`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	resolver := engine.NewResolver()
	runner := &lint.Runner{}
	out := cmd.OutOrStdout()

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
			continue
		}

		failures, err := runner.Run(ctx, path, string(content), handle, cfg)
		if err != nil {
			return errors.Join(errors.New("lint run failed"), err)
		}

		edits := fix.OffsetEdits(failures)
		accepted, skipped, err := fix.PrepareEdits(edits, len(content))
		if err != nil {
			return fmt.Errorf("prepare edits for %s: %w", path, err)
		}

		if len(skipped) > 0 {
			logger.Warn("skipped conflicting edits",
				logging.FieldPath, path,
				logging.FieldEdits, len(skipped))
		}

		if len(accepted) == 0 {
			fmt.Fprintf(out, "%s: nothing to fix\n", path)
			continue
		}

		if flags.dryRun {
			fmt.Fprintf(out, "%s: %d fix(es) available\n", path, len(accepted))
			continue
		}

		if !flags.noBackups {
			if _, err := fsutil.CreateBackup(ctx, path); err != nil {
				return fmt.Errorf("backup %s: %w", path, err)
			}
		}

		fixed := fix.ApplyEdits(content, accepted)

		stat, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := fsutil.WriteAtomic(ctx, path, fixed, stat.Mode()); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		fmt.Fprintf(out, "%s: applied %d fix(es)\n", path, len(accepted))
	}

	return nil
}
