// Package cli provides the Cobra command structure for lintbridge.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/lintbridge/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root lintbridge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "lintbridge",
		Short: "Lint orchestration for editors",
		Long: `lintbridge bridges editors to on-disk lint engines.

It resolves the engine installation governing each file (project-local
lint_modules, then the per-user and system package roots), discovers the
nearest lintrc configuration, and serves diagnostics and fixes either over
a stdio session (serve) or as one-shot commands (check, fix).`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
