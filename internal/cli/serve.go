package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/internal/server"
	"github.com/yaklabco/lintbridge/internal/watch"
)

type serveFlags struct {
	watchDirs []string
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an editor session over stdio",
		Long: `Serve lint and fix requests over stdin/stdout, one JSON object per
line. The editor drives the session: it opens documents, requests lint
passes and fixes, and receives publishDiagnostics events back.

Directories given with --watch are observed for lintrc changes; a change
clears the configuration cache so the next lint pass re-discovers it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.watchDirs, "watch", nil,
		"directories to watch for lintrc changes")

	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	conn := server.NewConn(cmd.InOrStdin(), cmd.OutOrStdout(), server.Options{
		Logger: logger,
	})

	if len(flags.watchDirs) > 0 {
		watcher, err := watch.New(conn.ConfigFilesChanged, logger)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Stop()

		for _, dir := range flags.watchDirs {
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
		watcher.Start(ctx)
	}

	logger.Info("lintbridge session started")
	return conn.Serve(ctx)
}
