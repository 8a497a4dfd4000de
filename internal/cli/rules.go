package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/pkg/engine"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Fixable bool   `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [file]",
		Short: "List the rules of the resolved engine",
		Long: `List the rules shipped by the engine installation that governs the
given file (or the current directory when no file is given), with their
IDs, messages, and whether they carry a fix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			anchor := "."
			if len(args) == 1 {
				anchor = args[0]
			}

			resolver := engine.NewResolver()
			handle, err := resolver.Resolve(ctx, anchor)
			if err != nil {
				return err
			}

			if flags.format == formatJSON {
				return outputRulesJSON(handle.Manifest.Rules)
			}

			logger := logging.NewInteractive()

			logger.Info("engine rules",
				logging.FieldEngine, handle.Manifest.Name,
				logging.FieldEngineVer, handle.Manifest.Version,
				logging.FieldGeneration, handle.Generation,
			)

			for _, rule := range handle.Manifest.Rules {
				fixable := "-"
				if rule.Replace != nil {
					fixable = "yes"
				}

				logger.Info(rule.ID,
					"message", rule.Message,
					"fixable", fixable,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func outputRulesJSON(rules []engine.RuleDef) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:      rule.ID,
			Message: rule.Message,
			Fixable: rule.Replace != nil,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}
