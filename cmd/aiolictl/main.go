// aiolictl runs one-shot analyses and accessibility audits from the
// terminal, printing the same JSON the API serves.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aioli-app/backend/ai"
	"github.com/aioli-app/backend/analyzer"
	"github.com/aioli-app/backend/config"
	"github.com/aioli-app/backend/logging"
	"github.com/aioli-app/backend/wcag"
)

func newAnalyzer() (*analyzer.Analyzer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New()

	var completer ai.Completer
	if cfg.AnthropicAPIKey != "" {
		settings := ai.DefaultSettings()
		if cfg.Settings.Audit.Model != "" {
			settings.Model = cfg.Settings.Audit.Model
		}
		client, err := ai.NewClient(cfg.AnthropicAPIKey, settings)
		if err != nil {
			return nil, err
		}
		completer = client
	}

	return analyzer.New(cfg.DataDir, log, analyzer.Options{
		Completer: completer,
		Audit: wcag.AuditOptions{
			MaxParallel:   cfg.Settings.Audit.MaxParallel,
			ContentTokens: cfg.Settings.Audit.ContentMaxTokens,
		},
	})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	root := &cobra.Command{
		Use:   "aiolictl",
		Short: "Analyze pages for SEO, AI visibility and accessibility",
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Score a URL against the SEO and LLM-readiness rubrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAnalyzer()
			if err != nil {
				return err
			}
			defer app.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			analysis, err := app.Analyze(ctx, args[0])
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", args[0], err)
			}
			return printJSON(analysis)
		},
	}

	var level, version string
	wcagCmd := &cobra.Command{
		Use:   "wcag <url>",
		Short: "Run a WCAG accessibility audit against a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAnalyzer()
			if err != nil {
				return err
			}
			defer app.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			report, err := app.Audit(ctx, args[0], wcag.Level(level), wcag.Version(version))
			if err != nil {
				return fmt.Errorf("auditing %s: %w", args[0], err)
			}
			return printJSON(report)
		},
	}
	wcagCmd.Flags().StringVar(&level, "level", "AA", "conformance level (A, AA, AAA)")
	wcagCmd.Flags().StringVar(&version, "version", "2.2", "WCAG version (2.1, 2.2)")

	criteriaCmd := &cobra.Command{
		Use:   "criteria",
		Short: "List the success criteria audited at a level and version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(wcag.CriteriaByLevelAndVersion(wcag.Level(level), wcag.Version(version)))
		},
	}
	criteriaCmd.Flags().StringVar(&level, "level", "AA", "conformance level (A, AA, AAA)")
	criteriaCmd.Flags().StringVar(&version, "version", "2.2", "WCAG version (2.1, 2.2)")

	root.AddCommand(analyzeCmd, wcagCmd, criteriaCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
