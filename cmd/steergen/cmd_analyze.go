package main

import (
	"context"
	"encoding/json"
	"fmt"
	"steergen/internal/analyze"

	"github.com/spf13/cobra"
)

var (
	analyzeDeep      bool
	analyzeFramework string
)

// analyzeCmd prints the analysis record as JSON
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project and print the record as JSON",
	Long: `Runs the project analysis and prints the resulting record as JSON.

The default pass collects scripts, environment variables, components, and
source statistics. With --deep it also categorizes dependencies, extracts
entities and status enums, reads the README, and infers architecture
patterns.

Examples:
  steergen analyze
  steergen analyze ./shop --deep`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDeep, "deep", false, "Run the deep analysis pass as well")
	analyzeCmd.Flags().StringVarP(&analyzeFramework, "framework", "f", "", "Framework override (skips detection)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	root := projectRoot(args)
	fw := resolveFramework(root, flagOr(analyzeFramework, cfg.Framework))
	opts := analysisOptions()

	analysis, err := analyze.NewAnalyzer(opts).Analyze(ctx, root, fw)
	if err != nil {
		return err
	}

	rec := analysis.Record()
	if analyzeDeep {
		rec, err = analyze.NewDeepAnalyzer(root, opts, logger).Enrich(ctx, rec)
		if err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
