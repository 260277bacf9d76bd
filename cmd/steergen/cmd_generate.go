package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"steergen/internal/steering"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	generateTarget    string
	generateFramework string
	generateOut       string
	generateDryRun    bool
)

// generateCmd runs the full pipeline and writes the documents to disk
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate steering documents for a project",
	Long: `Analyzes the project, derives the four steering documents, and writes them
in the chosen target's layout.

The framework is auto-detected unless --framework is given. A deep analysis
pass (dependencies, entities, README, code snippets) runs automatically and
enriches every document.

Examples:
  steergen generate
  steergen generate ./shop --target cursor
  steergen generate --target kiro --out ./shop --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateTarget, "target", "t", "", "Steering target (kiro, cursor, copilot, windsurf, cline, aider, markdown)")
	generateCmd.Flags().StringVarP(&generateFramework, "framework", "f", "", "Framework override (skips detection)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Directory the documents are written under (defaults to the configured output_dir)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print what would be written without touching the filesystem")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	target, err := effectiveTarget(generateTarget)
	if err != nil {
		return err
	}

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	root := projectRoot(args)
	outDir := flagOr(generateOut, cfg.OutputDir)

	bundle, fw, err := buildBundle(ctx, root, flagOr(generateFramework, cfg.Framework), target)
	if err != nil {
		return err
	}

	if generateDryRun {
		fmt.Printf("Would write %d steering document(s) for %s:\n", len(bundle), fw.DisplayName())
		for _, rel := range sortedPaths(bundle) {
			fmt.Printf("  %s (%d bytes)\n", filepath.Join(outDir, rel), len(bundle[rel]))
		}
		return nil
	}

	if err := writeBundle(bundle, outDir); err != nil {
		return err
	}

	fmt.Printf("Generated %d steering document(s) for %s\n", len(bundle), fw.DisplayName())
	return nil
}

// writeBundle writes every bundle entry under outDir, creating target
// directories as needed.
func writeBundle(bundle steering.OutputBundle, outDir string) error {
	for _, rel := range sortedPaths(bundle) {
		dest := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(dest, []byte(bundle[rel]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		logger.Info("Wrote steering document",
			zap.String("path", dest),
			zap.Int("bytes", len(bundle[rel])))
	}
	return nil
}
