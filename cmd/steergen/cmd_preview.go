package main

import (
	"context"
	"fmt"
	"steergen/internal/analyze"
	"steergen/internal/steering"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	previewDoc       string
	previewTarget    string
	previewFramework string
)

// previewCmd renders a steering document to the terminal
var previewCmd = &cobra.Command{
	Use:   "preview [path]",
	Short: "Render a steering document to the terminal",
	Long: `Derives the steering documents and renders one of them (or the target's
combined single-file body) to the terminal.

Examples:
  steergen preview --doc tech
  steergen preview ./shop --doc rules
  steergen preview --target cursor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewDoc, "doc", "d", "", "Document to render (tech, structure, product, rules)")
	previewCmd.Flags().StringVarP(&previewTarget, "target", "t", "", "Steering target used for the combined body")
	previewCmd.Flags().StringVarP(&previewFramework, "framework", "f", "", "Framework override (skips detection)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	target, err := effectiveTarget(previewTarget)
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
	fw := resolveFramework(root, flagOr(previewFramework, cfg.Framework))
	opts := analysisOptions()

	analysis, err := analyze.NewAnalyzer(opts).Analyze(ctx, root, fw)
	if err != nil {
		return err
	}
	rec, err := analyze.NewDeepAnalyzer(root, opts, logger).Enrich(ctx, analysis.Record())
	if err != nil {
		return err
	}

	body, err := previewBody(rec, target)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}
	rendered, err := renderer.Render(body)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	fmt.Print(rendered)
	return nil
}

// previewBody picks the document selected by --doc, or the body the target
// would receive when no document is named.
func previewBody(rec steering.AnalysisRecord, target steering.Target) (string, error) {
	docs := steering.DeriveAll(rec)

	switch previewDoc {
	case "tech":
		return docs.Tech, nil
	case "structure":
		return docs.Structure, nil
	case "product":
		return docs.Product, nil
	case "rules":
		return docs.BusinessRules, nil
	case "":
	default:
		return "", fmt.Errorf("invalid doc %q (valid: tech, structure, product, rules)", previewDoc)
	}

	tc := steering.LookupTarget(target)
	if tc.MultipleFiles {
		return docs.Combined(), nil
	}
	bundle := steering.Adapt(docs, rec.Framework, target)
	return bundle[tc.Path()], nil
}
