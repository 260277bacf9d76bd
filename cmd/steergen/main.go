package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"steergen/internal/analyze"
	"steergen/internal/config"
	"steergen/internal/detect"
	"steergen/internal/logging"
	"steergen/internal/steering"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is stamped at release time via -ldflags "-X main.version=...".
var version = "1.0.0"

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "steergen",
	Short: "steergen - steering document generator for AI coding assistants",
	Long: `steergen analyzes a web project and generates steering documents that give
AI coding assistants durable project context: technology stack, project
structure, product overview, and business rules.

Documents are written in the layout of the chosen assistant (Kiro, Cursor,
GitHub Copilot, Windsurf, Cline, Aider) or as plain markdown.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the steergen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("steergen %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFileName, "Path to the steergen config file")

	// Add commands to root
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// projectRoot resolves the positional project path, falling back to the
// configured root.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.ProjectRoot
}

// flagOr returns the flag value when set, otherwise the config fallback.
func flagOr(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

func analysisOptions() analyze.Options {
	maxFiles, componentLimit, snippetLimit := cfg.AnalysisOptions()
	return analyze.Options{
		MaxFiles:       maxFiles,
		ComponentLimit: componentLimit,
		SnippetLimit:   snippetLimit,
	}
}

func resolveFramework(root, override string) steering.Framework {
	if override != "" {
		return steering.Framework(override)
	}
	return detect.Detect(root)
}

// effectiveTarget merges the flag value with the configured target and
// rejects unknown identifiers before any analysis work starts.
func effectiveTarget(flagValue string) (steering.Target, error) {
	target := steering.Target(flagOr(flagValue, cfg.Target))
	if !steering.ValidTarget(target) {
		return "", fmt.Errorf("invalid target: %s (valid: %v)", target, steering.Targets())
	}
	return target, nil
}

// buildBundle runs the full pipeline for one project: detect the framework
// (unless overridden), analyze, enrich, and synthesize for the target.
func buildBundle(ctx context.Context, root, fwOverride string, target steering.Target) (steering.OutputBundle, steering.Framework, error) {
	fw := resolveFramework(root, fwOverride)
	opts := analysisOptions()

	analysis, err := analyze.NewAnalyzer(opts).Analyze(ctx, root, fw)
	if err != nil {
		return nil, fw, err
	}

	engine := steering.NewEngine(analyze.NewDeepAnalyzer(root, opts, logger))
	bundle, err := engine.Synthesize(ctx, analysis.Record(), target)
	if err != nil {
		return nil, fw, err
	}
	return bundle, fw, nil
}

func sortedPaths(bundle steering.OutputBundle) []string {
	paths := make([]string, 0, len(bundle))
	for rel := range bundle {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}
