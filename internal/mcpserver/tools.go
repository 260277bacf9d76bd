package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"steergen/internal/analyze"
	"steergen/internal/detect"
	"steergen/internal/steering"
)

// jsonResult encodes a tool response as pretty-printed JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// resolveFramework applies the optional override, falling back to detection.
func resolveFramework(root, override string) steering.Framework {
	if override != "" {
		return steering.Framework(override)
	}
	return detect.Detect(root)
}

// DetectTool reports the detected framework for a project.
type DetectTool struct {
	log *zap.Logger
}

func NewDetectTool(log *zap.Logger) *DetectTool {
	return &DetectTool{log: log}
}

func (t *DetectTool) Definition() mcp.Tool {
	return mcp.NewTool("detect_project_framework",
		mcp.WithDescription("Detect the framework used in a project directory and list the files worth analyzing."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute or relative path to the project root"),
		),
	)
}

func (t *DetectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("project_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detection := detect.Probe(root)
	t.log.Debug("framework detected",
		zap.String("root", root),
		zap.String("framework", string(detection.Framework)))

	return jsonResult(detection)
}

// AnalyzeTool runs the basic project scan.
type AnalyzeTool struct {
	analyzer *analyze.Analyzer
	log      *zap.Logger
}

func NewAnalyzeTool(opts analyze.Options, log *zap.Logger) *AnalyzeTool {
	return &AnalyzeTool{analyzer: analyze.NewAnalyzer(opts), log: log}
}

func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_project",
		mcp.WithDescription("Analyze a codebase and extract structured information: tech stack, scripts, env vars, components, routes, types, and models."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute or relative path to the project root"),
		),
		mcp.WithString("framework",
			mcp.Description("Optional framework override (next-app-router, next-pages-router, laravel, react, vue, nuxt). Auto-detected when omitted."),
		),
	)
}

func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("project_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fw := resolveFramework(root, req.GetString("framework", ""))
	analysis, err := t.analyzer.Analyze(ctx, root, fw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.Debug("project analyzed",
		zap.String("root", root),
		zap.String("framework", string(fw)))

	return jsonResult(analysis)
}

// GenerateTool produces the steering-document bundle for a target format.
type GenerateTool struct {
	analyzer *analyze.Analyzer
	engine   *steering.Engine
	log      *zap.Logger
}

func NewGenerateTool(opts analyze.Options, log *zap.Logger) *GenerateTool {
	return &GenerateTool{
		analyzer: analyze.NewAnalyzer(opts),
		engine:   steering.NewEngine(analyze.NewDeepAnalyzer("", opts, log)),
		log:      log,
	}
}

func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_steering",
		mcp.WithDescription("Generate steering documentation from a codebase. Returns filename to content mappings for the chosen format."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute or relative path to the project root"),
		),
		mcp.WithString("output_format",
			mcp.Description("Output format: kiro (separate files), cursor, copilot, windsurf, cline, aider, or markdown (single file)"),
			mcp.DefaultString(string(steering.TargetKiro)),
		),
		mcp.WithString("framework",
			mcp.Description("Optional framework override. Auto-detected when omitted."),
		),
	)
}

type generateStats struct {
	TypesFound      int `json:"typesFound"`
	ModelsFound     int `json:"modelsFound"`
	RoutesFound     int `json:"routesFound"`
	ComponentsFound int `json:"componentsFound"`
	EnvVarsFound    int `json:"envVarsFound"`
}

type generateResponse struct {
	Framework    steering.Framework    `json:"framework"`
	OutputFormat steering.Target       `json:"outputFormat"`
	Files        steering.OutputBundle `json:"files"`
	Analysis     generateStats         `json:"analysis"`
}

func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("project_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Unknown formats silently fall back to kiro rather than failing the call.
	format := steering.Target(req.GetString("output_format", string(steering.TargetKiro)))
	if !steering.ValidTarget(format) {
		format = steering.TargetKiro
	}

	fw := resolveFramework(root, req.GetString("framework", ""))
	analysis, err := t.analyzer.Analyze(ctx, root, fw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bundle, err := t.engine.Synthesize(ctx, analysis.Record(), format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.Info("steering documents generated",
		zap.String("root", root),
		zap.String("format", string(format)),
		zap.Int("files", len(bundle)))

	return jsonResult(generateResponse{
		Framework:    analysis.Framework,
		OutputFormat: format,
		Files:        bundle,
		Analysis: generateStats{
			TypesFound:      len(analysis.Types),
			ModelsFound:     len(analysis.Models),
			RoutesFound:     len(analysis.Routes),
			ComponentsFound: len(analysis.Components),
			EnvVarsFound:    len(analysis.EnvVars),
		},
	})
}

// DeepAnalyzeTool runs the basic scan plus enrichment and returns the merged
// record.
type DeepAnalyzeTool struct {
	analyzer *analyze.Analyzer
	deep     *analyze.DeepAnalyzer
	log      *zap.Logger
}

func NewDeepAnalyzeTool(opts analyze.Options, log *zap.Logger) *DeepAnalyzeTool {
	return &DeepAnalyzeTool{
		analyzer: analyze.NewAnalyzer(opts),
		deep:     analyze.NewDeepAnalyzer("", opts, log),
		log:      log,
	}
}

func (t *DeepAnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("deep_analyze_project",
		mcp.WithDescription("Perform deep analysis of a codebase: categorized dependencies with purposes, README product info, architecture patterns, key code snippets, entity definitions with fields, and status enums. Use this when generating detailed steering docs."),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute or relative path to the project root"),
		),
		mcp.WithString("framework",
			mcp.Description("Optional framework override. Auto-detected when omitted."),
		),
	)
}

func (t *DeepAnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("project_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fw := resolveFramework(root, req.GetString("framework", ""))
	analysis, err := t.analyzer.Analyze(ctx, root, fw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := t.deep.Enrich(ctx, analysis.Record())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t.log.Debug("deep analysis finished",
		zap.String("root", root),
		zap.String("framework", string(fw)))

	return jsonResult(rec)
}

// FrameworksTool lists the detection registry.
type FrameworksTool struct{}

func NewFrameworksTool() *FrameworksTool {
	return &FrameworksTool{}
}

func (t *FrameworksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_supported_frameworks",
		mcp.WithDescription("List all supported frameworks and their detection signatures."),
	)
}

type frameworksResponse struct {
	Frameworks []detect.FrameworkInfo `json:"frameworks"`
}

func (t *FrameworksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(frameworksResponse{Frameworks: detect.Frameworks()})
}

// IDEsTool lists the target registry.
type IDEsTool struct{}

func NewIDEsTool() *IDEsTool {
	return &IDEsTool{}
}

func (t *IDEsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_supported_ides",
		mcp.WithDescription("List all supported IDEs and their steering file formats."),
	)
}

type ideRow struct {
	ID            steering.Target `json:"id"`
	Description   string          `json:"description"`
	Path          string          `json:"path"`
	MultipleFiles bool            `json:"multipleFiles"`
}

type idesResponse struct {
	IDEs []ideRow `json:"ides"`
}

func (t *IDEsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows := make([]ideRow, 0, 7)
	for _, id := range steering.Targets() {
		cfg := steering.LookupTarget(id)
		rows = append(rows, ideRow{
			ID:            id,
			Description:   cfg.Description,
			Path:          cfg.Path(),
			MultipleFiles: cfg.MultipleFiles,
		})
	}
	return jsonResult(idesResponse{IDEs: rows})
}
