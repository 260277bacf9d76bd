// Package mcpserver exposes detection, analysis, and document generation as
// MCP tools over stdio. This is the composition root: it builds the shared
// dependencies and injects them into the tool handlers. No business logic
// lives here, only wiring.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"steergen/internal/analyze"
)

// Deps carries the shared dependencies injected into every tool.
type Deps struct {
	// Analysis bounds the project scans run by the tools.
	Analysis analyze.Options

	// Log receives tool activity. Nil disables logging.
	Log *zap.Logger
}

// New creates the MCP server with all six tools registered.
func New(version string, deps Deps) *server.MCPServer {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	s := server.NewMCPServer(
		"steergen",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	detectTool := NewDetectTool(deps.Log)
	s.AddTool(detectTool.Definition(), detectTool.Handle)

	analyzeTool := NewAnalyzeTool(deps.Analysis, deps.Log)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	generateTool := NewGenerateTool(deps.Analysis, deps.Log)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	deepTool := NewDeepAnalyzeTool(deps.Analysis, deps.Log)
	s.AddTool(deepTool.Definition(), deepTool.Handle)

	frameworksTool := NewFrameworksTool()
	s.AddTool(frameworksTool.Definition(), frameworksTool.Handle)

	idesTool := NewIDEsTool()
	s.AddTool(idesTool.Definition(), idesTool.Handle)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// serverInstructions tells the AI client how to use the tools together.
func serverInstructions() string {
	return `This MCP server auto-generates steering/context documentation from codebases.

Supported frameworks: Next.js (App Router and Pages Router), Laravel, React, Vue, Nuxt

Workflow:
1. Call detect_project_framework with the project path to identify the framework
2. Call analyze_project to extract structured data (or deep_analyze_project for
   categorized dependencies, entities, and architecture patterns)
3. Call generate_steering to create the documentation files

Output formats:
- kiro: separate .md files for .kiro/steering/
- cursor: .cursor/rules/project.mdc
- copilot: .github/copilot-instructions.md
- windsurf: .windsurfrules in the project root
- cline: .clinerules in the project root
- aider: CONVENTIONS.md
- markdown: single STEERING.md file`
}
