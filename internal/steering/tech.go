package steering

import (
	"fmt"
	"strings"
)

// keyLibraryCategories are scanned, in order, for the Key Libraries section.
var keyLibraryCategories = []string{
	CategoryForms,
	CategoryState,
	CategoryDataFetching,
	CategoryUtilities,
	CategoryCharts,
	CategoryNotifications,
	CategoryTheme,
}

// scriptCaptions fixes the order and captions of the development-commands
// block. Only scripts present in the record are listed.
var scriptCaptions = []struct {
	name string
	line string
}{
	{"dev", "npm run dev       # Start development server"},
	{"build", "npm run build     # Build for production"},
	{"start", "npm run start     # Start production server"},
	{"lint", "npm run lint      # Run linter"},
	{"test", "npm run test      # Run tests"},
}

// DeriveTech renders the technology-stack document: framework and runtime,
// database/backend, UI and styling, key libraries, development commands,
// environment variables, and technical constraints. Sections backed by empty
// data are omitted entirely.
func DeriveTech(rec AnalysisRecord) string {
	categorized := rec.CategorizedDependencies
	fw := rec.Framework.orUnknown()
	ui := computeUIStack(categorized[CategoryUI])

	lines := []string{"# Technology Stack\n"}
	lines = append(lines,
		"This document defines the technology choices for this project. ",
		"Use these technologies when generating code and suggestions.\n")

	lines = append(lines, "## Framework & Runtime\n")
	lines = append(lines, "- **Framework**: "+fw.DisplayName())
	switch {
	case fw.isReactFamily():
		lines = append(lines,
			"- **UI Library**: React 19",
			"- **Language**: TypeScript 5",
			"- **Runtime**: Node.js 20+")
	case fw.isVueFamily():
		lines = append(lines,
			"- **UI Library**: Vue 3 (Composition API)",
			"- **Language**: TypeScript 5",
			"- **Runtime**: Node.js 20+")
	case fw == FrameworkLaravel:
		lines = append(lines,
			"- **Language**: PHP 8.2+",
			"- **Runtime**: PHP-FPM / Laravel Octane")
	}
	lines = append(lines, "")

	if deps := categorized[CategoryDatabase]; len(deps) > 0 {
		lines = append(lines, "## Database & Backend\n")
		for _, dep := range deps {
			for _, label := range classify(dep, CategoryDatabase) {
				lines = append(lines, "- "+label)
			}
		}
		lines = append(lines, "")
	}

	if deps := categorized[CategoryUI]; len(deps) > 0 {
		lines = append(lines, "## UI & Styling\n")
		lines = append(lines, ui.lines()...)
		for _, dep := range deps {
			if label, ok := iconLabel(dep); ok {
				lines = append(lines, "- "+label)
			}
		}
		for _, dep := range categorized[CategoryOther] {
			if label, ok := fontLabel(dep); ok {
				lines = append(lines, "- "+label)
			}
		}
		lines = append(lines, "")
	}

	var keyLibs []string
	for _, category := range keyLibraryCategories {
		for _, dep := range categorized[category] {
			keyLibs = append(keyLibs, classify(dep, category)...)
		}
	}
	if len(keyLibs) > 0 {
		lines = append(lines, "## Key Libraries\n")
		for _, lib := range keyLibs {
			lines = append(lines, "- "+lib)
		}
		lines = append(lines, "")
	}

	if len(rec.Scripts) > 0 {
		lines = append(lines, "## Development Commands\n", "```bash")
		for _, script := range scriptCaptions {
			if _, ok := rec.Scripts[script.name]; ok {
				lines = append(lines, script.line)
			}
		}
		lines = append(lines, "```\n")
	}

	if len(rec.EnvVars) > 0 {
		lines = append(lines, "## Environment Variables\n")
		lines = append(lines, "Required environment variables (`.env.local`):\n")
		lines = append(lines, "| Variable | Description |", "|----------|-------------|")
		for _, name := range rec.EnvVars {
			lines = append(lines, fmt.Sprintf("| `%s` | %s |", name, describeEnvVar(name)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Technical Constraints\n")
	lines = append(lines, "When generating code, follow these constraints:\n")
	if fw.isNext() {
		lines = append(lines,
			"- Use Server Components by default, Client Components only when needed",
			"- Prefer Server Actions for mutations",
			"- Use `next/image` for images, `next/link` for navigation")
	}
	if ui.hasTailwind {
		lines = append(lines, "- Use Tailwind CSS classes, avoid inline styles")
	}
	lines = append(lines, "- Follow TypeScript strict mode", "")

	return strings.Join(lines, "\n")
}
