package analyze

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"steergen/internal/steering"
)

// snippetLines caps how much of a file a code snippet carries.
const snippetLines = 40

// DeepAnalyzer runs the enrichment scans. It satisfies the engine's
// Enricher interface.
type DeepAnalyzer struct {
	root string
	opts Options
	log  *zap.Logger
}

// NewDeepAnalyzer builds a deep analyzer rooted at the project directory.
// A nil logger is replaced with a no-op one.
func NewDeepAnalyzer(root string, opts Options, log *zap.Logger) *DeepAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeepAnalyzer{root: root, opts: opts.withDefaults(), log: log}
}

// Enrich fills the categorized and derived sections of the record. The four
// sub-scans are independent and run concurrently; pattern inference needs
// the categorized dependencies and runs after they land. Caller-populated
// basic fields pass through untouched.
func (d *DeepAnalyzer) Enrich(ctx context.Context, rec steering.AnalysisRecord) (steering.AnalysisRecord, error) {
	root := rec.ProjectPath
	if root == "" {
		root = d.root
	}

	var (
		categorized map[string][]steering.Dependency
		readme      steering.Readme
		entities    []steering.Entity
		enums       []steering.StatusEnum
		snippets    map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		categorized = CategorizeDependencies(root)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		readme = ReadReadme(root)
		return nil
	})

	g.Go(func() error {
		budget := d.opts.MaxFiles
		var err error
		entities, enums, err = ExtractEntities(gctx, root, rec.Framework, &budget)
		return err
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		snippets = collectSnippets(root, rec.Framework, d.opts.SnippetLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return steering.AnalysisRecord{}, err
	}

	d.log.Debug("deep analysis complete",
		zap.String("root", root),
		zap.Int("entities", len(entities)),
		zap.Int("statusEnums", len(enums)),
		zap.Int("categories", len(categorized)))

	out := rec
	out.ProjectPath = root
	out.CategorizedDependencies = categorized
	out.Readme = readme
	out.Entities = entities
	out.StatusEnums = enums
	out.CodeSnippets = snippets
	out.Patterns = inferPatterns(rec.Framework, categorized)
	return out, nil
}

// inferPatterns derives the architecture-pattern strings from the framework
// and the categorized dependencies. Unrecognized setups leave fields empty.
func inferPatterns(fw steering.Framework, categorized map[string][]steering.Dependency) steering.Patterns {
	var p steering.Patterns

	names := func(category string) []string {
		deps := categorized[category]
		out := make([]string, 0, len(deps))
		for _, dep := range deps {
			out = append(out, dep.Name)
		}
		return out
	}
	hasDep := func(category, name string) bool {
		for _, dep := range categorized[category] {
			if dep.Name == name || strings.Contains(dep.Name, name) {
				return true
			}
		}
		return false
	}

	switch {
	case hasDep(steering.CategoryState, "zustand"):
		p.StateManagement = "Zustand store for global state"
	case hasDep(steering.CategoryState, "jotai"):
		p.StateManagement = "Jotai atoms for shared state"
	case hasDep(steering.CategoryState, "@reduxjs/toolkit"):
		p.StateManagement = "Redux Toolkit slices"
	case hasDep(steering.CategoryState, "pinia"):
		p.StateManagement = "Pinia stores"
	case hasDep(steering.CategoryState, "vuex"):
		p.StateManagement = "Vuex store modules"
	}

	switch fw {
	case steering.FrameworkNextAppRouter:
		p.ComponentPattern = "Server Components by default, Client Components on interaction boundaries"
		p.APIPattern = "Route Handlers under app/api/"
	case steering.FrameworkNextPagesRouter:
		p.ComponentPattern = "Page components with shared layout wrappers"
		p.APIPattern = "API routes under pages/api/"
	case steering.FrameworkReact:
		p.ComponentPattern = "Function components with hooks"
	case steering.FrameworkVue, steering.FrameworkNuxt:
		p.ComponentPattern = "Single-file components (Composition API)"
	case steering.FrameworkLaravel:
		p.ComponentPattern = "Blade views with controller-bound data"
		p.APIPattern = "REST controllers declared in routes/api.php"
	}

	if p.APIPattern == "" {
		switch {
		case hasDep(steering.CategoryDatabase, "supabase"):
			p.APIPattern = "Supabase client queries from the frontend"
		case hasDep(steering.CategoryDataFetching, "@tanstack"):
			p.APIPattern = "TanStack Query over a fetch service layer"
		case hasDep(steering.CategoryDataFetching, "axios"):
			p.APIPattern = "Axios service layer"
		}
	}

	for _, name := range names(steering.CategoryUI) {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "tailwind") {
			p.Styling = "Tailwind CSS utility classes"
			break
		}
		if name == "styled-components" || strings.Contains(name, "@emotion") {
			p.Styling = "CSS-in-JS styling"
		}
		if name == "sass" && p.Styling == "" {
			p.Styling = "SCSS stylesheets"
		}
	}

	return p
}

// snippetCandidates lists, per framework, the high-signal files worth
// excerpting, most important first.
var snippetCandidates = map[steering.Framework][]string{
	steering.FrameworkNextAppRouter: {
		"app/layout.tsx", "app/page.tsx", "lib/types.ts", "src/app/layout.tsx",
	},
	steering.FrameworkNextPagesRouter: {
		"pages/_app.tsx", "pages/index.tsx", "src/pages/_app.tsx",
	},
	steering.FrameworkLaravel: {
		"routes/web.php", "routes/api.php", "app/Http/Controllers/Controller.php",
	},
	steering.FrameworkReact: {
		"src/App.tsx", "src/main.tsx", "src/types.ts",
	},
	steering.FrameworkVue: {
		"src/App.vue", "src/main.ts", "src/router/index.ts",
	},
	steering.FrameworkNuxt: {
		"app.vue", "nuxt.config.ts", "pages/index.vue",
	},
}

// collectSnippets excerpts the first snippetLines lines of up to limit
// high-signal files, keyed by their relative path.
func collectSnippets(root string, fw steering.Framework, limit int) map[string]string {
	snippets := make(map[string]string)
	for _, rel := range snippetCandidates[fw] {
		if len(snippets) >= limit {
			break
		}
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		snippets[filepath.ToSlash(rel)] = excerpt(string(data))
	}
	return snippets
}

func excerpt(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > snippetLines {
		lines = lines[:snippetLines]
	}
	return strings.Join(lines, "\n")
}
