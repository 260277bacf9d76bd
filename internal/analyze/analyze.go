// Package analyze extracts structured project facts for steering synthesis.
// The basic scan reads manifests and counts inventories; the deep scan adds
// categorized dependencies, README metadata, entities, and code snippets.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"steergen/internal/steering"
)

// Options bound the filesystem scan.
type Options struct {
	// MaxFiles caps the number of files visited across all walks.
	MaxFiles int
	// ComponentLimit caps the component name inventory.
	ComponentLimit int
	// SnippetLimit caps the code snippets collected by the deep scan.
	SnippetLimit int
}

// DefaultOptions match the config defaults.
func DefaultOptions() Options {
	return Options{MaxFiles: 2000, ComponentLimit: 50, SnippetLimit: 3}
}

func (o Options) withDefaults() Options {
	if o.MaxFiles <= 0 {
		o.MaxFiles = 2000
	}
	if o.ComponentLimit <= 0 {
		o.ComponentLimit = 50
	}
	if o.SnippetLimit <= 0 {
		o.SnippetLimit = 3
	}
	return o
}

// Analysis is the basic-scan product.
type Analysis struct {
	ProjectPath string             `json:"projectPath"`
	Framework   steering.Framework `json:"framework"`
	Scripts     map[string]string  `json:"scripts"`
	EnvVars     []string           `json:"envVars"`
	Components  []string           `json:"components"`
	Routes      []string           `json:"routes"`
	Types       []string           `json:"types"`
	Models      []string           `json:"models"`
	Stats       map[string]int     `json:"stats"`
}

// Record converts the analysis into the engine's shallow record form.
// CategorizedDependencies stays nil so the engine knows to enrich.
func (a *Analysis) Record() steering.AnalysisRecord {
	return steering.AnalysisRecord{
		Framework:   a.Framework,
		ProjectPath: a.ProjectPath,
		Scripts:     a.Scripts,
		EnvVars:     a.EnvVars,
		Components:  a.Components,
		Stats:       a.Stats,
	}
}

// Analyzer runs the basic scan.
type Analyzer struct {
	opts Options
}

func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts.withDefaults()}
}

// Analyze scans the project root. Absent files degrade to empty fields; only
// an unreadable root is an error.
func (a *Analyzer) Analyze(ctx context.Context, root string, fw steering.Framework) (*Analysis, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	budget := a.opts.MaxFiles

	analysis := &Analysis{
		ProjectPath: root,
		Framework:   fw,
		Scripts:     readScripts(root),
		EnvVars:     collectEnvVars(root, &budget),
		Components:  scanComponents(root, a.opts.ComponentLimit, &budget),
		Routes:      scanRoutes(root, fw, &budget),
		Types:       scanTypeNames(root, &budget),
		Models:      scanModels(root, fw, &budget),
	}
	analysis.Stats = map[string]int{
		"filesScanned":    a.opts.MaxFiles - budget,
		"componentsFound": len(analysis.Components),
		"envVarsFound":    len(analysis.EnvVars),
		"typesFound":      len(analysis.Types),
		"modelsFound":     len(analysis.Models),
		"routesFound":     len(analysis.Routes),
	}
	return analysis, nil
}

// readScripts parses the "scripts" block of package.json.
func readScripts(root string) map[string]string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return map[string]string{}
	}
	var manifest struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.Scripts == nil {
		return map[string]string{}
	}
	return manifest.Scripts
}

// dotenvFiles are probed in order; earlier files win the first-seen slot.
var dotenvFiles = []string{".env", ".env.local", ".env.example"}

var (
	processEnvRe = regexp.MustCompile(`process\.env\.([A-Z][A-Z0-9_]*)`)
	phpEnvRe     = regexp.MustCompile(`env\(['"]([A-Z][A-Z0-9_]*)['"]`)
)

// collectEnvVars unions variable names from dotenv files and environment
// references in source, deduplicated in first-seen order.
func collectEnvVars(root string, budget *int) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, file := range dotenvFiles {
		data, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			continue
		}
		parsed, err := godotenv.UnmarshalBytes(data)
		if err != nil {
			continue
		}
		// godotenv hands back a map; recover declaration order from the raw
		// lines so output stays deterministic.
		for _, key := range dotenvKeyOrder(string(data), parsed) {
			add(key)
		}
	}

	for _, dir := range []string{"app", "src", "lib", "config"} {
		walkSource(filepath.Join(root, dir), budget, func(path string) {
			if !isSourceFile(path) {
				return
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return
			}
			for _, m := range processEnvRe.FindAllSubmatch(data, -1) {
				add(string(m[1]))
			}
			for _, m := range phpEnvRe.FindAllSubmatch(data, -1) {
				add(string(m[1]))
			}
		})
	}

	return names
}

// dotenvKeyOrder lists the parsed keys in the order they appear in the file.
func dotenvKeyOrder(raw string, parsed map[string]string) []string {
	var keys []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "export ")
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if _, ok := parsed[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// componentDirs are scanned in order for component files.
var componentDirs = []string{"components", "src/components", "app"}

// reservedComponentNames are framework file conventions, not components.
var reservedComponentNames = map[string]bool{
	"page": true, "layout": true, "loading": true, "error": true,
	"route": true, "template": true, "not-found": true,
}

// scanComponents collects component base names from the conventional
// directories, capped at limit.
func scanComponents(root string, limit int, budget *int) []string {
	seen := make(map[string]bool)
	var components []string

	for _, dir := range componentDirs {
		walkSource(filepath.Join(root, dir), budget, func(path string) {
			if len(components) >= limit {
				return
			}
			ext := filepath.Ext(path)
			if ext != ".tsx" && ext != ".vue" && ext != ".jsx" {
				return
			}
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if strings.Contains(name, ".test") || strings.Contains(name, ".spec") {
				return
			}
			if reservedComponentNames[name] || seen[name] {
				return
			}
			seen[name] = true
			components = append(components, name)
		})
	}

	return components
}

var laravelRouteRe = regexp.MustCompile(`Route::\w+\(\s*['"]([^'"]*)['"]`)
var vueRoutePathRe = regexp.MustCompile(`path:\s*['"]([^'"]*)['"]`)

// scanRoutes inventories routes per framework convention.
func scanRoutes(root string, fw steering.Framework, budget *int) []string {
	var routes []string

	switch fw {
	case steering.FrameworkNextAppRouter:
		for _, appDir := range []string{"app", "src/app"} {
			base := filepath.Join(root, appDir)
			walkSource(base, budget, func(path string) {
				name := filepath.Base(path)
				if name != "page.tsx" && name != "page.jsx" {
					return
				}
				rel, err := filepath.Rel(base, filepath.Dir(path))
				if err != nil {
					return
				}
				routes = append(routes, routeFromDir(rel))
			})
			if len(routes) > 0 {
				break
			}
		}

	case steering.FrameworkNextPagesRouter:
		for _, pagesDir := range []string{"pages", "src/pages"} {
			base := filepath.Join(root, pagesDir)
			walkSource(base, budget, func(path string) {
				ext := filepath.Ext(path)
				if ext != ".tsx" && ext != ".jsx" && ext != ".ts" && ext != ".js" {
					return
				}
				name := strings.TrimSuffix(filepath.Base(path), ext)
				if strings.HasPrefix(name, "_") {
					return
				}
				rel, err := filepath.Rel(base, filepath.Dir(path))
				if err != nil {
					return
				}
				routes = append(routes, routeFromDir(filepath.Join(rel, pageName(name))))
			})
			if len(routes) > 0 {
				break
			}
		}

	case steering.FrameworkLaravel:
		for _, file := range []string{"routes/web.php", "routes/api.php"} {
			data, err := os.ReadFile(filepath.Join(root, file))
			if err != nil {
				continue
			}
			for _, m := range laravelRouteRe.FindAllSubmatch(data, -1) {
				routes = append(routes, string(m[1]))
			}
		}

	case steering.FrameworkVue:
		walkSource(filepath.Join(root, "src", "router"), budget, func(path string) {
			data, err := os.ReadFile(path)
			if err != nil {
				return
			}
			for _, m := range vueRoutePathRe.FindAllSubmatch(data, -1) {
				routes = append(routes, string(m[1]))
			}
		})

	case steering.FrameworkNuxt:
		base := filepath.Join(root, "pages")
		walkSource(base, budget, func(path string) {
			if filepath.Ext(path) != ".vue" {
				return
			}
			name := strings.TrimSuffix(filepath.Base(path), ".vue")
			rel, err := filepath.Rel(base, filepath.Dir(path))
			if err != nil {
				return
			}
			routes = append(routes, routeFromDir(filepath.Join(rel, pageName(name))))
		})
	}

	sort.Strings(routes)
	return routes
}

// routeFromDir turns a directory path relative to the routing root into a
// URL path. "." becomes the root route.
func routeFromDir(rel string) string {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return "/"
	}
	return "/" + rel
}

func pageName(name string) string {
	if name == "index" {
		return "."
	}
	return name
}

var exportedTypeRe = regexp.MustCompile(`(?m)^export\s+(?:interface|type|enum)\s+(\w+)`)

// typeFileGlobs locate the conventional TypeScript type-definition files.
var typeFileGlobs = []string{
	"lib/types.ts", "src/types.ts", "types/*.ts", "src/types/*.ts", "lib/types/*.ts",
}

// typeFiles expands the conventional type-definition locations.
func typeFiles(root string) []string {
	var files []string
	for _, pattern := range typeFileGlobs {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	return files
}

// scanTypeNames lists exported type names from the conventional type files.
func scanTypeNames(root string, budget *int) []string {
	var names []string
	for _, file := range typeFiles(root) {
		if !spendBudget(budget) {
			break
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		for _, m := range exportedTypeRe.FindAllSubmatch(data, -1) {
			names = append(names, string(m[1]))
		}
	}
	return names
}

var prismaModelRe = regexp.MustCompile(`(?m)^model\s+(\w+)\s*\{`)

// scanModels lists persistence model names: Eloquent models for laravel,
// Prisma schema models otherwise.
func scanModels(root string, fw steering.Framework, budget *int) []string {
	var models []string

	if fw == steering.FrameworkLaravel {
		matches, _ := filepath.Glob(filepath.Join(root, "app", "Models", "*.php"))
		for _, m := range matches {
			if !spendBudget(budget) {
				break
			}
			models = append(models, strings.TrimSuffix(filepath.Base(m), ".php"))
		}
		sort.Strings(models)
		return models
	}

	data, err := os.ReadFile(filepath.Join(root, "prisma", "schema.prisma"))
	if err != nil {
		return models
	}
	for _, m := range prismaModelRe.FindAllSubmatch(data, -1) {
		models = append(models, string(m[1]))
	}
	return models
}

// skippedDirs never get walked.
var skippedDirs = map[string]bool{
	"node_modules": true, "vendor": true, ".git": true, "dist": true,
	"build": true, ".next": true, ".nuxt": true, ".output": true,
}

// walkSource walks a directory in lexical order, charging each visited file
// against the shared budget. Missing directories are fine.
func walkSource(dir string, budget *int, visit func(path string)) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !spendBudget(budget) {
			return filepath.SkipAll
		}
		visit(path)
		return nil
	})
}

func spendBudget(budget *int) bool {
	if *budget <= 0 {
		return false
	}
	*budget--
	return true
}

func isSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".vue", ".php":
		return true
	}
	return false
}
