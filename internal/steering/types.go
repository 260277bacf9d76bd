// Package steering implements the document synthesis engine: the
// deterministic mapping from a project analysis record to a set of steering
// documents, and the per-target packaging that wraps those documents the way
// each IDE or coding assistant expects them.
//
// The engine performs no I/O and never parses source code. Every operation
// is a pure transformation over the input record; missing or empty fields
// degrade to shorter documents, never to errors.
package steering

import "strings"

// Framework identifies a detected project framework. The set is closed;
// anything the detector cannot classify is FrameworkUnknown.
type Framework string

const (
	FrameworkNextAppRouter   Framework = "next-app-router"
	FrameworkNextPagesRouter Framework = "next-pages-router"
	FrameworkLaravel         Framework = "laravel"
	FrameworkReact           Framework = "react"
	FrameworkVue             Framework = "vue"
	FrameworkNuxt            Framework = "nuxt"
	FrameworkUnknown         Framework = "unknown"
)

// frameworkNames maps framework ids to the display names used in documents.
var frameworkNames = map[Framework]string{
	FrameworkNextAppRouter:   "Next.js 15 (App Router)",
	FrameworkNextPagesRouter: "Next.js 15 (Pages Router)",
	FrameworkLaravel:         "Laravel 12",
	FrameworkReact:           "React 19 (Vite)",
	FrameworkVue:             "Vue.js 3 (Vite)",
	FrameworkNuxt:            "Nuxt 3",
}

// DisplayName returns the human-readable framework name, falling back to the
// raw id for anything outside the closed set.
func (f Framework) DisplayName() string {
	if name, ok := frameworkNames[f]; ok {
		return name
	}
	return string(f)
}

// orUnknown treats the zero value as FrameworkUnknown so records built
// without a detection pass still render a framework line.
func (f Framework) orUnknown() Framework {
	if f == "" {
		return FrameworkUnknown
	}
	return f
}

// isNext reports whether f is either Next.js variant.
func (f Framework) isNext() bool {
	return f == FrameworkNextAppRouter || f == FrameworkNextPagesRouter
}

// isReactFamily reports whether f renders with React.
func (f Framework) isReactFamily() bool {
	return f.isNext() || f == FrameworkReact
}

// isVueFamily reports whether f renders with Vue.
func (f Framework) isVueFamily() bool {
	return f == FrameworkVue || f == FrameworkNuxt
}

// Dependency category labels. categorizedDependencies keys outside this set
// are carried but contribute nothing to the documents.
const (
	CategoryDatabase      = "Database"
	CategoryUI            = "UI & Styling"
	CategoryForms         = "Forms"
	CategoryState         = "State"
	CategoryDataFetching  = "Data Fetching"
	CategoryUtilities     = "Utilities"
	CategoryCharts        = "Charts"
	CategoryNotifications = "Notifications"
	CategoryTheme         = "Theme"
	CategoryOther         = "Other"
)

// Dependency describes one third-party package the analyzed project pulls in.
type Dependency struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose,omitempty"`
}

// Readme carries product-facing metadata lifted from a project README.
type Readme struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// Field describes one attribute of a domain entity.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// Entity describes a domain object extracted from the project's type
// definitions or models.
type Entity struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// StatusEnum is a named, ordered set of workflow values.
type StatusEnum struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Patterns holds the recognized architecture patterns, one free-text note
// per slot. Empty slots are omitted from the structure document.
type Patterns struct {
	StateManagement  string `json:"stateManagement,omitempty"`
	ComponentPattern string `json:"componentPattern,omitempty"`
	APIPattern       string `json:"apiPattern,omitempty"`
	Styling          string `json:"styling,omitempty"`
}

func (p Patterns) empty() bool {
	return p.StateManagement == "" && p.ComponentPattern == "" &&
		p.APIPattern == "" && p.Styling == ""
}

// AnalysisRecord is the single input to document synthesis. All fields are
// optional; absent fields are treated as empty. A nil
// CategorizedDependencies distinguishes the legacy shallow form (which
// triggers the enrichment pass in Engine.Synthesize) from a deep record that
// simply found nothing.
type AnalysisRecord struct {
	Framework               Framework               `json:"framework,omitempty"`
	ProjectPath             string                  `json:"projectPath,omitempty"`
	CategorizedDependencies map[string][]Dependency `json:"categorizedDependencies,omitempty"`
	Patterns                Patterns                `json:"architecturePatterns,omitempty"`
	Scripts                 map[string]string       `json:"scripts,omitempty"`
	EnvVars                 []string                `json:"envVars,omitempty"`
	Components              []string                `json:"components,omitempty"`
	Readme                  Readme                  `json:"readme,omitempty"`
	Entities                []Entity                `json:"entities,omitempty"`
	StatusEnums             []StatusEnum            `json:"statusEnums,omitempty"`
	CodeSnippets            map[string]string       `json:"codeSnippets,omitempty"`
	Stats                   map[string]int          `json:"stats,omitempty"`
}

// Document keys. These double as the file names used by multi-file targets
// and fix the concatenation order for single-file targets.
const (
	DocTech          = "tech.md"
	DocStructure     = "structure.md"
	DocProduct       = "product.md"
	DocBusinessRules = "business-rules.md"
)

// DocumentSet holds the four generated document bodies. It is produced fresh
// on every synthesis call and never mutated by the adapter.
type DocumentSet struct {
	Tech          string
	Structure     string
	Product       string
	BusinessRules string
}

type namedDoc struct {
	key  string
	body string
}

// ordered returns the documents in their fixed emission order.
func (d DocumentSet) ordered() []namedDoc {
	return []namedDoc{
		{DocTech, d.Tech},
		{DocStructure, d.Structure},
		{DocProduct, d.Product},
		{DocBusinessRules, d.BusinessRules},
	}
}

// combinedSeparator joins document bodies in single-file output.
const combinedSeparator = "\n\n---\n\n"

// Combined joins the four bodies in fixed order with a horizontal rule.
func (d DocumentSet) Combined() string {
	parts := make([]string, 0, 4)
	for _, doc := range d.ordered() {
		parts = append(parts, doc.body)
	}
	return strings.Join(parts, combinedSeparator)
}

// OutputBundle maps each output file path (relative to the project root) to
// its final wrapped content. Writing the paths is the caller's job.
type OutputBundle map[string]string

// DeriveAll generates all four document bodies from the record.
func DeriveAll(rec AnalysisRecord) DocumentSet {
	return DocumentSet{
		Tech:          DeriveTech(rec),
		Structure:     DeriveStructure(rec),
		Product:       DeriveProduct(rec),
		BusinessRules: DeriveBusinessRules(rec),
	}
}
