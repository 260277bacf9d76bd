package analyze

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"steergen/internal/steering"
)

// depRule assigns one npm package to a category with a purpose annotation.
// Exact rules match the whole name; substring rules match anywhere.
type depRule struct {
	name     string
	substr   bool
	category string
	purpose  string
}

// depRules is checked in order; the first hit wins. Framework runtimes fall
// through to Other so they never pollute the capability sections.
var depRules = []depRule{
	// Database
	{name: "supabase", substr: true, category: steering.CategoryDatabase, purpose: "Supabase client (PostgreSQL, auth, storage)"},
	{name: "prisma", substr: true, category: steering.CategoryDatabase, purpose: "Prisma ORM"},
	{name: "drizzle", substr: true, category: steering.CategoryDatabase, purpose: "Drizzle ORM"},
	{name: "mongoose", category: steering.CategoryDatabase, purpose: "**ODM**: Mongoose (MongoDB)"},
	{name: "mongodb", category: steering.CategoryDatabase, purpose: "**Database**: MongoDB driver"},
	{name: "pg", category: steering.CategoryDatabase, purpose: "**Database**: PostgreSQL driver"},
	{name: "mysql2", category: steering.CategoryDatabase, purpose: "**Database**: MySQL driver"},
	{name: "better-sqlite3", category: steering.CategoryDatabase, purpose: "**Database**: SQLite driver"},
	{name: "firebase", substr: true, category: steering.CategoryDatabase, purpose: "**Backend**: Firebase"},

	// UI & Styling
	{name: "tailwind", substr: true, category: steering.CategoryUI, purpose: "Utility-first CSS"},
	{name: "@radix-ui", substr: true, category: steering.CategoryUI, purpose: "Accessible UI primitives"},
	{name: "lucide-react", category: steering.CategoryUI, purpose: "Icon set"},
	{name: "@heroicons/react", category: steering.CategoryUI, purpose: "Icon set"},
	{name: "clsx", category: steering.CategoryUI, purpose: "Class name composition"},
	{name: "class-variance-authority", category: steering.CategoryUI, purpose: "Variant-driven class names"},
	{name: "styled-components", category: steering.CategoryUI, purpose: "CSS-in-JS"},
	{name: "@emotion", substr: true, category: steering.CategoryUI, purpose: "CSS-in-JS"},
	{name: "sass", category: steering.CategoryUI, purpose: "SCSS preprocessing"},
	{name: "framer-motion", category: steering.CategoryUI, purpose: "Animation"},

	// Forms & validation
	{name: "zod", category: steering.CategoryForms, purpose: "Schema validation"},
	{name: "react-hook-form", category: steering.CategoryForms, purpose: "Form state management"},
	{name: "@hookform", substr: true, category: steering.CategoryForms, purpose: "Form resolver glue"},
	{name: "vee-validate", category: steering.CategoryForms, purpose: "Vue form validation"},
	{name: "yup", category: steering.CategoryForms, purpose: "Schema validation"},

	// State
	{name: "zustand", category: steering.CategoryState, purpose: "Global state store"},
	{name: "jotai", category: steering.CategoryState, purpose: "Atomic state"},
	{name: "@reduxjs/toolkit", category: steering.CategoryState, purpose: "Redux state"},
	{name: "react-redux", category: steering.CategoryState, purpose: "Redux bindings"},
	{name: "pinia", category: steering.CategoryState, purpose: "Vue state store"},
	{name: "vuex", category: steering.CategoryState, purpose: "Vue state store"},
	{name: "recoil", category: steering.CategoryState, purpose: "Atomic state"},

	// Data fetching
	{name: "@tanstack/react-query", category: steering.CategoryDataFetching, purpose: "Server-state caching"},
	{name: "@tanstack/vue-query", category: steering.CategoryDataFetching, purpose: "Server-state caching"},
	{name: "swr", category: steering.CategoryDataFetching, purpose: "Stale-while-revalidate fetching"},
	{name: "axios", category: steering.CategoryDataFetching, purpose: "HTTP client"},
	{name: "ky", category: steering.CategoryDataFetching, purpose: "HTTP client"},
	{name: "@apollo/client", category: steering.CategoryDataFetching, purpose: "GraphQL client"},
	{name: "graphql-request", category: steering.CategoryDataFetching, purpose: "GraphQL client"},

	// Utilities
	{name: "date-fns", category: steering.CategoryUtilities, purpose: "Date utilities"},
	{name: "dayjs", category: steering.CategoryUtilities, purpose: "Date utilities"},
	{name: "moment", category: steering.CategoryUtilities, purpose: "Date utilities"},
	{name: "lodash", substr: true, category: steering.CategoryUtilities, purpose: "General utilities"},
	{name: "uuid", category: steering.CategoryUtilities, purpose: "ID generation"},
	{name: "nanoid", category: steering.CategoryUtilities, purpose: "ID generation"},

	// Charts
	{name: "recharts", category: steering.CategoryCharts, purpose: "Charting"},
	{name: "chart.js", category: steering.CategoryCharts, purpose: "Charting"},
	{name: "d3", category: steering.CategoryCharts, purpose: "Data visualization"},
	{name: "victory", category: steering.CategoryCharts, purpose: "Charting"},
	{name: "@nivo", substr: true, category: steering.CategoryCharts, purpose: "Charting"},
	{name: "apexcharts", substr: true, category: steering.CategoryCharts, purpose: "Charting"},

	// Notifications
	{name: "sonner", category: steering.CategoryNotifications, purpose: "Toast notifications"},
	{name: "react-hot-toast", category: steering.CategoryNotifications, purpose: "Toast notifications"},
	{name: "react-toastify", category: steering.CategoryNotifications, purpose: "Toast notifications"},
	{name: "notistack", category: steering.CategoryNotifications, purpose: "Snackbar notifications"},
	{name: "vue-toastification", category: steering.CategoryNotifications, purpose: "Toast notifications"},

	// Theme
	{name: "next-themes", category: steering.CategoryTheme, purpose: "Theme switching"},
}

func (r depRule) matches(name string) bool {
	if r.substr {
		return strings.Contains(name, r.name)
	}
	return name == r.name
}

// composerRules categorize PHP packages from composer.json.
var composerRules = []depRule{
	{name: "laravel/framework", category: steering.CategoryOther, purpose: "Laravel framework"},
	{name: "doctrine", substr: true, category: steering.CategoryDatabase, purpose: "**Database**: Doctrine DBAL"},
	{name: "livewire", substr: true, category: steering.CategoryOther, purpose: "Livewire components"},
	{name: "inertiajs", substr: true, category: steering.CategoryOther, purpose: "Inertia.js bridge"},
	{name: "laravel/sanctum", category: steering.CategoryOther, purpose: "API token auth"},
}

// CategorizeDependencies reads package.json (dependencies plus
// devDependencies) and composer.json and buckets every entry into the ten
// category labels. Names are emitted in sorted order per category so output
// is deterministic. The map is never nil.
func CategorizeDependencies(root string) map[string][]steering.Dependency {
	categorized := make(map[string][]steering.Dependency)

	for _, name := range sortedDepNames(readPackageDeps(root)) {
		rule, ok := matchRule(name, depRules)
		if !ok {
			categorized[steering.CategoryOther] = append(categorized[steering.CategoryOther],
				steering.Dependency{Name: name})
			continue
		}
		categorized[rule.category] = append(categorized[rule.category],
			steering.Dependency{Name: name, Purpose: rule.purpose})
	}

	for _, name := range sortedDepNames(readComposerDeps(root)) {
		rule, ok := matchRule(name, composerRules)
		if !ok {
			categorized[steering.CategoryOther] = append(categorized[steering.CategoryOther],
				steering.Dependency{Name: name})
			continue
		}
		categorized[rule.category] = append(categorized[rule.category],
			steering.Dependency{Name: name, Purpose: rule.purpose})
	}

	return categorized
}

func matchRule(name string, rules []depRule) (depRule, bool) {
	for _, rule := range rules {
		if rule.matches(name) {
			return rule, true
		}
	}
	return depRule{}, false
}

func readPackageDeps(root string) map[string]string {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	deps := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, version := range manifest.Dependencies {
		deps[name] = version
	}
	for name, version := range manifest.DevDependencies {
		deps[name] = version
	}
	return deps
}

func readComposerDeps(root string) map[string]string {
	data, err := os.ReadFile(filepath.Join(root, "composer.json"))
	if err != nil {
		return nil
	}
	var manifest struct {
		Require map[string]string `json:"require"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	deps := make(map[string]string, len(manifest.Require))
	for name, version := range manifest.Require {
		if name == "php" || strings.HasPrefix(name, "ext-") {
			continue
		}
		deps[name] = version
	}
	return deps
}

func sortedDepNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
