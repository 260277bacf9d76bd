package steering

import "strings"

// classify maps one dependency within its category to zero or more
// human-readable capability labels. Unrecognized Database entries with a
// purpose fall back to the purpose text; entries with neither a known match
// nor a purpose yield nothing and are silently dropped.
func classify(dep Dependency, category string) []string {
	switch category {
	case CategoryDatabase:
		return classifyDatabase(dep)
	case CategoryForms:
		if last(dep.Name) == "zod" {
			return []string{"**Validation**: Zod (schema validation)"}
		}
		if strings.Contains(dep.Name, "react-hook-form") {
			return []string{"**Forms**: React Hook Form"}
		}
	case CategoryState:
		switch {
		case dep.Name == "zustand":
			return []string{"**State Management**: Zustand"}
		case dep.Name == "jotai":
			return []string{"**State Management**: Jotai (atomic)"}
		case strings.Contains(dep.Name, "@reduxjs/toolkit"):
			return []string{"**State Management**: Redux Toolkit"}
		}
	case CategoryDataFetching:
		if strings.Contains(dep.Name, "@tanstack/react-query") {
			return []string{"**Data Fetching**: TanStack Query"}
		}
		if dep.Name == "swr" {
			return []string{"**Data Fetching**: SWR"}
		}
	case CategoryUtilities:
		if dep.Name == "date-fns" {
			return []string{"**Date Utilities**: date-fns"}
		}
		if dep.Name == "dayjs" {
			return []string{"**Date Utilities**: Day.js"}
		}
	case CategoryCharts:
		return []string{"**Charts**: " + dep.Name}
	case CategoryNotifications:
		if dep.Name == "sonner" {
			return []string{"**Notifications**: Sonner (toast)"}
		}
		return []string{"**Notifications**: " + dep.Name}
	case CategoryTheme:
		if dep.Name == "next-themes" {
			return []string{"**Theming**: next-themes"}
		}
	}
	return nil
}

// classifyDatabase resolves a Database-category dependency. Supabase expands
// to three labels because it covers database, auth, and storage at once.
func classifyDatabase(dep Dependency) []string {
	lower := strings.ToLower(dep.Name)
	switch {
	case strings.Contains(lower, "supabase"):
		return []string{
			"**Database**: Supabase (PostgreSQL)",
			"**Auth**: Supabase Auth",
			"**Storage**: Supabase Storage",
		}
	case strings.Contains(lower, "prisma"):
		return []string{"**ORM**: Prisma"}
	case strings.Contains(lower, "drizzle"):
		return []string{"**ORM**: Drizzle ORM"}
	case dep.Purpose != "":
		return []string{dep.Purpose}
	}
	return nil
}

// last returns the final path segment of a scoped package name.
func last(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// uiStack is the cross-section intermediate computed once from the
// "UI & Styling" entries and consumed by both the UI section and the
// technical-constraints section of the technology document.
type uiStack struct {
	hasTailwind bool
	radixCount  int
}

func computeUIStack(deps []Dependency) uiStack {
	var u uiStack
	for _, dep := range deps {
		if strings.Contains(strings.ToLower(dep.Name), "tailwind") {
			u.hasTailwind = true
		}
		if strings.Contains(dep.Name, "@radix-ui") {
			u.radixCount++
		}
	}
	return u
}

// lines renders the aggregate UI stack labels. More than five Radix
// primitives alongside Tailwind reads as shadcn/ui; the threshold is a
// strict greater-than.
func (u uiStack) lines() []string {
	var out []string
	if u.hasTailwind {
		out = append(out, "- **CSS Framework**: Tailwind CSS (utility-first)")
	}
	if u.radixCount > 5 && u.hasTailwind {
		out = append(out, "- **Component Library**: shadcn/ui (built on Radix UI)")
	} else if u.radixCount > 0 {
		out = append(out, "- **UI Primitives**: Radix UI")
	}
	return out
}

// iconLabel matches the two recognized icon packages by exact name.
func iconLabel(dep Dependency) (string, bool) {
	switch dep.Name {
	case "lucide-react":
		return "**Icons**: Lucide React", true
	case "@heroicons/react":
		return "**Icons**: Heroicons", true
	}
	return "", false
}

// fontLabel matches the recognized font package by exact name. Font packages
// are categorized under Other but rendered inside the UI section.
func fontLabel(dep Dependency) (string, bool) {
	if dep.Name == "geist" {
		return "**Font**: Geist font family", true
	}
	return "", false
}
