// Package detect identifies a project's web framework from its on-disk
// signature files.
package detect

import (
	"os"
	"path/filepath"
	"strings"

	"steergen/internal/steering"
)

// Detection is the full probe result for one project root.
type Detection struct {
	Framework      steering.Framework `json:"framework"`
	ImportantFiles []string           `json:"importantFiles"`
	Supported      bool               `json:"supported"`
}

// Probe detects the framework and bundles it with the files worth reading
// for that framework.
func Probe(root string) Detection {
	fw := Detect(root)
	return Detection{
		Framework:      fw,
		ImportantFiles: ImportantFiles(fw),
		Supported:      fw != steering.FrameworkUnknown,
	}
}

// Detect probes signature files in priority order. Next.js wins over the
// Vite checks because a Next project's package.json also declares react;
// likewise Nuxt is checked before plain Vue.
func Detect(root string) steering.Framework {
	if hasFile(root, "next.config.js") || hasFile(root, "next.config.mjs") || hasFile(root, "next.config.ts") {
		return classifyNext(root)
	}

	if hasFile(root, "artisan") || fileContains(filepath.Join(root, "composer.json"), "laravel/framework") {
		return steering.FrameworkLaravel
	}

	if hasFile(root, "nuxt.config.js") || hasFile(root, "nuxt.config.ts") {
		return steering.FrameworkNuxt
	}

	vite := readFirst(root, "vite.config.ts", "vite.config.js", "vite.config.mjs")
	pkg := readOptional(filepath.Join(root, "package.json"))

	if strings.Contains(vite, "plugin-vue") || (declaresDep(pkg, "vue") && !declaresDep(pkg, "nuxt")) {
		return steering.FrameworkVue
	}
	if strings.Contains(vite, "plugin-react") || (declaresDep(pkg, "react") && !declaresDep(pkg, "next")) {
		return steering.FrameworkReact
	}

	return steering.FrameworkUnknown
}

// classifyNext splits the Next.js variants by router directory. Projects
// with neither directory are treated as app-router, the current default.
func classifyNext(root string) steering.Framework {
	if hasDir(root, "app") || hasDir(root, filepath.Join("src", "app")) {
		return steering.FrameworkNextAppRouter
	}
	if hasDir(root, "pages") || hasDir(root, filepath.Join("src", "pages")) {
		return steering.FrameworkNextPagesRouter
	}
	return steering.FrameworkNextAppRouter
}

// importantFiles lists, per framework, the files an analyzer should read
// first. Paths are relative to the project root.
var importantFiles = map[steering.Framework][]string{
	steering.FrameworkNextAppRouter: {
		"package.json", "next.config.js", "app/layout.tsx", "app/page.tsx",
		"lib/types.ts", "README.md", ".env.example",
	},
	steering.FrameworkNextPagesRouter: {
		"package.json", "next.config.js", "pages/_app.tsx", "pages/index.tsx",
		"README.md", ".env.example",
	},
	steering.FrameworkLaravel: {
		"composer.json", "artisan", "routes/web.php", "routes/api.php",
		"app/Models", "README.md", ".env.example",
	},
	steering.FrameworkReact: {
		"package.json", "vite.config.ts", "src/App.tsx", "src/main.tsx",
		"src/types", "README.md", ".env.example",
	},
	steering.FrameworkVue: {
		"package.json", "vite.config.ts", "src/App.vue", "src/main.ts",
		"README.md", ".env.example",
	},
	steering.FrameworkNuxt: {
		"package.json", "nuxt.config.ts", "app.vue", "pages/index.vue",
		"README.md", ".env.example",
	},
}

// ImportantFiles returns the fixed read list for a framework. Unknown
// frameworks still get the two files every project tends to have.
func ImportantFiles(fw steering.Framework) []string {
	if files, ok := importantFiles[fw]; ok {
		return append([]string(nil), files...)
	}
	return []string{"package.json", "README.md"}
}

// FrameworkInfo is one row of the supported-frameworks registry.
type FrameworkInfo struct {
	ID         steering.Framework `json:"id"`
	Name       string             `json:"name"`
	Signatures []string           `json:"signatures"`
}

// Frameworks returns the registry rows in detection-priority order.
func Frameworks() []FrameworkInfo {
	rows := []struct {
		id         steering.Framework
		signatures []string
	}{
		{steering.FrameworkNextAppRouter, []string{"next.config.js", "next.config.mjs", "next.config.ts", "app/ directory"}},
		{steering.FrameworkNextPagesRouter, []string{"next.config.js", "next.config.mjs", "next.config.ts", "pages/ directory"}},
		{steering.FrameworkLaravel, []string{"artisan", "composer.json with laravel/framework"}},
		{steering.FrameworkNuxt, []string{"nuxt.config.js", "nuxt.config.ts"}},
		{steering.FrameworkVue, []string{"vite.config with vue plugin", "package.json with vue"}},
		{steering.FrameworkReact, []string{"vite.config with react plugin", "package.json with react"}},
	}

	infos := make([]FrameworkInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, FrameworkInfo{
			ID:         row.id,
			Name:       row.id.DisplayName(),
			Signatures: row.signatures,
		})
	}
	return infos
}

func hasFile(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && !info.IsDir()
}

func hasDir(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, rel))
	return err == nil && info.IsDir()
}

// readOptional returns the file's content, or "" when it cannot be read.
func readOptional(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// readFirst returns the content of the first candidate that exists.
func readFirst(root string, names ...string) string {
	for _, name := range names {
		if content := readOptional(filepath.Join(root, name)); content != "" {
			return content
		}
	}
	return ""
}

func fileContains(path, needle string) bool {
	return strings.Contains(readOptional(path), needle)
}

// declaresDep reports whether a package.json body mentions the dependency
// as a quoted key. The quotes keep "next" from matching "next-themes".
func declaresDep(pkg, name string) bool {
	return strings.Contains(pkg, `"`+name+`"`)
}
