package steering

import "strings"

// structureTrees holds the fixed directory diagram per framework. There is
// deliberately no next-pages-router entry; pages-router projects get the
// placeholder tree.
var structureTrees = map[Framework]string{
	FrameworkNextAppRouter: "```\n" +
		"├── app/                    # Next.js App Router\n" +
		"│   ├── api/               # API routes (Route Handlers)\n" +
		"│   ├── layout.tsx         # Root layout with providers\n" +
		"│   ├── page.tsx           # Main entry point\n" +
		"│   └── globals.css        # Global styles & Tailwind\n" +
		"│\n" +
		"├── components/            # React components\n" +
		"│   ├── ui/               # shadcn/ui primitives\n" +
		"│   └── *.tsx             # Feature components\n" +
		"│\n" +
		"├── hooks/                 # Custom React hooks\n" +
		"│\n" +
		"├── lib/                   # Utilities and core logic\n" +
		"│   ├── types.ts          # TypeScript interfaces\n" +
		"│   └── utils.ts          # Utility functions\n" +
		"│\n" +
		"└── public/               # Static assets\n" +
		"```",
	FrameworkLaravel: "```\n" +
		"├── app/\n" +
		"│   ├── Http/\n" +
		"│   │   ├── Controllers/   # Request handlers\n" +
		"│   │   └── Middleware/    # HTTP middleware\n" +
		"│   └── Models/            # Eloquent models\n" +
		"│\n" +
		"├── config/                # Configuration files\n" +
		"│\n" +
		"├── database/\n" +
		"│   └── migrations/        # Database migrations\n" +
		"│\n" +
		"├── resources/views/       # Blade templates\n" +
		"│\n" +
		"├── routes/\n" +
		"│   ├── web.php           # Web routes\n" +
		"│   └── api.php           # API routes\n" +
		"│\n" +
		"└── public/               # Public assets\n" +
		"```",
	FrameworkReact: "```\n" +
		"├── src/\n" +
		"│   ├── components/        # React components\n" +
		"│   ├── hooks/            # Custom hooks\n" +
		"│   ├── store/            # State management\n" +
		"│   ├── api/              # API services\n" +
		"│   ├── types/            # TypeScript types\n" +
		"│   └── App.tsx           # Root component\n" +
		"│\n" +
		"├── public/               # Static assets\n" +
		"└── vite.config.ts        # Vite configuration\n" +
		"```",
	FrameworkVue: "```\n" +
		"├── src/\n" +
		"│   ├── components/        # Vue components\n" +
		"│   ├── composables/      # Composition API hooks\n" +
		"│   ├── stores/           # Pinia stores\n" +
		"│   ├── router/           # Vue Router config\n" +
		"│   ├── types/            # TypeScript types\n" +
		"│   └── App.vue           # Root component\n" +
		"│\n" +
		"├── public/               # Static assets\n" +
		"└── vite.config.ts        # Vite configuration\n" +
		"```",
	FrameworkNuxt: "```\n" +
		"├── pages/                 # File-based routing\n" +
		"├── components/            # Auto-imported components\n" +
		"├── composables/          # Auto-imported composables\n" +
		"├── server/\n" +
		"│   └── api/              # Server API routes\n" +
		"├── public/               # Static assets\n" +
		"└── nuxt.config.ts        # Nuxt configuration\n" +
		"```",
}

const placeholderTree = "```\n# Project structure\n```"

// DeriveStructure renders the project-structure document: the framework's
// directory diagram followed by one subsection per recognized architecture
// pattern.
func DeriveStructure(rec AnalysisRecord) string {
	lines := []string{"# Project Structure\n"}

	tree, ok := structureTrees[rec.Framework]
	if !ok {
		tree = placeholderTree
	}
	lines = append(lines, tree, "")

	if p := rec.Patterns; !p.empty() {
		lines = append(lines, "\n## Architecture Patterns\n")
		if p.StateManagement != "" {
			lines = append(lines, "### State Management", "- "+p.StateManagement, "")
		}
		if p.ComponentPattern != "" {
			lines = append(lines, "### Component Patterns", "- "+p.ComponentPattern, "")
		}
		if p.APIPattern != "" {
			lines = append(lines, "### API Pattern", "- "+p.APIPattern, "")
		}
		if p.Styling != "" {
			lines = append(lines, "### Styling", "- "+p.Styling, "")
		}
	}

	return strings.Join(lines, "\n")
}
