package steering

// Target identifies a steering-document consumer (an IDE or coding
// assistant). The set is closed; LookupTarget corrects anything else to the
// generic markdown target.
type Target string

const (
	TargetKiro     Target = "kiro"
	TargetCursor   Target = "cursor"
	TargetCopilot  Target = "copilot"
	TargetWindsurf Target = "windsurf"
	TargetCline    Target = "cline"
	TargetAider    Target = "aider"
	TargetMarkdown Target = "markdown"
)

// TargetConfig describes where a target expects its steering files and
// whether it takes the documents separately or as one combined file.
type TargetConfig struct {
	Dir           string
	Filename      string
	MultipleFiles bool
	Description   string
}

// Path returns the target's on-disk location pattern for listings.
func (c TargetConfig) Path() string {
	if c.Filename == "" {
		return c.Dir + "*.md"
	}
	return c.Dir + c.Filename
}

// targetConfigs is the closed registry of supported targets.
var targetConfigs = map[Target]TargetConfig{
	TargetKiro: {
		Dir:           ".kiro/steering/",
		MultipleFiles: true,
		Description:   "Kiro IDE - Multiple .md files in .kiro/steering/",
	},
	TargetCursor: {
		Dir:         ".cursor/rules/",
		Filename:    "project.mdc",
		Description: "Cursor IDE - .cursor/rules/*.mdc",
	},
	TargetCopilot: {
		Dir:         ".github/",
		Filename:    "copilot-instructions.md",
		Description: "GitHub Copilot - .github/copilot-instructions.md",
	},
	TargetWindsurf: {
		Filename:    ".windsurfrules",
		Description: "Windsurf/Codeium - .windsurfrules in root",
	},
	TargetCline: {
		Filename:    ".clinerules",
		Description: "Cline - .clinerules in root",
	},
	TargetAider: {
		Filename:    "CONVENTIONS.md",
		Description: "Aider - CONVENTIONS.md",
	},
	TargetMarkdown: {
		Filename:    "STEERING.md",
		Description: "Generic markdown - Single STEERING.md file",
	},
}

// Targets returns the registry ids in stable listing order.
func Targets() []Target {
	return []Target{
		TargetKiro, TargetCursor, TargetCopilot, TargetWindsurf,
		TargetCline, TargetAider, TargetMarkdown,
	}
}

// ValidTarget reports whether id names a registered target.
func ValidTarget(id Target) bool {
	_, ok := targetConfigs[id]
	return ok
}

// LookupTarget resolves a target id, silently correcting anything outside
// the closed set to the generic markdown target.
func LookupTarget(id Target) TargetConfig {
	if cfg, ok := targetConfigs[id]; ok {
		return cfg
	}
	return targetConfigs[TargetMarkdown]
}
