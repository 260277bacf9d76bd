package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReadme_Full(t *testing.T) {
	content := `# Task Tracker

![build](https://img.shields.io/badge/build-passing-green)

A kanban board for small teams.
Built for speed.

## Features

- Drag and drop boards
- Realtime sync
* Keyboard shortcuts

## Installation

- npm install
`
	readme := parseReadme(content)

	assert.Equal(t, "Task Tracker", readme.Title)
	assert.Equal(t, "A kanban board for small teams. Built for speed.", readme.Description)
	assert.Equal(t, []string{"Drag and drop boards", "Realtime sync", "Keyboard shortcuts"}, readme.Features)
}

func TestParseReadme_DescriptionStopsAtBlankLine(t *testing.T) {
	content := "# App\n\nFirst paragraph only.\n\nSecond paragraph ignored.\n"
	readme := parseReadme(content)
	assert.Equal(t, "First paragraph only.", readme.Description)
}

func TestParseReadme_SkipsNonProse(t *testing.T) {
	content := strings.Join([]string{
		"# App",
		"",
		"[![ci](badge.svg)](link)",
		"> a quote",
		"| a | table |",
		"The real description.",
		"",
	}, "\n")
	readme := parseReadme(content)
	assert.Equal(t, "The real description.", readme.Description)
}

func TestParseReadme_FeatureCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("# App\n\n## Features\n\n")
	for i := 0; i < 15; i++ {
		b.WriteString("- feature\n")
	}
	readme := parseReadme(b.String())
	assert.Len(t, readme.Features, 10)
}

func TestParseReadme_NoTitle(t *testing.T) {
	readme := parseReadme("Just some text.\n")
	assert.Empty(t, readme.Title)
	assert.Equal(t, "Just some text.", readme.Description)
}

func TestParseReadme_KeyFeaturesHeading(t *testing.T) {
	content := "# App\n\n## Key Features\n\n- One\n- Two\n"
	readme := parseReadme(content)
	assert.Equal(t, []string{"One", "Two"}, readme.Features)
}

func TestReadReadme_Missing(t *testing.T) {
	assert.Zero(t, ReadReadme(t.TempDir()))
}

func TestReadReadme_FromDisk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Disk App\n\nLoaded from disk.\n")
	readme := ReadReadme(root)
	assert.Equal(t, "Disk App", readme.Title)
	assert.Equal(t, "Loaded from disk.", readme.Description)
}
