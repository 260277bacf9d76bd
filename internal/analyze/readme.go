package analyze

import (
	"os"
	"path/filepath"
	"strings"

	"steergen/internal/steering"
)

// maxReadmeFeatures caps the feature bullets carried into documents.
const maxReadmeFeatures = 10

// ReadReadme loads and parses the project README. A missing file yields the
// zero value.
func ReadReadme(root string) steering.Readme {
	for _, name := range []string{"README.md", "readme.md", "Readme.md"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err == nil {
			return parseReadme(string(data))
		}
	}
	return steering.Readme{}
}

// parseReadme extracts the title (first h1), the first prose paragraph, and
// the bullets under a Features-like heading.
func parseReadme(content string) steering.Readme {
	var readme steering.Readme
	lines := strings.Split(content, "\n")

	inFeatures := false
	var description []string
	descriptionDone := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "#") {
			heading := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if readme.Title == "" && strings.HasPrefix(line, "# ") {
				readme.Title = heading
				continue
			}
			inFeatures = isFeatureHeading(heading)
			if len(description) > 0 {
				descriptionDone = true
			}
			continue
		}

		if inFeatures {
			if bullet, ok := bulletText(line); ok && len(readme.Features) < maxReadmeFeatures {
				readme.Features = append(readme.Features, bullet)
			}
			continue
		}

		if descriptionDone {
			continue
		}
		if line == "" {
			if len(description) > 0 {
				descriptionDone = true
			}
			continue
		}
		if isProse(line) {
			description = append(description, line)
		}
	}

	readme.Description = strings.Join(description, " ")
	return readme
}

func isFeatureHeading(heading string) bool {
	return strings.Contains(strings.ToLower(heading), "feature")
}

func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, marker) {
			if text := strings.TrimSpace(strings.TrimPrefix(line, marker)); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// isProse filters out badges, quotes, tables, fences, and list items so the
// description is the first real paragraph.
func isProse(line string) bool {
	switch line[0] {
	case '!', '[', '>', '|', '`', '-', '*', '<':
		return false
	}
	return true
}
