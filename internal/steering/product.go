package steering

import (
	"fmt"
	"strings"
)

// maxProductEntities caps the Core Entities list.
const maxProductEntities = 6

// DeriveProduct renders the product-overview document from README metadata
// and the leading domain entities. README titles that read like deployment
// banners (lowercase form contains "deploy") are suppressed rather than
// echoed as the product title.
func DeriveProduct(rec AnalysisRecord) string {
	lines := []string{"# Product Overview\n"}

	readme := rec.Readme
	if readme.Title != "" && !strings.Contains(strings.ToLower(readme.Title), "deploy") {
		lines = append(lines, readme.Title+"\n")
	}
	if readme.Description != "" {
		lines = append(lines, readme.Description, "")
	}
	if len(readme.Features) > 0 {
		lines = append(lines, "## Features\n")
		for _, feature := range readme.Features {
			lines = append(lines, "- "+feature)
		}
		lines = append(lines, "")
	}

	if len(rec.Entities) > 0 {
		lines = append(lines, "## Core Entities\n")
		for _, entity := range rec.Entities[:min(maxProductEntities, len(rec.Entities))] {
			if entity.Name == "" {
				continue
			}
			if entity.Description != "" {
				lines = append(lines, fmt.Sprintf("- **%s**: %s", entity.Name, entity.Description))
			} else {
				lines = append(lines, fmt.Sprintf("- **%s**", entity.Name))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
