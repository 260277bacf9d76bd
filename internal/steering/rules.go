package steering

import (
	"fmt"
	"strings"
)

const (
	// maxRuleEntities caps the Data Entities subsections.
	maxRuleEntities = 5
	// maxEntityFields caps the rows of each entity table.
	maxEntityFields = 10
	// maxFieldTypeLen caps the rendered type expression.
	maxFieldTypeLen = 30
)

// DeriveBusinessRules renders the business-rules document: one subsection
// per status enumeration, then a field table per leading entity. The Data
// Entities heading appears whenever any entities exist, even if none has
// both a name and fields.
func DeriveBusinessRules(rec AnalysisRecord) string {
	lines := []string{"# Business Rules\n"}

	if len(rec.StatusEnums) > 0 {
		lines = append(lines, "## Status Values\n")
		for _, enum := range rec.StatusEnums {
			lines = append(lines, "### "+enum.Name)
			for _, value := range enum.Values {
				lines = append(lines, fmt.Sprintf("- `%s`", value))
			}
			lines = append(lines, "")
		}
	}

	if len(rec.Entities) > 0 {
		lines = append(lines, "## Data Entities\n")
		for _, entity := range rec.Entities[:min(maxRuleEntities, len(rec.Entities))] {
			if entity.Name == "" || len(entity.Fields) == 0 {
				continue
			}
			lines = append(lines, "### "+entity.Name+"\n")
			lines = append(lines, "| Field | Type | Required |", "|-------|------|----------|")
			for _, field := range entity.Fields[:min(maxEntityFields, len(entity.Fields))] {
				lines = append(lines, fmt.Sprintf("| %s | `%s` | %s |",
					field.Name, truncateType(field.Type), requiredMark(field.Optional)))
			}
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

// truncateType keeps the first line of a type expression, capped at
// maxFieldTypeLen characters so multi-line object types stay tabular.
func truncateType(t string) string {
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[:i]
	}
	if r := []rune(t); len(r) > maxFieldTypeLen {
		t = string(r[:maxFieldTypeLen])
	}
	return t
}

func requiredMark(optional bool) string {
	if optional {
		return "No"
	}
	return "Yes"
}
