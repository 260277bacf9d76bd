package steering

import "fmt"

// wrapAlways prepends the always-load front-matter used by multi-file
// targets. Wrapping never mutates the body used for other targets.
func wrapAlways(content string) string {
	return "---\ninclusion: always\n---\n" + content
}

// wrapDescribed prepends the description/always-apply front-matter used by
// the cursor target.
func wrapDescribed(content, description string) string {
	return fmt.Sprintf("---\ndescription: %s\nalwaysApply: true\n---\n%s", description, content)
}

// Adapt packages the document set for one target. Multi-file targets get
// each document wrapped and placed individually; single-file targets get the
// combined body, wrapped only for cursor. Unknown target ids fall back to
// the plain markdown target.
func Adapt(docs DocumentSet, fw Framework, target Target) OutputBundle {
	cfg := LookupTarget(target)

	if cfg.MultipleFiles {
		bundle := make(OutputBundle, 4)
		for _, doc := range docs.ordered() {
			bundle[cfg.Dir+doc.key] = wrapAlways(doc.body)
		}
		return bundle
	}

	combined := docs.Combined()
	if target == TargetCursor {
		description := fmt.Sprintf("Steering rules for %s project", fw.orUnknown().DisplayName())
		return OutputBundle{cfg.Dir + cfg.Filename: wrapDescribed(combined, description)}
	}
	return OutputBundle{cfg.Dir + cfg.Filename: combined}
}
