package steering

import (
	"context"
	"fmt"
)

// Enricher produces the fully categorized analysis record for a project when
// the caller supplied only the shallow form. The deep analyzer implements
// this; the engine itself never performs the scan.
type Enricher interface {
	Enrich(ctx context.Context, rec AnalysisRecord) (AnalysisRecord, error)
}

// Engine synthesizes steering-document bundles from analysis records.
type Engine struct {
	enricher Enricher
}

// NewEngine returns an Engine. The enricher may be nil when callers always
// supply deep records; shallow records are then rendered as-is.
func NewEngine(enricher Enricher) *Engine {
	return &Engine{enricher: enricher}
}

// Synthesize turns an analysis record into the per-target output bundle.
// Records that already carry categorized dependencies are rendered directly;
// shallow records (nil CategorizedDependencies) are first enriched, with the
// caller's framework, scripts, env vars, and components kept authoritative
// over the enriched values. The output contract is identical on both paths,
// and only enrichment I/O can fail.
func (e *Engine) Synthesize(ctx context.Context, rec AnalysisRecord, target Target) (OutputBundle, error) {
	if rec.CategorizedDependencies == nil && e.enricher != nil {
		enriched, err := e.enricher.Enrich(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("deep analysis: %w", err)
		}
		enriched.Framework = rec.Framework
		enriched.Scripts = rec.Scripts
		enriched.EnvVars = rec.EnvVars
		enriched.Components = rec.Components
		rec = enriched
	}
	return SynthesizeDeep(rec, target), nil
}

// SynthesizeDeep packages an already-deep record without any enrichment
// pass. It cannot fail.
func SynthesizeDeep(rec AnalysisRecord, target Target) OutputBundle {
	return Adapt(DeriveAll(rec), rec.Framework, target)
}
