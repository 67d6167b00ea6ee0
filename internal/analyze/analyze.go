// Package analyze implements the six category analyzers. Each analyzer
// is a pure function of its inputs: no shared mutable state, safe to call
// concurrently for different requests, and idempotent for identical
// input.
package analyze

import (
	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/language"
)

// Result is one category analyzer's output.
type Result struct {
	Score    float64
	Errors   []accuracy.ErrorRecord
	Feedback []string
	Metrics  accuracy.CategoryMetrics
}

// Neutral returns the conservative result used when a category cannot be
// evaluated (non-English content, for instance). The score is mid-range
// by policy: neither rewarding nor punishing what was never assessed.
func Neutral(note string) Result {
	return Result{
		Score:    language.NeutralScore,
		Feedback: []string{note},
		Metrics: accuracy.CategoryMetrics{
			Score: language.NeutralScore,
		},
	}
}

// finish fills the shared metric fields from the computed score and
// error list.
func finish(r Result) Result {
	r.Score = accuracy.ClampScore(r.Score)
	r.Metrics.Score = r.Score
	r.Metrics.ErrorCount = len(r.Errors)
	if len(r.Errors) > 0 {
		r.Metrics.SeverityCounts = accuracy.SeverityHistogram(r.Errors)
	}
	return r
}
