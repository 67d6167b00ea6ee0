package detect

import (
	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/analyze"
)

// MergeGrammar reconciles the pattern-rule grammar result with the
// grammar service contribution. The service is authoritative: its score
// replaces the pattern score and its records take precedence on dedupe.
// Fallback contributions are not authoritative and leave the local
// result untouched.
//
// corroborated reports whether another source (speller, tutor evidence)
// found issues of its own. A service that saw zero errors forces a
// perfect grammar score only when nothing corroborates the local
// findings.
func MergeGrammar(local analyze.Result, c accuracy.DetectorContribution, corroborated bool) analyze.Result {
	if c.Fallback {
		return local
	}

	out := local
	out.Errors = accuracy.DedupeErrors(append(append([]accuracy.ErrorRecord{}, c.Errors...), local.Errors...))

	switch {
	case c.ErrorCount > 0:
		out.Score = accuracy.ClampScore(c.Score)
	case corroborated:
		// Service saw nothing but someone else did: keep the local
		// score rather than forcing perfection.
	default:
		out.Score = 100
	}

	out.Metrics.Score = out.Score
	out.Metrics.ErrorCount = len(out.Errors)
	if len(out.Errors) > 0 {
		out.Metrics.SeverityCounts = accuracy.SeverityHistogram(out.Errors)
	} else {
		out.Metrics.SeverityCounts = nil
	}
	return out
}
