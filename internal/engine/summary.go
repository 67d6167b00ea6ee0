package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Summary renders the result as human-readable lines for the CLI.
func (r *Result) Summary() []string {
	cur := r.Pair.Current
	lines := []string{
		fmt.Sprintf("overall: %.0f (adjusted %.0f)", cur.Overall, cur.AdjustedOverall),
	}
	if r.Pair.Weighted.Overall != cur.Overall {
		lines = append(lines, fmt.Sprintf("weighted: %.0f over %d calculations",
			r.Pair.Weighted.Overall, r.Pair.Weighted.CalculationCount))
	}

	lines = append(lines,
		fmt.Sprintf("grammar %.0f  spelling %.0f  vocabulary %.0f  fluency %.0f  punctuation %.0f  capitalization %.0f",
			cur.Grammar, cur.Spelling, cur.Vocabulary, cur.Fluency, cur.Punctuation, cur.Capitalization))

	if cur.TotalErrors > 0 {
		lines = append(lines, fmt.Sprintf("issues: %d (%d critical)%s",
			cur.TotalErrors, cur.CriticalErrors, kindBreakdown(r)))
	}

	for _, c := range r.Contributions {
		tag := ""
		if c.Fallback {
			tag = " [fallback]"
		}
		lines = append(lines, fmt.Sprintf("detector %s: %.0f (confidence %.2f)%s",
			c.Source, c.Score, c.Confidence, tag))
	}

	for _, f := range r.Feedback {
		lines = append(lines, "- "+f)
	}
	return lines
}

func kindBreakdown(r *Result) string {
	if len(r.Pair.Current.ErrorsByKind) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Pair.Current.ErrorsByKind))
	for kind, n := range r.Pair.Current.ErrorsByKind {
		parts = append(parts, fmt.Sprintf("%s %d", kind, n))
	}
	sort.Strings(parts)
	return " [" + strings.Join(parts, ", ") + "]"
}
