package analyze

import (
	"fmt"
	"strings"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/language"
	"github.com/kavya/lexis/internal/textutil"
	"github.com/kavya/lexis/internal/tier"
)

const (
	// grammarPenaltyScale converts a normalized penalty into score points.
	grammarPenaltyScale = 6.0

	// perRulePenaltyCap bounds any single rule's total contribution, so a
	// rule that fires repeatedly (or an attacker padding one pattern)
	// cannot sink the score alone.
	perRulePenaltyCap = 12.0

	// repeatDamping scales each additional match of the same rule. The
	// first match counts in full, the second at 0.6, the third at 0.36…
	repeatDamping = 0.6

	// wordsPerNormalizerUnit and sentencesPerNormalizerUnit build the
	// length normalizer dividing the raw penalty, so longer messages are
	// not punished for having more surface area.
	wordsPerNormalizerUnit     = 12.0
	sentencesPerNormalizerUnit = 2.0
)

// Grammar scores the message against the ordered rule table plus
// structural heuristics. The language context may relax (suppress
// low/medium findings) or skip the analysis entirely.
func Grammar(message string, lang language.Context, caps tier.Capabilities) Result {
	if lang.SkipEnglishChecks {
		return Neutral("grammar not evaluated: " + strings.Join(lang.Notes, "; "))
	}

	var (
		errors   []accuracy.ErrorRecord
		feedback []string
		penalty  float64
	)

	for _, rule := range grammarRules {
		if rule.Advanced && caps.Explanations == tier.DepthNone {
			continue
		}
		if lang.RelaxGrammar && rule.Severity.AtMost(accuracy.SeverityMedium) {
			continue
		}

		matches := rule.Pattern.FindAllStringIndex(message, -1)
		if len(matches) == 0 {
			continue
		}

		rulePenalty := 0.0
		factor := 1.0
		for i, m := range matches {
			rulePenalty += rule.Severity.Weight() * rule.TypeModifier * factor
			factor *= repeatDamping

			errors = append(errors, ruleError(rule, message, m, caps))
			if i == 0 {
				feedback = append(feedback, fmt.Sprintf("%s: %s", rule.Message, rule.Suggestion))
			}
		}
		if rulePenalty > perRulePenaltyCap {
			rulePenalty = perRulePenaltyCap
		}
		penalty += rulePenalty
	}

	structErrors, structPenalty, structFeedback := structuralChecks(message, lang)
	errors = append(errors, structErrors...)
	penalty += structPenalty
	feedback = append(feedback, structFeedback...)

	words := textutil.Words(message)
	sentences := textutil.Sentences(message)
	normalizer := float64(len(words))/wordsPerNormalizerUnit +
		float64(len(sentences))/sentencesPerNormalizerUnit
	if normalizer < 1 {
		normalizer = 1
	}

	normalized := penalty / normalizer
	score := accuracy.ClampScore(100 - grammarPenaltyScale*normalized)

	return finish(Result{
		Score:    score,
		Errors:   accuracy.DedupeErrors(errors),
		Feedback: feedback,
		Metrics: accuracy.CategoryMetrics{
			DominantPatterns: dominantRules(errors),
			Details: map[string]float64{
				"weighted_penalty":  penalty,
				"normalized_impact": normalized,
			},
		},
	})
}

func ruleError(rule grammarRule, message string, match []int, caps tier.Capabilities) accuracy.ErrorRecord {
	rec := accuracy.ErrorRecord{
		Kind:       accuracy.KindGrammar,
		Severity:   rule.Severity,
		Message:    rule.Message,
		Span:       &accuracy.Span{Start: match[0], End: match[1]},
		Matched:    message[match[0]:match[1]],
		Suggestion: rule.Suggestion,
		RuleID:     rule.ID,
	}
	if caps.Explanations != tier.DepthNone {
		rec.Explanation = rule.Explanation
		rec.Examples = rule.Examples
	}
	return rec
}

// structuralChecks covers what patterns alone cannot: repeated words and
// sentence fragments.
func structuralChecks(message string, lang language.Context) ([]accuracy.ErrorRecord, float64, []string) {
	var (
		errors   []accuracy.ErrorRecord
		feedback []string
		penalty  float64
	)

	// Consecutive repeated words ("the the store"). RE2 has no
	// backreferences, so this stays a loop.
	if !lang.RelaxGrammar {
		words := textutil.LowerWords(message)
		reported := false
		for i := 1; i < len(words); i++ {
			// "that that" and "had had" are legitimate sequences.
			if words[i] != words[i-1] || words[i] == "that" || words[i] == "had" {
				continue
			}
			errors = append(errors, accuracy.ErrorRecord{
				Kind:     accuracy.KindGrammar,
				Severity: accuracy.SeverityMedium,
				Message:  "repeated word",
				Matched:  words[i] + " " + words[i],
				RuleID:   "repeated-word",
			})
			penalty += accuracy.SeverityMedium.Weight()
			if !reported {
				feedback = append(feedback, "repeated word, remove the duplicate")
				reported = true
			}
		}
	}

	// Sentence fragments: several words, no recognizable verb.
	for _, sentence := range textutil.Sentences(message) {
		words := textutil.LowerWords(sentence)
		if len(words) < 3 {
			continue
		}
		if !hasVerb(words) {
			errors = append(errors, accuracy.ErrorRecord{
				Kind:     accuracy.KindSyntax,
				Severity: accuracy.SeverityMajor,
				Message:  "sentence fragment: no main verb found",
				Matched:  strings.TrimSpace(sentence),
				RuleID:   "sentence-fragment",
			})
			penalty += accuracy.SeverityMajor.Weight()
			feedback = append(feedback, "sentence fragment: every sentence needs a main verb")
		}
	}

	return errors, penalty, feedback
}

func hasVerb(words []string) bool {
	for _, w := range words {
		if commonVerbs[w] {
			return true
		}
		if len(w) > 4 && (strings.HasSuffix(w, "ed") || strings.HasSuffix(w, "ing")) {
			return true
		}
	}
	return false
}

// dominantRules returns the most frequent rule IDs, best first, capped at
// three.
func dominantRules(errors []accuracy.ErrorRecord) []string {
	counts := make(map[string]int)
	for _, e := range errors {
		if e.RuleID != "" {
			counts[e.RuleID]++
		}
	}
	var out []string
	for len(out) < 3 && len(counts) > 0 {
		best, bestN := "", 0
		for id, n := range counts {
			if n > bestN || (n == bestN && id < best) {
				best, bestN = id, n
			}
		}
		out = append(out, best)
		delete(counts, best)
	}
	return out
}
