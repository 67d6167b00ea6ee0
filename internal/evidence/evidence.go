// Package evidence mines a tutor's response text for explicit correction
// markup. A tutor saying "you should say X" is higher-signal than any
// pattern heuristic, so extracted corrections feed back into the grammar
// and fluency results as corroborating evidence.
package evidence

import (
	"regexp"
	"strings"

	"github.com/kavya/lexis/internal/accuracy"
)

// Correction is one explicit fix found in the tutor response.
type Correction struct {
	// Original is the learner phrasing being corrected, when the
	// marker exposes it. May be empty for bare "Correction: …" lines.
	Original string

	// Corrected is the form the tutor offered.
	Corrected string

	// Marker identifies which convention matched.
	Marker string
}

// ResponseAnalysis summarizes the correction signal in one tutor
// response.
type ResponseAnalysis struct {
	HasCorrectionFeedback bool
	HasGrammarCorrection  bool
	CorrectionSeverity    accuracy.Severity
	EngagementScore       float64
	Corrections           []Correction
}

// fluencyPenaltyPerCorrection and fluencyPenaltyCap bound how much tutor
// grammar corrections drag the fluency score.
const (
	fluencyPenaltyPerCorrection = 5.0
	fluencyPenaltyCap           = 15.0
)

var (
	correctionLinePattern = regexp.MustCompile(`(?im)^\s*correction:\s*(.+)$`)
	shouldSayPattern      = regexp.MustCompile(`(?i)you\s+(?:should|could|can)\s+say:?\s*"([^"]+)"`)
	correctFormPattern    = regexp.MustCompile(`(?i)(?:the\s+correct\s+(?:form|way|phrase)\s+is|it\s+should\s+be):?\s*"([^"]+)"`)
	quotedPairPattern     = regexp.MustCompile(`"([^"]+)"\s*(?:->|→|should\s+be|becomes)\s*"([^"]+)"`)
	insteadOfPattern      = regexp.MustCompile(`(?i)say\s+"([^"]+)"\s+instead\s+of\s+"([^"]+)"`)
)

// grammarTerms flags a correction as grammatical rather than lexical.
var grammarTerms = []string{
	"grammar", "tense", "verb", "conjugat", "plural", "singular",
	"article", "pronoun", "auxiliary", "subject", "agreement",
	"past tense", "present tense", "word order",
}

var encouragementTerms = []string{
	"great", "good job", "well done", "nice", "excellent", "keep it up",
	"keep going", "you're improving", "good progress", "almost",
}

// Extract scans the tutor response for correction conventions. An empty
// response yields a zero-value analysis.
func Extract(tutorResponse string) ResponseAnalysis {
	var a ResponseAnalysis
	if strings.TrimSpace(tutorResponse) == "" {
		return a
	}

	for _, m := range correctionLinePattern.FindAllStringSubmatch(tutorResponse, -1) {
		a.Corrections = append(a.Corrections, Correction{
			Corrected: strings.TrimSpace(strings.Trim(m[1], `"`)),
			Marker:    "correction-line",
		})
	}
	for _, m := range shouldSayPattern.FindAllStringSubmatch(tutorResponse, -1) {
		a.Corrections = append(a.Corrections, Correction{
			Corrected: strings.TrimSpace(m[1]),
			Marker:    "should-say",
		})
	}
	for _, m := range correctFormPattern.FindAllStringSubmatch(tutorResponse, -1) {
		a.Corrections = append(a.Corrections, Correction{
			Corrected: strings.TrimSpace(m[1]),
			Marker:    "correct-form",
		})
	}
	for _, m := range quotedPairPattern.FindAllStringSubmatch(tutorResponse, -1) {
		a.Corrections = append(a.Corrections, Correction{
			Original:  strings.TrimSpace(m[1]),
			Corrected: strings.TrimSpace(m[2]),
			Marker:    "quoted-pair",
		})
	}
	for _, m := range insteadOfPattern.FindAllStringSubmatch(tutorResponse, -1) {
		a.Corrections = append(a.Corrections, Correction{
			Original:  strings.TrimSpace(m[2]),
			Corrected: strings.TrimSpace(m[1]),
			Marker:    "instead-of",
		})
	}

	a.HasCorrectionFeedback = len(a.Corrections) > 0
	lower := strings.ToLower(tutorResponse)
	if a.HasCorrectionFeedback {
		for _, term := range grammarTerms {
			if strings.Contains(lower, term) {
				a.HasGrammarCorrection = true
				break
			}
		}
	}
	a.CorrectionSeverity = severityForCount(len(a.Corrections))
	a.EngagementScore = engagementScore(tutorResponse, lower)
	return a
}

func severityForCount(n int) accuracy.Severity {
	switch {
	case n == 0:
		return accuracy.SeveritySuggestion
	case n == 1:
		return accuracy.SeverityMedium
	case n <= 3:
		return accuracy.SeverityMajor
	default:
		return accuracy.SeverityCritical
	}
}

// engagementScore is a rough proxy for how substantive the tutor
// response is: length, questions back to the learner, encouragement.
func engagementScore(response, lower string) float64 {
	score := 30.0

	words := len(strings.Fields(response))
	switch {
	case words >= 60:
		score += 30
	case words >= 25:
		score += 20
	case words >= 10:
		score += 10
	}

	if strings.Contains(response, "?") {
		score += 20
	}
	for _, term := range encouragementTerms {
		if strings.Contains(lower, term) {
			score += 15
			break
		}
	}

	return accuracy.ClampScore(score)
}

// ErrorRecords converts the extracted corrections into high-confidence
// grammar records. The tutor's explicit feedback outranks heuristic
// matches, so these records carry high severity and survive dedupe in
// favor of pattern findings.
func (a ResponseAnalysis) ErrorRecords() []accuracy.ErrorRecord {
	if len(a.Corrections) == 0 {
		return nil
	}
	records := make([]accuracy.ErrorRecord, 0, len(a.Corrections))
	for _, c := range a.Corrections {
		rec := accuracy.ErrorRecord{
			Kind:       accuracy.KindGrammar,
			Severity:   accuracy.SeverityHigh,
			Message:    "tutor offered a correction",
			Matched:    c.Original,
			Suggestion: c.Corrected,
			RuleID:     "tutor-correction",
		}
		if !a.HasGrammarCorrection {
			rec.Kind = accuracy.KindVocabulary
			rec.Message = "tutor suggested different phrasing"
		}
		records = append(records, rec)
	}
	return records
}

// FluencyPenalty returns the capped deduction applied to the fluency
// score when the tutor flagged grammar problems.
func (a ResponseAnalysis) FluencyPenalty() float64 {
	if !a.HasGrammarCorrection {
		return 0
	}
	p := float64(len(a.Corrections)) * fluencyPenaltyPerCorrection
	if p > fluencyPenaltyCap {
		p = fluencyPenaltyCap
	}
	return p
}
