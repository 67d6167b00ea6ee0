package accuracy

import "fmt"

// Tier is the subscription level gating analysis depth.
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// AllTiers returns tiers in ascending order of capability.
func AllTiers() []Tier {
	return []Tier{TierFree, TierPro, TierPremium}
}

// Level is the learner's self-reported proficiency level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// ErrorKind classifies a detected writing issue.
type ErrorKind string

const (
	KindGrammar        ErrorKind = "grammar"
	KindSpelling       ErrorKind = "spelling"
	KindVocabulary     ErrorKind = "vocabulary"
	KindFluency        ErrorKind = "fluency"
	KindPunctuation    ErrorKind = "punctuation"
	KindCapitalization ErrorKind = "capitalization"
	KindSyntax         ErrorKind = "syntax"
	KindStyle          ErrorKind = "style"
	KindCoherence      ErrorKind = "coherence"
)

// AllErrorKinds returns every error kind, base categories first.
func AllErrorKinds() []ErrorKind {
	return []ErrorKind{
		KindGrammar, KindSpelling, KindVocabulary, KindFluency,
		KindPunctuation, KindCapitalization, KindSyntax, KindStyle,
		KindCoherence,
	}
}

// Severity ranks how damaging an error is to comprehension.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityMajor      Severity = "major"
	SeverityHigh       Severity = "high"
	SeverityMedium     Severity = "medium"
	SeverityLow        Severity = "low"
	SeveritySuggestion Severity = "suggestion"
)

// Weight returns the penalty weight for a severity. Unknown severities
// weigh as medium so a malformed detector payload cannot zero a penalty.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityCritical:
		return 5.0
	case SeverityMajor:
		return 4.0
	case SeverityHigh:
		return 3.0
	case SeverityMedium:
		return 2.0
	case SeverityLow:
		return 1.0
	case SeveritySuggestion:
		return 0.5
	default:
		return 2.0
	}
}

// AtMost reports whether s is no more severe than limit.
func (s Severity) AtMost(limit Severity) bool {
	return s.Weight() <= limit.Weight()
}

// Span is a half-open character range [Start, End) into the message.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (sp Span) String() string {
	return fmt.Sprintf("%d:%d", sp.Start, sp.End)
}

// ErrorRecord is one detected issue. Explanation and Examples are only
// populated above the free tier; Alternatives only for premium.
type ErrorRecord struct {
	Kind         ErrorKind `json:"kind"`
	Severity     Severity  `json:"severity"`
	Message      string    `json:"message"`
	Span         *Span     `json:"span,omitempty"`
	Matched      string    `json:"matched,omitempty"`
	Suggestion   string    `json:"suggestion,omitempty"`
	RuleID       string    `json:"rule_id,omitempty"`
	Explanation  string    `json:"explanation,omitempty"`
	Examples     []string  `json:"examples,omitempty"`
	Alternatives []string  `json:"alternatives,omitempty"`
}

// dedupeKey identifies the same underlying issue across detectors.
func (e *ErrorRecord) dedupeKey() string {
	if e.Span != nil {
		return string(e.Kind) + "@" + e.Span.String()
	}
	return string(e.Kind) + "#" + e.Matched + "#" + e.Message
}

// DedupeErrors removes records reporting the same (kind, span) issue,
// keeping the first (higher-priority detectors should be merged first).
func DedupeErrors(records []ErrorRecord) []ErrorRecord {
	seen := make(map[string]bool, len(records))
	out := make([]ErrorRecord, 0, len(records))
	for _, r := range records {
		key := r.dedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// SeverityHistogram counts records per severity.
func SeverityHistogram(records []ErrorRecord) map[Severity]int {
	hist := make(map[Severity]int)
	for _, r := range records {
		hist[r.Severity]++
	}
	return hist
}

// KindHistogram counts records per error kind.
func KindHistogram(records []ErrorRecord) map[ErrorKind]int {
	hist := make(map[ErrorKind]int)
	for _, r := range records {
		hist[r.Kind]++
	}
	return hist
}

// CountCritical returns the number of critical-severity records.
func CountCritical(records []ErrorRecord) int {
	n := 0
	for _, r := range records {
		if r.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// CategoryMetrics is the per-category diagnostic bundle attached to an
// analyzer result. Details carries category-specific sub-scores (e.g.
// vocabulary's diversity ratio, fluency's pacing).
type CategoryMetrics struct {
	Score            float64            `json:"score"`
	ErrorCount       int                `json:"error_count"`
	SeverityCounts   map[Severity]int   `json:"severity_counts,omitempty"`
	DominantPatterns []string           `json:"dominant_patterns,omitempty"`
	Details          map[string]float64 `json:"details,omitempty"`
}

// ClampScore bounds a score to the [0, 100] range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampUnit bounds a ratio to the [0, 1] range.
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
