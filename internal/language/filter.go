// Package language decides whether English-specific checks should run,
// be relaxed, or be skipped for a message. Every downstream analyzer
// consults the resulting context, so the filter runs first in the
// pipeline.
package language

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
)

const (
	// SkipThreshold: below this English-token ratio all English-specific
	// detectors are skipped and analyzers return the neutral score.
	SkipThreshold = 0.25

	// RelaxThreshold: below this ratio (mixed-language content) grammar
	// severity thresholds are relaxed rather than skipped.
	RelaxThreshold = 0.60

	// NeutralScore is what analyzers report when they cannot evaluate
	// non-English content. Deliberately mid-range: neither rewarding nor
	// punishing what was never assessed.
	NeutralScore = 50.0
)

// Context is the language summary every analyzer consults.
type Context struct {
	Primary           string
	EnglishRatio      float64
	SkipEnglishChecks bool
	RelaxGrammar      bool
	Notes             []string
}

// markerWords are high-frequency English tokens used to corroborate that
// latin-script text is actually English.
var markerWords = map[string]bool{
	"the": true, "and": true, "is": true, "are": true, "was": true,
	"i": true, "you": true, "it": true, "to": true, "of": true,
	"in": true, "that": true, "have": true, "for": true, "not": true,
	"with": true, "this": true, "my": true, "what": true, "went": true,
	"do": true, "don't": true, "like": true, "very": true, "but": true,
}

// Classify inspects the message text and produces a language context.
func Classify(message string) Context {
	words := textutil.LowerWords(message)
	if len(words) == 0 {
		return Context{
			Primary:      "unknown",
			EnglishRatio: 0,
			Notes:        []string{"no words to classify"},
		}
	}

	latin := 0
	markers := 0
	for _, w := range words {
		if isLatin(w) {
			latin++
		}
		if markerWords[w] {
			markers++
		}
	}

	ratio := float64(latin) / float64(len(words))

	// Latin script alone is weak evidence (Spanish, Indonesian, pinyin…).
	// Without any marker word in a longer message, discount the ratio.
	if markers == 0 && len(words) >= 6 {
		ratio *= 0.5
	}

	primary := "en"
	if ratio < SkipThreshold {
		primary = "non-english"
	}

	return fromRatio(primary, ratio)
}

// FromSummary builds a context from an external language-detection
// summary. A nil summary means the collaborator was absent; per contract
// the ratio is then treated as 1.0.
func FromSummary(summary *accuracy.LanguageSummary) Context {
	if summary == nil {
		return fromRatio("en", 1.0)
	}
	primary := summary.Primary
	if primary == "" {
		primary = "unknown"
	}
	return fromRatio(primary, accuracy.ClampUnit(summary.EnglishRatio))
}

func fromRatio(primary string, ratio float64) Context {
	ctx := Context{Primary: primary, EnglishRatio: ratio}

	switch {
	case ratio < SkipThreshold:
		ctx.SkipEnglishChecks = true
		ctx.Notes = append(ctx.Notes, fmt.Sprintf(
			"content is predominantly non-English (ratio %.2f); English checks skipped, cannot evaluate", ratio))
	case ratio < RelaxThreshold:
		ctx.RelaxGrammar = true
		ctx.Notes = append(ctx.Notes, fmt.Sprintf(
			"mixed-language content (ratio %.2f); low-severity grammar findings suppressed", ratio))
	}
	return ctx
}

// SuppressRelaxed drops low and medium severity grammar findings when the
// context calls for relaxed checking. Other severities always survive.
func (c Context) SuppressRelaxed(records []accuracy.ErrorRecord) []accuracy.ErrorRecord {
	if !c.RelaxGrammar {
		return records
	}
	out := records[:0:0]
	for _, r := range records {
		if r.Kind == accuracy.KindGrammar && r.Severity.AtMost(accuracy.SeverityMedium) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func isLatin(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.In(r, unicode.Latin) {
			return false
		}
	}
	return strings.TrimSpace(word) != ""
}
