package analyze

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
)

// Fixed per-violation deductions for the structural mechanics checks.
const (
	missingTerminatorDeduction = 12.0
	doubleSpaceDeduction       = 4.0
	doubleSpaceCap             = 12.0
	spaceBeforePunctDeduction  = 4.0
	spaceBeforePunctCap        = 12.0
	excessPunctDeduction       = 5.0
	excessPunctCap             = 10.0

	sentenceCaseDeduction = 12.0
	sentenceCaseCap       = 36.0
	pronounIDeduction     = 15.0
	pronounICap           = 30.0
	properNounDeduction   = 6.0
	properNounCap         = 18.0
)

var (
	doubleSpacePattern      = regexp.MustCompile(`\S(  +)\S`)
	spaceBeforePunctPattern = regexp.MustCompile(`\s+[,.!?;:]`)
	excessPunctPattern      = regexp.MustCompile(`[!?]{3,}|\.{4,}`)
	lowercaseIPattern       = regexp.MustCompile(`(?:^|[\s"(])i(?:[\s,.!?;:')]|$)`)
)

// properNouns is a small table of commonly written proper nouns whose
// capitalization learners routinely miss.
var properNouns = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"june": true, "july": true, "august": true, "september": true,
	"october": true, "november": true, "december": true,
	"english": true, "spanish": true, "french": true, "german": true,
	"chinese": true, "japanese": true,
	"london": true, "paris": true, "tokyo": true, "america": true,
	"europe": true, "christmas": true, "easter": true,
}

// Punctuation applies cheap structural punctuation heuristics with fixed
// per-violation deductions.
func Punctuation(message string) Result {
	score := 100.0
	var (
		errors   []accuracy.ErrorRecord
		feedback []string
	)

	trimmed := strings.TrimSpace(message)
	if trimmed != "" && !strings.ContainsAny(string(trimmed[len(trimmed)-1]), ".!?") {
		score -= missingTerminatorDeduction
		errors = append(errors, accuracy.ErrorRecord{
			Kind:     accuracy.KindPunctuation,
			Severity: accuracy.SeverityLow,
			Message:  "message does not end with sentence punctuation",
			RuleID:   "missing-terminator",
		})
		feedback = append(feedback, "end your sentences with a period, question mark, or exclamation point")
	}

	deduct := func(pattern *regexp.Regexp, per, limit float64, ruleID, msg, note string) {
		matches := pattern.FindAllStringIndex(message, -1)
		if len(matches) == 0 {
			return
		}
		d := float64(len(matches)) * per
		if d > limit {
			d = limit
		}
		score -= d
		for _, m := range matches {
			errors = append(errors, accuracy.ErrorRecord{
				Kind:     accuracy.KindPunctuation,
				Severity: accuracy.SeverityLow,
				Message:  msg,
				Span:     &accuracy.Span{Start: m[0], End: m[1]},
				Matched:  message[m[0]:m[1]],
				RuleID:   ruleID,
			})
		}
		feedback = append(feedback, note)
	}

	deduct(doubleSpacePattern, doubleSpaceDeduction, doubleSpaceCap,
		"double-space", "multiple consecutive spaces", "use a single space between words")
	deduct(spaceBeforePunctPattern, spaceBeforePunctDeduction, spaceBeforePunctCap,
		"space-before-punct", "space before punctuation", "punctuation attaches to the word before it")
	deduct(excessPunctPattern, excessPunctDeduction, excessPunctCap,
		"excess-punct", "excessive punctuation", "one exclamation or question mark is enough")

	return finish(Result{Score: score, Errors: errors, Feedback: feedback})
}

// Capitalization checks sentence-initial capitals, the pronoun "I", and
// known proper nouns.
func Capitalization(message string) Result {
	score := 100.0
	var (
		errors   []accuracy.ErrorRecord
		feedback []string
	)

	caseViolations := 0
	for _, sentence := range textutil.Sentences(message) {
		for _, r := range sentence {
			if !unicode.IsLetter(r) {
				continue
			}
			if unicode.IsLower(r) {
				caseViolations++
				errors = append(errors, accuracy.ErrorRecord{
					Kind:     accuracy.KindCapitalization,
					Severity: accuracy.SeverityLow,
					Message:  "sentence does not start with a capital letter",
					Matched:  firstWord(sentence),
					RuleID:   "sentence-case",
				})
			}
			break
		}
	}
	if caseViolations > 0 {
		d := float64(caseViolations) * sentenceCaseDeduction
		if d > sentenceCaseCap {
			d = sentenceCaseCap
		}
		score -= d
		feedback = append(feedback, "start each sentence with a capital letter")
	}

	if n := len(lowercaseIPattern.FindAllStringIndex(message, -1)); n > 0 {
		d := float64(n) * pronounIDeduction
		if d > pronounICap {
			d = pronounICap
		}
		score -= d
		errors = append(errors, accuracy.ErrorRecord{
			Kind:       accuracy.KindCapitalization,
			Severity:   accuracy.SeverityMedium,
			Message:    "the pronoun \"I\" is always capitalized",
			Matched:    "i",
			Suggestion: "I",
			RuleID:     "pronoun-i",
		})
		feedback = append(feedback, "always capitalize the pronoun \"I\"")
	}

	properViolations := 0
	for _, w := range textutil.Words(message) {
		if properNouns[w] { // already lowercase in the table; a match means the message had it lowercase
			properViolations++
			errors = append(errors, accuracy.ErrorRecord{
				Kind:       accuracy.KindCapitalization,
				Severity:   accuracy.SeverityLow,
				Message:    fmt.Sprintf("%q is a proper noun and should be capitalized", w),
				Matched:    w,
				Suggestion: capitalize(w),
				RuleID:     "proper-noun",
			})
		}
	}
	if properViolations > 0 {
		d := float64(properViolations) * properNounDeduction
		if d > properNounCap {
			d = properNounCap
		}
		score -= d
		feedback = append(feedback, "capitalize proper nouns like days, months, and languages")
	}

	return finish(Result{Score: score, Errors: errors, Feedback: feedback})
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func firstWord(sentence string) string {
	words := textutil.Words(sentence)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
