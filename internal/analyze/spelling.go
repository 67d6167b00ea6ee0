package analyze

import (
	"fmt"
	"strings"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
	"github.com/kavya/lexis/internal/tier"
)

// spellingDensityFactor converts the fused error density into score
// points: one content-word error in a ten-word message costs about 30.
const spellingDensityFactor = 4.5

// contentWeight / functionWeight fuse the two densities. Content-word
// errors hurt comprehension more than slips in grammatical glue.
const (
	contentWeight  = 0.7
	functionWeight = 0.3
)

// misspellings maps frequent learner misspellings and apostrophe-less
// contractions to their corrections.
var misspellings = map[string]string{
	"teh": "the", "wich": "which", "becuase": "because", "becase": "because",
	"recieve": "receive", "seperate": "separate", "definately": "definitely",
	"freind": "friend", "beleive": "believe", "tommorow": "tomorrow",
	"untill": "until", "occured": "occurred", "realy": "really",
	"verry": "very", "alot": "a lot", "thier": "their", "wierd": "weird",
	"acheive": "achieve", "grammer": "grammar", "beatiful": "beautiful",
	"diferent": "different", "shure": "sure", "intresting": "interesting",
	"enviroment": "environment", "goverment": "government",
	"neccessary": "necessary", "occassion": "occasion",
	"embarass": "embarrass", "accross": "across", "basicly": "basically",
	"probly": "probably", "truely": "truly", "wont": "won't",
	"dont": "don't", "cant": "can't", "didnt": "didn't",
	"doesnt": "doesn't", "isnt": "isn't", "wasnt": "wasn't",
	"werent": "weren't", "couldnt": "couldn't", "shouldnt": "shouldn't",
	"wouldnt": "wouldn't", "im": "I'm", "ive": "I've", "youre": "you're",
	"theyre": "they're", "whats": "what's", "thats": "that's",
}

// Spelling tokenizes the message, checks each word against the
// misspelling table, and fuses separate content and function word error
// densities into the final score.
func Spelling(message string, caps tier.Capabilities) Result {
	words := textutil.Words(message)

	var (
		errors        []accuracy.ErrorRecord
		feedback      []string
		contentTotal  int
		functionTotal int
		contentErrs   int
		functionErrs  int
	)

	offset := 0
	for _, w := range words {
		start := strings.Index(message[offset:], w) + offset
		end := start + len(w)
		offset = end

		lower := strings.ToLower(w)
		correction, bad := misspellings[lower]

		// Classify by the intended word, not the typo.
		classifyAs := lower
		if bad {
			classifyAs = strings.ToLower(correction)
		}
		isFunction := textutil.IsFunctionWord(classifyAs) || strings.Contains(classifyAs, "'")

		if isFunction {
			functionTotal++
		} else {
			contentTotal++
		}

		if !bad {
			continue
		}
		if isFunction {
			functionErrs++
		} else {
			contentErrs++
		}

		severity := accuracy.SeverityMedium
		if isFunction {
			severity = accuracy.SeverityLow
		}
		rec := accuracy.ErrorRecord{
			Kind:       accuracy.KindSpelling,
			Severity:   severity,
			Message:    fmt.Sprintf("%q appears misspelled", w),
			Span:       &accuracy.Span{Start: start, End: end},
			Matched:    w,
			Suggestion: correction,
		}
		if caps.Explanations != tier.DepthNone {
			rec.Explanation = fmt.Sprintf("The standard spelling is %q.", correction)
		}
		errors = append(errors, rec)
		feedback = append(feedback, fmt.Sprintf("spelling: %q should be %q", w, correction))
	}

	contentDensity := float64(contentErrs) / float64(maxInt(contentTotal, 1))
	functionDensity := float64(functionErrs) / float64(maxInt(functionTotal, 1))
	weighted := contentWeight*contentDensity + functionWeight*functionDensity

	score := accuracy.ClampScore(100 * (1 - minFloat(1, weighted*spellingDensityFactor)))

	return finish(Result{
		Score:    score,
		Errors:   errors,
		Feedback: feedback,
		Metrics: accuracy.CategoryMetrics{
			Details: map[string]float64{
				"content_error_density":  contentDensity,
				"function_error_density": functionDensity,
				"content_words":          float64(contentTotal),
				"function_words":         float64(functionTotal),
			},
		},
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
