package analyze

import (
	"math"
	"regexp"
	"strings"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
	"github.com/kavya/lexis/internal/tier"
)

// Component weights for the fluency base score.
const (
	readabilityWeight = 0.45
	smoothnessWeight  = 0.30
	cohesionWeight    = 0.25

	// targetSentenceLength is the sweet spot for sentence-length
	// smoothness scoring.
	targetSentenceLength = 15.0
)

// Per-issue penalty caps. Each structural issue family deducts at most
// this much, so one pathology cannot zero an otherwise fluent message.
const (
	fillerPenaltyPer    = 3.0
	fillerPenaltyCap    = 12.0
	lowVarietyPenalty   = 8.0
	tensePenaltyPer     = 4.0
	tensePenaltyCap     = 8.0
	commaPenaltyPer     = 3.0
	commaPenaltyCap     = 9.0
	runOnPenaltyPer     = 4.0
	runOnPenaltyCap     = 8.0
	fragmentPenaltyPer  = 3.0
	fragmentPenaltyCap  = 9.0
	auxiliaryPenaltyPer = 4.0
	auxiliaryPenaltyCap = 8.0
	invertedPenaltyPer  = 4.0
	invertedPenaltyCap  = 8.0
)

var fillerPhrases = []string{
	"you know", "i mean", "sort of", "kind of", "basically", "actually",
	"literally", "stuff like that", "and stuff", "or something",
}

var connectorWords = map[string]bool{
	"and": true, "but": true, "because": true, "however": true,
	"therefore": true, "also": true, "then": true, "so": true,
	"moreover": true, "furthermore": true, "first": true, "second": true,
	"finally": true, "next": true, "although": true, "while": true,
	"since": true, "meanwhile": true, "instead": true, "besides": true,
}

var (
	missingAuxPattern     = regexp.MustCompile(`(?i)\b(?:why|what|where|when|how)\s+(?:it|he|she|you|i|we|they|this|that)\s+(?:\w+ing\b|wrong|right|good|bad|here|there|like|so)`)
	tenseConflictPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:yesterday|ago|last\s+(?:week|night|month|year))\b[^.!?]*\b(?:go|goes|come|comes|see|sees|buy|buys|eat|eats|get|gets|make|makes)\b`),
		regexp.MustCompile(`(?i)\b(?:go|goes|come|comes|see|sees|buy|buys|eat|eats|get|gets|make|makes)\b[^.!?]*\b(?:yesterday|ago|last\s+(?:week|night|month|year))\b`),
	}
	invertedOrderPattern = regexp.MustCompile(`(?i)(?:^|[.!?]\s+)(?:went|goes|likes|wants|knows|sees)\s+(?:i|you|he|she|we|they)\b`)
)

// Fluency derives a score from readability, sentence-length smoothness
// and cohesion, then subtracts capped penalties for fillers, low variety
// and six structural issue families, each with its own feedback string.
func Fluency(message string, caps tier.Capabilities) Result {
	words := textutil.Words(message)
	sentences := textutil.Sentences(message)
	if len(words) == 0 {
		return finish(Result{Score: 0, Feedback: []string{"no content to evaluate"}})
	}

	readability := fleschScore(words, sentences)
	smoothness := smoothnessScore(sentences)
	cohesion := cohesionScore(words, sentences)

	base := readabilityWeight*readability + smoothnessWeight*smoothness + cohesionWeight*cohesion

	var (
		errors   []accuracy.ErrorRecord
		feedback []string
	)
	penalty := 0.0

	addIssue := func(count int, per, limit float64, kind accuracy.ErrorKind, severity accuracy.Severity, ruleID, note string) {
		if count == 0 {
			return
		}
		p := float64(count) * per
		if p > limit {
			p = limit
		}
		penalty += p
		errors = append(errors, accuracy.ErrorRecord{
			Kind:     kind,
			Severity: severity,
			Message:  note,
			RuleID:   ruleID,
		})
		feedback = append(feedback, note)
	}

	lower := strings.ToLower(message)
	fillers := 0
	for _, phrase := range fillerPhrases {
		fillers += strings.Count(lower, phrase)
	}
	addIssue(fillers, fillerPenaltyPer, fillerPenaltyCap,
		accuracy.KindStyle, accuracy.SeveritySuggestion, "filler-phrases",
		"filler phrases weaken the message, try removing them")

	freq := textutil.Frequencies(textutil.LowerWords(message))
	diversity := float64(len(freq)) / float64(len(words))
	if diversity < 0.5 && len(words) >= 10 {
		penalty += lowVarietyPenalty
		feedback = append(feedback, "limited word variety makes the text feel repetitive")
	}

	tense := 0
	for _, p := range tenseConflictPatterns {
		tense += len(p.FindAllStringIndex(message, -1))
	}
	addIssue(tense, tensePenaltyPer, tensePenaltyCap,
		accuracy.KindFluency, accuracy.SeverityHigh, "tense-conflict",
		"keep verb tense consistent with time markers")

	missingCommas := 0
	runOns := 0
	fragments := 0
	for _, sentence := range sentences {
		sw := textutil.LowerWords(sentence)
		if len(sw) > 12 && !strings.Contains(sentence, ",") {
			missingCommas++
		}
		if len(sw) > 30 || strings.Count(" "+strings.ToLower(sentence)+" ", " and ") >= 3 {
			runOns++
		}
		if len(sw) >= 3 && !hasVerb(sw) {
			fragments++
		}
	}
	addIssue(missingCommas, commaPenaltyPer, commaPenaltyCap,
		accuracy.KindFluency, accuracy.SeverityMedium, "missing-comma",
		"long clauses read better with a comma break")
	addIssue(runOns, runOnPenaltyPer, runOnPenaltyCap,
		accuracy.KindFluency, accuracy.SeverityHigh, "run-on",
		"split run-on sentences into shorter ones")
	addIssue(fragments, fragmentPenaltyPer, fragmentPenaltyCap,
		accuracy.KindFluency, accuracy.SeverityMedium, "fragment-flow",
		"incomplete sentences interrupt the flow")

	aux := len(missingAuxPattern.FindAllStringIndex(message, -1))
	addIssue(aux, auxiliaryPenaltyPer, auxiliaryPenaltyCap,
		accuracy.KindFluency, accuracy.SeverityHigh, "missing-auxiliary",
		"questions need an auxiliary verb to read naturally")

	inverted := len(invertedOrderPattern.FindAllStringIndex(message, -1))
	addIssue(inverted, invertedPenaltyPer, invertedPenaltyCap,
		accuracy.KindFluency, accuracy.SeverityHigh, "inverted-order",
		"English statements put the subject before the verb")

	score := accuracy.ClampScore(base - penalty)

	metrics := accuracy.CategoryMetrics{
		Details: map[string]float64{
			"readability":     readability,
			"prosody":         smoothness,
			"intelligibility": cohesion,
			"pacing":          pacingScore(sentences),
			"stress":          diversity * 100,
		},
	}

	return finish(Result{
		Score:    score,
		Errors:   errors,
		Feedback: feedback,
		Metrics:  metrics,
	})
}

// fleschScore computes a Flesch-style reading ease clamped to [0, 100].
func fleschScore(words, sentences []string) float64 {
	wordCount := float64(len(words))
	sentenceCount := float64(maxInt(len(sentences), 1))

	syllables := 0
	for _, w := range words {
		syllables += textutil.SyllableCount(w)
	}

	wps := wordCount / sentenceCount
	spw := float64(syllables) / math.Max(wordCount, 1)

	return accuracy.ClampScore(206.835 - 1.015*wps - 84.6*spw)
}

// smoothnessScore rewards sentences near the target length with low
// deviation across the message.
func smoothnessScore(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	totalDev := 0.0
	for _, s := range sentences {
		n := float64(len(textutil.Words(s)))
		totalDev += math.Abs(n - targetSentenceLength)
	}
	avgDev := totalDev / float64(len(sentences))
	return accuracy.ClampScore(100 - avgDev*5)
}

// cohesionScore rewards transition/connector word usage per sentence.
func cohesionScore(words, sentences []string) float64 {
	connectors := 0
	for _, w := range words {
		if connectorWords[strings.ToLower(w)] {
			connectors++
		}
	}
	perSentence := float64(connectors) / float64(maxInt(len(sentences), 1))
	return accuracy.ClampScore(50 + perSentence*50)
}

// pacingScore summarizes sentence length variance: moderate variation
// reads naturally, none reads robotic, extreme reads chaotic.
func pacingScore(sentences []string) float64 {
	if len(sentences) < 2 {
		return 70
	}
	lengths := make([]float64, len(sentences))
	mean := 0.0
	for i, s := range sentences {
		lengths[i] = float64(len(textutil.Words(s)))
		mean += lengths[i]
	}
	mean /= float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	sd := math.Sqrt(variance / float64(len(lengths)))

	// Standard deviation around 4 words is the natural rhythm.
	return accuracy.ClampScore(100 - math.Abs(sd-4)*8)
}
