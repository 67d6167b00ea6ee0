package detect

import (
	"context"
	"time"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
)

// CEFRModel scores vocabulary sophistication against local CEFR word
// lists. It runs in-process, so it never needs the Resilient fallback,
// but it implements Detector so the pipeline treats all four the same.
type CEFRModel struct{}

func NewCEFRModel() *CEFRModel { return &CEFRModel{} }

func (m *CEFRModel) Name() string { return SourceCEFR }

// cefrBand is the numeric rank of a CEFR level, A1 lowest.
type cefrBand int

const (
	bandA1 cefrBand = iota + 1
	bandA2
	bandB1
	bandB2
	bandC1
	bandC2
)

// cefrWords is a compact sample of the CEFR vocabulary lists. Unlisted
// words default to A2 so unknown tokens neither reward nor punish.
var cefrWords = map[string]cefrBand{
	// A1
	"go": bandA1, "eat": bandA1, "big": bandA1, "small": bandA1,
	"good": bandA1, "bad": bandA1, "house": bandA1, "water": bandA1,
	"like": bandA1, "want": bandA1, "day": bandA1, "food": bandA1,
	"friend": bandA1, "happy": bandA1, "school": bandA1, "store": bandA1,

	// A2
	"yesterday": bandA2, "weather": bandA2, "vegetables": bandA2,
	"interesting": bandA2, "beautiful": bandA2, "different": bandA2,
	"important": bandA2, "usually": bandA2, "weekend": bandA2,

	// B1
	"experience": bandB1, "environment": bandB1, "opportunity": bandB1,
	"necessary": bandB1, "although": bandB1, "improve": bandB1,
	"decision": bandB1, "relationship": bandB1, "particular": bandB1,

	// B2
	"significant": bandB2, "demonstrate": bandB2, "consequence": bandB2,
	"perspective": bandB2, "substantial": bandB2, "approximately": bandB2,
	"furthermore": bandB2, "nevertheless": bandB2, "considerable": bandB2,

	// C1
	"hypothesis": bandC1, "ambiguous": bandC1, "articulate": bandC1,
	"coherent": bandC1, "meticulous": bandC1, "paradigm": bandC1,
	"pragmatic": bandC1, "scrutinize": bandC1, "ubiquitous": bandC1,

	// C2
	"ephemeral": bandC2, "quintessential": bandC2, "juxtaposition": bandC2,
	"idiosyncratic": bandC2, "perfunctory": bandC2, "obfuscate": bandC2,
}

// levelTarget maps proficiency level to the mean band a learner at that
// level is expected to produce.
var levelTarget = map[accuracy.Level]float64{
	accuracy.LevelBeginner:     float64(bandA1),
	accuracy.LevelIntermediate: float64(bandA2) + 0.5,
	accuracy.LevelAdvanced:     float64(bandB2),
	accuracy.LevelExpert:       float64(bandC1),
}

// Check computes the mean CEFR band of the message's content words and
// scores it against the learner's expected band. Writing at or above
// expectation scores high; far below it drags the score.
func (m *CEFRModel) Check(_ context.Context, in Input) (accuracy.DetectorContribution, error) {
	start := time.Now()

	words := textutil.LowerWords(in.Text)
	total := 0
	sum := 0.0
	for _, w := range words {
		if textutil.IsFunctionWord(w) {
			continue
		}
		band, ok := cefrWords[w]
		if !ok {
			band = bandA2
		}
		sum += float64(band)
		total++
	}

	if total == 0 {
		return accuracy.DetectorContribution{
			Source:     SourceCEFR,
			Score:      50,
			Confidence: 0.3,
			Latency:    time.Since(start),
		}, nil
	}

	mean := sum / float64(total)
	target, ok := levelTarget[in.Level]
	if !ok {
		target = levelTarget[accuracy.LevelIntermediate]
	}

	// 75 at expectation, 12.5 points per band above, 20 below.
	score := 75.0
	if diff := mean - target; diff >= 0 {
		score += diff * 12.5
	} else {
		score += diff * 20
	}

	return accuracy.DetectorContribution{
		Source:     SourceCEFR,
		Score:      accuracy.ClampScore(score),
		Confidence: 0.7,
		Latency:    time.Since(start),
	}, nil
}
