// Package fusion merges the six base category scores into one overall
// score using fixed weights, with weight redistribution when a message
// carries an extreme number of critical errors.
package fusion

import (
	"github.com/kavya/lexis/internal/accuracy"
)

// Base category weights. They sum to 1.
const (
	GrammarWeight        = 0.40
	VocabularyWeight     = 0.20
	SpellingWeight       = 0.20
	FluencyWeight        = 0.15
	PunctuationWeight    = 0.03
	CapitalizationWeight = 0.02
)

// CriticalThreshold is the critical-error count above which grammar's
// weight is capped, so one catastrophic message is not defined by
// grammar alone. A short message full of pattern-level breakdowns
// already clears it.
const (
	CriticalThreshold = 3
	GrammarWeightCap  = 0.25
)

// Weights holds the per-category weights used for one fusion.
type Weights struct {
	Grammar        float64
	Vocabulary     float64
	Spelling       float64
	Fluency        float64
	Punctuation    float64
	Capitalization float64
}

// BaseWeights returns the standard weight set.
func BaseWeights() Weights {
	return Weights{
		Grammar:        GrammarWeight,
		Vocabulary:     VocabularyWeight,
		Spelling:       SpellingWeight,
		Fluency:        FluencyWeight,
		Punctuation:    PunctuationWeight,
		Capitalization: CapitalizationWeight,
	}
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.Grammar + w.Vocabulary + w.Spelling + w.Fluency + w.Punctuation + w.Capitalization
}

// WeightsFor returns the weight set for a message with the given
// critical-error count. Above CriticalThreshold, grammar is capped at
// GrammarWeightCap and the freed weight is redistributed across the
// remaining categories in proportion to their base weights.
func WeightsFor(criticalErrors int) Weights {
	w := BaseWeights()
	if criticalErrors <= CriticalThreshold {
		return w
	}

	freed := w.Grammar - GrammarWeightCap
	w.Grammar = GrammarWeightCap

	rest := w.Vocabulary + w.Spelling + w.Fluency + w.Punctuation + w.Capitalization
	w.Vocabulary += freed * w.Vocabulary / rest
	w.Spelling += freed * w.Spelling / rest
	w.Fluency += freed * w.Fluency / rest
	w.Punctuation += freed * w.Punctuation / rest
	w.Capitalization += freed * w.Capitalization / rest
	return w
}

// Fuse computes the overall score from the six base categories. The
// result is rounded and clamped to [0, 100].
func Fuse(scores accuracy.CategoryScores, criticalErrors int) float64 {
	w := WeightsFor(criticalErrors)
	overall := scores.Grammar*w.Grammar +
		scores.Vocabulary*w.Vocabulary +
		scores.Spelling*w.Spelling +
		scores.Fluency*w.Fluency +
		scores.Punctuation*w.Punctuation +
		scores.Capitalization*w.Capitalization
	return accuracy.ClampScore(accuracy.RoundScore(overall))
}
