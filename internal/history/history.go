// Package history blends the current message's snapshot with the user's
// prior rolling snapshot. The blend weight is dynamic: tier, experience
// and the current message's error count all move it, bounded so history
// can neither dominate a bad message away nor vanish entirely.
package history

import (
	"github.com/google/uuid"

	"github.com/kavya/lexis/internal/accuracy"
)

// Tier base weights for the current message. Paying tiers weight recent
// performance more heavily.
const (
	freeBaseWeight    = 0.60
	proBaseWeight     = 0.70
	premiumBaseWeight = 0.75
)

const (
	// experienceDiscountPerSample shaves a little current weight per
	// historical sample, up to experienceSampleCap samples.
	experienceDiscountPerSample = 0.005
	experienceSampleCap         = 20

	// escalationErrorCount is the current-message error count at which
	// the current weight escalates to escalatedWeight, so recent
	// failures are not diluted by a long good history.
	escalationErrorCount = 8
	escalatedWeight      = 0.85

	// historyFloorSamples / historyFloor: once a user has this many
	// prior samples, history always keeps at least historyFloor
	// influence, even under escalation.
	historyFloorSamples = 5
	historyFloor        = 0.20
)

// CurrentWeight computes the dynamic weight of the current snapshot
// against history. previousSamples is the prior snapshot's calculation
// count; totalErrors is the current message's error count.
func CurrentWeight(tier accuracy.Tier, previousSamples, totalErrors int) float64 {
	w := baseWeight(tier)

	samples := previousSamples
	if samples > experienceSampleCap {
		samples = experienceSampleCap
	}
	w -= float64(samples) * experienceDiscountPerSample

	if totalErrors >= escalationErrorCount && w < escalatedWeight {
		w = escalatedWeight
	}

	if previousSamples >= historyFloorSamples && w > 1-historyFloor {
		w = 1 - historyFloor
	}

	return accuracy.ClampUnit(w)
}

func baseWeight(tier accuracy.Tier) float64 {
	switch tier {
	case accuracy.TierPremium:
		return premiumBaseWeight
	case accuracy.TierPro:
		return proBaseWeight
	default:
		return freeBaseWeight
	}
}

// Blend produces the snapshot pair for one analysis: the untouched
// current snapshot and the weighted blend with the prior snapshot. A nil
// previous returns the current snapshot on both sides with a calculation
// count of 1.
func Blend(current *accuracy.AccuracySnapshot, previous *accuracy.AccuracySnapshot,
	tier accuracy.Tier, opts accuracy.SmoothingOverrides) accuracy.SnapshotPair {

	if previous == nil {
		current.CalculationCount = 1
		weighted := current.Clone()
		weighted.ID = uuid.NewString()
		return accuracy.SnapshotPair{Current: current, Weighted: weighted}
	}

	cw := CurrentWeight(tier, previous.CalculationCount, current.TotalErrors)
	if opts.CurrentWeight > 0 {
		cw = accuracy.ClampUnit(opts.CurrentWeight)
	}

	hw := 1 - cw
	if opts.DecayFactor > 0 {
		hw *= accuracy.ClampUnit(opts.DecayFactor)
		cw = 1 - hw
	}

	current.CalculationCount = previous.CalculationCount + 1

	weighted := current.Clone()
	weighted.ID = uuid.NewString()
	weighted.Overall = blendScore(cw, current.Overall, hw, previous.Overall)
	weighted.Grammar = blendScore(cw, current.Grammar, hw, previous.Grammar)
	weighted.Spelling = blendScore(cw, current.Spelling, hw, previous.Spelling)
	weighted.Vocabulary = blendScore(cw, current.Vocabulary, hw, previous.Vocabulary)
	weighted.Fluency = blendScore(cw, current.Fluency, hw, previous.Fluency)
	weighted.Punctuation = blendScore(cw, current.Punctuation, hw, previous.Punctuation)
	weighted.Capitalization = blendScore(cw, current.Capitalization, hw, previous.Capitalization)
	weighted.Syntax = blendScore(cw, current.Syntax, hw, previous.Syntax)
	weighted.Coherence = blendScore(cw, current.Coherence, hw, previous.Coherence)

	// AdjustedOverall stays the pre-smoothing value; error counts and
	// histograms describe the current message only.
	weighted.AdjustedOverall = current.AdjustedOverall

	weighted.Readability = blendOptional(cw, current.Readability, hw, previous.Readability)
	weighted.Tone = blendOptional(cw, current.Tone, hw, previous.Tone)
	weighted.Style = blendOptional(cw, current.Style, hw, previous.Style)

	return accuracy.SnapshotPair{Current: current, Weighted: weighted}
}

func blendScore(cw, current, hw, previous float64) float64 {
	return accuracy.RoundScore(cw*current + hw*previous)
}

// blendOptional blends two optional scores, preferring whichever side
// has data when only one does.
func blendOptional(cw float64, current *float64, hw float64, previous *float64) *float64 {
	switch {
	case current == nil && previous == nil:
		return nil
	case current == nil:
		v := *previous
		return &v
	case previous == nil:
		v := *current
		return &v
	default:
		v := blendScore(cw, *current, hw, *previous)
		return &v
	}
}
