// Package tier declares which analyses run at each subscription tier.
//
// The gate is pure data: no I/O, no side effects. Every lookup is O(1)
// against a static table so the engine can consult it per-request without
// caching concerns.
package tier

import "github.com/kavya/lexis/internal/accuracy"

// ExplanationDepth controls how verbose per-error explanations are.
type ExplanationDepth string

const (
	DepthNone     ExplanationDepth = "none"
	DepthBrief    ExplanationDepth = "brief"
	DepthDetailed ExplanationDepth = "detailed"
)

// Capabilities enumerates what a tier is entitled to. The six base
// analyzers (grammar, spelling, vocabulary, fluency, punctuation,
// capitalization) run for every tier and are not gated here.
type Capabilities struct {
	Tone            bool
	Readability     bool
	Style           bool
	Coherence       bool
	PremiumInsights bool

	// Alternatives enables alternative phrasings on error records.
	Alternatives bool

	MaxFeedbackItems int
	Explanations     ExplanationDepth
}

var capabilityTable = map[accuracy.Tier]Capabilities{
	accuracy.TierFree: {
		MaxFeedbackItems: 3,
		Explanations:     DepthNone,
	},
	accuracy.TierPro: {
		Tone:             true,
		Readability:      true,
		Coherence:        true,
		MaxFeedbackItems: 8,
		Explanations:     DepthBrief,
	},
	accuracy.TierPremium: {
		Tone:             true,
		Readability:      true,
		Style:            true,
		Coherence:        true,
		PremiumInsights:  true,
		Alternatives:     true,
		MaxFeedbackItems: 15,
		Explanations:     DepthDetailed,
	},
}

// ForTier returns the capability set for a tier. Unknown tiers get the
// free capabilities rather than an error so a stale tier string from a
// caller degrades instead of failing the analysis.
func ForTier(t accuracy.Tier) Capabilities {
	if caps, ok := capabilityTable[t]; ok {
		return caps
	}
	return capabilityTable[accuracy.TierFree]
}

// TrimFeedback truncates feedback to the tier's maximum item count.
func (c Capabilities) TrimFeedback(items []string) []string {
	if c.MaxFeedbackItems <= 0 || len(items) <= c.MaxFeedbackItems {
		return items
	}
	return items[:c.MaxFeedbackItems]
}

// Redact strips explanation fields a tier is not entitled to. Records are
// copied; the input slice is never mutated.
func (c Capabilities) Redact(records []accuracy.ErrorRecord) []accuracy.ErrorRecord {
	out := make([]accuracy.ErrorRecord, len(records))
	copy(out, records)
	for i := range out {
		if c.Explanations == DepthNone {
			out[i].Explanation = ""
			out[i].Examples = nil
		}
		if !c.Alternatives {
			out[i].Alternatives = nil
		}
	}
	return out
}
