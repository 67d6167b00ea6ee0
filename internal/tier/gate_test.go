package tier

import (
	"testing"

	"github.com/kavya/lexis/internal/accuracy"
)

func TestForTier_CapabilitiesAreNested(t *testing.T) {
	free := ForTier(accuracy.TierFree)
	pro := ForTier(accuracy.TierPro)
	premium := ForTier(accuracy.TierPremium)

	// Each tier's boolean capabilities must be a superset of the one below.
	implies := func(lower, higher bool) bool { return !lower || higher }

	pairs := []struct {
		name          string
		lower, higher bool
	}{
		{"tone free<=pro", free.Tone, pro.Tone},
		{"tone pro<=premium", pro.Tone, premium.Tone},
		{"readability free<=pro", free.Readability, pro.Readability},
		{"readability pro<=premium", pro.Readability, premium.Readability},
		{"style free<=pro", free.Style, pro.Style},
		{"style pro<=premium", pro.Style, premium.Style},
		{"coherence free<=pro", free.Coherence, pro.Coherence},
		{"coherence pro<=premium", pro.Coherence, premium.Coherence},
		{"insights free<=pro", free.PremiumInsights, pro.PremiumInsights},
		{"insights pro<=premium", pro.PremiumInsights, premium.PremiumInsights},
	}
	for _, p := range pairs {
		if !implies(p.lower, p.higher) {
			t.Errorf("%s: capability granted at lower tier but not higher", p.name)
		}
	}

	if !(free.MaxFeedbackItems < pro.MaxFeedbackItems && pro.MaxFeedbackItems < premium.MaxFeedbackItems) {
		t.Errorf("feedback limits not increasing: %d, %d, %d",
			free.MaxFeedbackItems, pro.MaxFeedbackItems, premium.MaxFeedbackItems)
	}
}

func TestForTier_UnknownTierFallsBackToFree(t *testing.T) {
	got := ForTier(accuracy.Tier("enterprise"))
	if got != ForTier(accuracy.TierFree) {
		t.Errorf("unknown tier capabilities = %+v, want free tier", got)
	}
}

func TestTrimFeedback(t *testing.T) {
	caps := ForTier(accuracy.TierFree)
	items := []string{"a", "b", "c", "d", "e"}
	got := caps.TrimFeedback(items)
	if len(got) != caps.MaxFeedbackItems {
		t.Errorf("TrimFeedback kept %d items, want %d", len(got), caps.MaxFeedbackItems)
	}
}

func TestRedact_FreeTierStripsExplanations(t *testing.T) {
	records := []accuracy.ErrorRecord{{
		Kind:         accuracy.KindGrammar,
		Explanation:  "subjects need verbs",
		Examples:     []string{"I am going"},
		Alternatives: []string{"I will go"},
	}}

	got := ForTier(accuracy.TierFree).Redact(records)
	if got[0].Explanation != "" || got[0].Examples != nil || got[0].Alternatives != nil {
		t.Errorf("free tier record not redacted: %+v", got[0])
	}
	// Input must be untouched.
	if records[0].Explanation == "" {
		t.Error("Redact mutated the input slice")
	}

	premium := ForTier(accuracy.TierPremium).Redact(records)
	if premium[0].Explanation == "" || premium[0].Alternatives == nil {
		t.Errorf("premium tier record over-redacted: %+v", premium[0])
	}
}
