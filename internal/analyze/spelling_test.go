package analyze

import (
	"testing"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/tier"
)

func TestSpelling_Clean(t *testing.T) {
	r := Spelling("I went to the store yesterday and bought some fresh vegetables.", premiumCaps())
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100", r.Score)
	}
	if len(r.Errors) != 0 {
		t.Errorf("Errors = %v, want none", r.Errors)
	}
}

func TestSpelling_ContentWordError(t *testing.T) {
	r := Spelling("I will recieve the package.", premiumCaps())
	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", r.Errors)
	}
	e := r.Errors[0]
	if e.Kind != accuracy.KindSpelling {
		t.Errorf("Kind = %v, want spelling", e.Kind)
	}
	if e.Severity != accuracy.SeverityMedium {
		t.Errorf("Severity = %v, want medium for a content word", e.Severity)
	}
	if e.Suggestion != "receive" {
		t.Errorf("Suggestion = %q, want %q", e.Suggestion, "receive")
	}
	if e.Span == nil || e.Matched != "recieve" {
		t.Errorf("span/match not populated: %+v", e)
	}
	if r.Score >= 100 {
		t.Errorf("Score = %f, want < 100", r.Score)
	}
}

func TestSpelling_FunctionWordSeverityLow(t *testing.T) {
	// "teh" corrects to "the", a function word: less damaging.
	r := Spelling("I saw teh big dog near the house today.", premiumCaps())
	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", r.Errors)
	}
	if r.Errors[0].Severity != accuracy.SeverityLow {
		t.Errorf("Severity = %v, want low for a function word", r.Errors[0].Severity)
	}
}

func TestSpelling_ContentErrorsHurtMore(t *testing.T) {
	content := Spelling("I saw a beatiful big dog near the house today.", premiumCaps())
	function := Spelling("I saw teh beautiful big dog near the house today.", premiumCaps())
	if content.Score >= function.Score {
		t.Errorf("content-word error score %f, want < function-word error score %f",
			content.Score, function.Score)
	}
}

func TestSpelling_MissingApostrophe(t *testing.T) {
	r := Spelling("I dont know.", premiumCaps())
	if len(r.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", r.Errors)
	}
	if r.Errors[0].Suggestion != "don't" {
		t.Errorf("Suggestion = %q, want %q", r.Errors[0].Suggestion, "don't")
	}
}

func TestSpelling_DensityNormalization(t *testing.T) {
	short := Spelling("I will recieve it.", premiumCaps())
	long := Spelling("I will recieve the package tomorrow morning after breakfast when the mail carrier arrives at our street.", premiumCaps())
	if long.Score <= short.Score {
		t.Errorf("long message score %f, want > short message score %f", long.Score, short.Score)
	}
}

func TestSpelling_ExplanationGatedByTier(t *testing.T) {
	free := Spelling("I will recieve it.", tier.ForTier(accuracy.TierFree))
	premium := Spelling("I will recieve it.", premiumCaps())
	if free.Errors[0].Explanation != "" {
		t.Error("free tier record should not carry an explanation")
	}
	if premium.Errors[0].Explanation == "" {
		t.Error("premium tier record should carry an explanation")
	}
}

func TestSpelling_EmptyMessage(t *testing.T) {
	r := Spelling("", premiumCaps())
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100 for empty input", r.Score)
	}
}
