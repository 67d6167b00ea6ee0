package analyze

import (
	"testing"

	"github.com/kavya/lexis/internal/accuracy"
)

func TestPunctuation_Clean(t *testing.T) {
	r := Punctuation("I went to the store yesterday.")
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100", r.Score)
	}
}

func TestPunctuation_MissingTerminator(t *testing.T) {
	r := Punctuation("I went to the store")
	if r.Score != 88 {
		t.Errorf("Score = %f, want 88", r.Score)
	}
	if len(r.Errors) != 1 || r.Errors[0].RuleID != "missing-terminator" {
		t.Fatalf("Errors = %v, want one missing-terminator record", r.Errors)
	}
}

func TestPunctuation_DoubleSpace(t *testing.T) {
	r := Punctuation("Hello  there friend.")
	if r.Score != 96 {
		t.Errorf("Score = %f, want 96", r.Score)
	}
	if r.Errors[0].Span == nil {
		t.Error("double-space record should carry a span")
	}
}

func TestPunctuation_SpaceBeforePunctuation(t *testing.T) {
	r := Punctuation("Hello , how are you ?")
	// Two violations at 4 each.
	if r.Score != 92 {
		t.Errorf("Score = %f, want 92", r.Score)
	}
}

func TestPunctuation_ExcessiveMarks(t *testing.T) {
	r := Punctuation("That was great!!!")
	if r.Score != 95 {
		t.Errorf("Score = %f, want 95", r.Score)
	}
	if r.Errors[0].RuleID != "excess-punct" {
		t.Errorf("RuleID = %q, want excess-punct", r.Errors[0].RuleID)
	}
}

func TestPunctuation_CapsPerFamily(t *testing.T) {
	// Four double-space findings deduct at most 12, not 16.
	r := Punctuation("a  b  c  d  e  f  g  h.")
	if r.Score != 88 {
		t.Errorf("Score = %f, want 88 with the family cap applied", r.Score)
	}
}

func TestPunctuation_Empty(t *testing.T) {
	r := Punctuation("")
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100 for empty input", r.Score)
	}
}

func TestCapitalization_Clean(t *testing.T) {
	r := Capitalization("I met Anna on Monday. We had coffee.")
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100", r.Score)
	}
}

func TestCapitalization_SentenceCase(t *testing.T) {
	r := Capitalization("hello there. how are you?")
	// Two lowercase sentence starts at 12 each.
	if r.Score != 76 {
		t.Errorf("Score = %f, want 76", r.Score)
	}
	for _, e := range r.Errors {
		if e.Kind != accuracy.KindCapitalization {
			t.Errorf("Kind = %v, want capitalization", e.Kind)
		}
	}
}

func TestCapitalization_LowercasePronounI(t *testing.T) {
	r := Capitalization("Yesterday i saw a film.")
	if r.Score != 85 {
		t.Errorf("Score = %f, want 85", r.Score)
	}
	found := false
	for _, e := range r.Errors {
		if e.RuleID == "pronoun-i" && e.Suggestion == "I" {
			found = true
		}
	}
	if !found {
		t.Fatalf("pronoun record missing in %v", r.Errors)
	}
}

func TestCapitalization_PronounCap(t *testing.T) {
	// Three lowercase "i" occurrences deduct at most 30.
	r := Capitalization("Maybe i can and i will and i should.")
	if r.Score != 70 {
		t.Errorf("Score = %f, want 70 with the pronoun cap applied", r.Score)
	}
}

func TestCapitalization_ProperNoun(t *testing.T) {
	r := Capitalization("We left for paris on friday.")
	// Two lowercase proper nouns at 6 each.
	if r.Score != 88 {
		t.Errorf("Score = %f, want 88", r.Score)
	}
	found := false
	for _, e := range r.Errors {
		if e.RuleID == "proper-noun" && e.Suggestion == "Paris" {
			found = true
		}
	}
	if !found {
		t.Fatalf("proper noun record missing in %v", r.Errors)
	}
}

func TestCapitalization_Empty(t *testing.T) {
	r := Capitalization("")
	if r.Score != 100 {
		t.Errorf("Score = %f, want 100 for empty input", r.Score)
	}
}
