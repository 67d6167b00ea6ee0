package accuracy

import "testing"

func TestSeverityWeight_Ordering(t *testing.T) {
	ordered := []Severity{
		SeveritySuggestion, SeverityLow, SeverityMedium,
		SeverityHigh, SeverityMajor, SeverityCritical,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Weight() <= ordered[i-1].Weight() {
			t.Errorf("Weight(%s) = %.1f not greater than Weight(%s) = %.1f",
				ordered[i], ordered[i].Weight(), ordered[i-1], ordered[i-1].Weight())
		}
	}
}

func TestSeverityWeight_UnknownDefaultsToMedium(t *testing.T) {
	if got := Severity("bogus").Weight(); got != SeverityMedium.Weight() {
		t.Errorf("unknown severity weight = %.1f, want %.1f", got, SeverityMedium.Weight())
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{130, 100},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%.1f) = %.1f, want %.1f", tt.in, got, tt.want)
		}
	}
}

func TestRoundScore(t *testing.T) {
	if got := RoundScore(86.5); got != 87 {
		t.Errorf("RoundScore(86.5) = %.1f, want 87", got)
	}
	if got := RoundScore(120.2); got != 100 {
		t.Errorf("RoundScore(120.2) = %.1f, want 100", got)
	}
}

func TestDedupeErrors_SameKindAndSpan(t *testing.T) {
	span := &Span{Start: 3, End: 8}
	records := []ErrorRecord{
		{Kind: KindGrammar, Severity: SeverityCritical, Message: "from service", Span: span},
		{Kind: KindGrammar, Severity: SeverityMedium, Message: "from rules", Span: span},
		{Kind: KindSpelling, Severity: SeverityLow, Message: "other kind", Span: span},
	}

	got := DedupeErrors(records)
	if len(got) != 2 {
		t.Fatalf("DedupeErrors returned %d records, want 2", len(got))
	}
	// First record wins so the authoritative detector's severity sticks.
	if got[0].Message != "from service" || got[0].Severity != SeverityCritical {
		t.Errorf("kept record = %+v, want the first occurrence", got[0])
	}
}

func TestDedupeErrors_NoSpanUsesMatchedText(t *testing.T) {
	records := []ErrorRecord{
		{Kind: KindGrammar, Message: "double negative", Matched: "don't know nothing"},
		{Kind: KindGrammar, Message: "double negative", Matched: "don't know nothing"},
		{Kind: KindGrammar, Message: "double negative", Matched: "can't get no"},
	}
	if got := DedupeErrors(records); len(got) != 2 {
		t.Errorf("DedupeErrors returned %d records, want 2", len(got))
	}
}

func TestCountCritical(t *testing.T) {
	records := []ErrorRecord{
		{Kind: KindGrammar, Severity: SeverityCritical},
		{Kind: KindGrammar, Severity: SeverityMajor},
		{Kind: KindSpelling, Severity: SeverityCritical},
	}
	if got := CountCritical(records); got != 2 {
		t.Errorf("CountCritical = %d, want 2", got)
	}
}

func TestKindHistogram(t *testing.T) {
	records := []ErrorRecord{
		{Kind: KindGrammar}, {Kind: KindGrammar}, {Kind: KindFluency},
	}
	hist := KindHistogram(records)
	if hist[KindGrammar] != 2 || hist[KindFluency] != 1 {
		t.Errorf("KindHistogram = %v", hist)
	}
}

func TestSnapshotClone_Independent(t *testing.T) {
	r := 72.0
	snap := &AccuracySnapshot{
		Overall:      88,
		ErrorsByKind: map[ErrorKind]int{KindGrammar: 2},
		Readability:  &r,
	}
	clone := snap.Clone()
	clone.ErrorsByKind[KindGrammar] = 99
	*clone.Readability = 1

	if snap.ErrorsByKind[KindGrammar] != 2 {
		t.Error("Clone shares the ErrorsByKind map")
	}
	if *snap.Readability != 72 {
		t.Error("Clone shares the Readability pointer")
	}
}
