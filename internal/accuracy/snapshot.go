package accuracy

import (
	"math"
	"time"
)

// CategoryScores holds the six base category scores that fusion consumes.
type CategoryScores struct {
	Grammar        float64 `json:"grammar"`
	Spelling       float64 `json:"spelling"`
	Vocabulary     float64 `json:"vocabulary"`
	Fluency        float64 `json:"fluency"`
	Punctuation    float64 `json:"punctuation"`
	Capitalization float64 `json:"capitalization"`
}

// AccuracySnapshot is a full scored result at one point in time.
//
// Overall is always a weighted function of the six base category scores;
// AdjustedOverall mirrors the pre-smoothing overall and is never replaced
// by a historically blended value.
type AccuracySnapshot struct {
	ID              string  `json:"id"`
	Overall         float64 `json:"overall"`
	AdjustedOverall float64 `json:"adjusted_overall"`

	// Eight category scores: the six base categories plus the derived
	// syntax and coherence views.
	Grammar        float64 `json:"grammar"`
	Spelling       float64 `json:"spelling"`
	Vocabulary     float64 `json:"vocabulary"`
	Fluency        float64 `json:"fluency"`
	Punctuation    float64 `json:"punctuation"`
	Capitalization float64 `json:"capitalization"`
	Syntax         float64 `json:"syntax"`
	Coherence      float64 `json:"coherence"`

	TotalErrors    int               `json:"total_errors"`
	CriticalErrors int               `json:"critical_errors"`
	ErrorsByKind   map[ErrorKind]int `json:"errors_by_kind,omitempty"`

	// Advanced analyses, populated only when the tier enables them.
	Readability *float64 `json:"readability,omitempty"`
	Tone        *float64 `json:"tone,omitempty"`
	Style       *float64 `json:"style,omitempty"`

	CalculationCount int       `json:"calculation_count"`
	Timestamp        time.Time `json:"timestamp"`
}

// Base returns the six base category scores for fusion.
func (s *AccuracySnapshot) Base() CategoryScores {
	return CategoryScores{
		Grammar:        s.Grammar,
		Spelling:       s.Spelling,
		Vocabulary:     s.Vocabulary,
		Fluency:        s.Fluency,
		Punctuation:    s.Punctuation,
		Capitalization: s.Capitalization,
	}
}

// Clone returns a deep copy of the snapshot.
func (s *AccuracySnapshot) Clone() *AccuracySnapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.ErrorsByKind != nil {
		out.ErrorsByKind = make(map[ErrorKind]int, len(s.ErrorsByKind))
		for k, v := range s.ErrorsByKind {
			out.ErrorsByKind[k] = v
		}
	}
	out.Readability = cloneScore(s.Readability)
	out.Tone = cloneScore(s.Tone)
	out.Style = cloneScore(s.Style)
	return &out
}

func cloneScore(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SnapshotPair carries both views of one analysis. Current reflects this
// message alone; Weighted blends it with the user's prior rolling
// snapshot. Downstream consumers choose which to display or persist, so
// the two are never collapsed into one field.
type SnapshotPair struct {
	Current  *AccuracySnapshot `json:"current"`
	Weighted *AccuracySnapshot `json:"weighted"`
}

// DetectorContribution records one external detector's input to the
// analysis. A failed detector is still recorded, with a fallback source
// tag, so diagnostics never silently lose a contribution.
type DetectorContribution struct {
	Source     string        `json:"source"`
	Score      float64       `json:"score"`
	Confidence float64       `json:"confidence"`
	ErrorCount int           `json:"error_count"`
	Errors     []ErrorRecord `json:"errors,omitempty"`
	Latency    time.Duration `json:"latency"`
	Fallback   bool          `json:"fallback"`
}

// LanguageSummary is an optional language-detection result supplied by an
// external collaborator.
type LanguageSummary struct {
	Primary      string  `json:"primary"`
	EnglishRatio float64 `json:"english_ratio"`
}

// SmoothingOverrides are optional caller-supplied historical weighting
// adjustments.
type SmoothingOverrides struct {
	// DecayFactor scales the historical weight down (0 < f <= 1).
	// Zero means no decay.
	DecayFactor float64 `json:"decay_factor,omitempty"`
	// CurrentWeight forces the current-message weight. Zero means the
	// engine computes it dynamically.
	CurrentWeight float64 `json:"current_weight,omitempty"`
}

// AnalysisRequest is the immutable input to one analysis call.
type AnalysisRequest struct {
	Message       string              `json:"message"`
	TutorResponse string              `json:"tutor_response,omitempty"`
	Tier          Tier                `json:"tier"`
	Level         Level               `json:"level"`
	Language      *LanguageSummary    `json:"language,omitempty"`
	Prior         *AccuracySnapshot   `json:"prior,omitempty"`
	Smoothing     *SmoothingOverrides `json:"smoothing,omitempty"`
}

// RoundScore rounds to the nearest integer score, clamped to [0, 100].
func RoundScore(v float64) float64 {
	return ClampScore(math.Round(v))
}
