// Package engine orchestrates one accuracy analysis: language filtering,
// the six category analyzers, concurrent detector fan-out, evidence
// reconciliation, score fusion, and historical smoothing.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/analyze"
	"github.com/kavya/lexis/internal/detect"
	"github.com/kavya/lexis/internal/evidence"
	"github.com/kavya/lexis/internal/fusion"
	"github.com/kavya/lexis/internal/history"
	"github.com/kavya/lexis/internal/language"
	"github.com/kavya/lexis/internal/tier"
)

// emptyOverall is the overall score reported for a message with no
// analyzable content.
const emptyOverall = 10

// Service runs the analysis pipeline. It holds no per-request state, so
// one Service may serve concurrent callers.
type Service struct {
	detectors []detect.Detector
	decay     float64
	log       zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDecayFactor sets a default historical decay applied when the
// request carries no smoothing overrides.
func WithDecayFactor(f float64) Option {
	return func(s *Service) { s.decay = f }
}

// New builds a Service over the given detectors. Detectors are expected
// to be wrapped with detect.WithResilience; a raw detector that returns
// an error is replaced by its local heuristic.
func New(detectors []detect.Detector, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{detectors: detectors, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is everything one analysis produced. Pair carries the scored
// snapshots; the remaining fields exist for diagnostics and UI.
type Result struct {
	Pair          accuracy.SnapshotPair           `json:"pair"`
	Contributions []accuracy.DetectorContribution `json:"contributions,omitempty"`
	Errors        []accuracy.ErrorRecord          `json:"errors,omitempty"`
	Feedback      []string                        `json:"feedback,omitempty"`
	Language      language.Context                `json:"language"`
}

// Analyze scores one learner message. It never fails on detector
// problems; the only errors returned are context cancellation.
func (s *Service) Analyze(ctx context.Context, req accuracy.AnalysisRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	caps := tier.ForTier(req.Tier)

	if message == "" {
		return s.emptyResult(req, caps), nil
	}

	var lang language.Context
	if req.Language != nil {
		lang = language.FromSummary(req.Language)
	} else {
		lang = language.Classify(message)
	}

	results := s.runAnalyzers(message, lang, caps)

	var contributions []accuracy.DetectorContribution
	if !lang.SkipEnglishChecks {
		contributions = s.fanOut(ctx, detect.Input{
			Text:  message,
			Tier:  req.Tier,
			Level: req.Level,
		})
	}

	ev := evidence.Extract(req.TutorResponse)
	s.reconcile(&results, contributions, ev)

	current := s.buildSnapshot(results, ev, caps)

	allErrors := collectErrors(results, lang)
	current.TotalErrors = len(allErrors)
	current.CriticalErrors = accuracy.CountCritical(allErrors)
	current.ErrorsByKind = accuracy.KindHistogram(allErrors)
	current.Overall = fusion.Fuse(current.Base(), current.CriticalErrors)
	current.AdjustedOverall = current.Overall

	smoothing := accuracy.SmoothingOverrides{}
	if req.Smoothing != nil {
		smoothing = *req.Smoothing
	}
	if smoothing.DecayFactor == 0 && s.decay > 0 {
		smoothing.DecayFactor = s.decay
	}
	pair := history.Blend(current, req.Prior, req.Tier, smoothing)

	s.log.Debug().
		Float64("overall", pair.Current.Overall).
		Int("total_errors", pair.Current.TotalErrors).
		Int("critical_errors", pair.Current.CriticalErrors).
		Str("language", lang.Primary).
		Int("detectors", len(contributions)).
		Msg("analysis complete")

	return &Result{
		Pair:          pair,
		Contributions: contributions,
		Errors:        caps.Redact(allErrors),
		Feedback:      caps.TrimFeedback(collectFeedback(results, lang)),
		Language:      lang,
	}, nil
}

// categoryResults bundles the six analyzer outputs while the pipeline
// refines them.
type categoryResults struct {
	Grammar        analyze.Result
	Spelling       analyze.Result
	Vocabulary     analyze.Result
	Fluency        analyze.Result
	Punctuation    analyze.Result
	Capitalization analyze.Result
}

func (s *Service) runAnalyzers(message string, lang language.Context, caps tier.Capabilities) categoryResults {
	if lang.SkipEnglishChecks {
		neutral := analyze.Neutral("cannot evaluate non-English content")
		return categoryResults{
			Grammar:        analyze.Grammar(message, lang, caps),
			Spelling:       neutral,
			Vocabulary:     neutral,
			Fluency:        neutral,
			Punctuation:    neutral,
			Capitalization: neutral,
		}
	}
	return categoryResults{
		Grammar:        analyze.Grammar(message, lang, caps),
		Spelling:       analyze.Spelling(message, caps),
		Vocabulary:     analyze.Vocabulary(message, caps),
		Fluency:        analyze.Fluency(message, caps),
		Punctuation:    analyze.Punctuation(message),
		Capitalization: analyze.Capitalization(message),
	}
}

// fanOut runs every detector concurrently and joins their contributions.
// Order of the output matches the detector registration order so results
// are deterministic for diagnostics.
func (s *Service) fanOut(ctx context.Context, in detect.Input) []accuracy.DetectorContribution {
	if len(s.detectors) == 0 {
		return nil
	}

	contributions := make([]accuracy.DetectorContribution, len(s.detectors))
	var wg sync.WaitGroup
	for i, d := range s.detectors {
		wg.Add(1)
		go func(i int, d detect.Detector) {
			defer wg.Done()
			start := time.Now()
			c, err := d.Check(ctx, in)
			if err != nil {
				// Resilient detectors never error; a raw one that does is
				// downgraded to its heuristic here.
				s.log.Warn().Err(err).Str("detector", d.Name()).Msg("detector failed")
				c = detect.HeuristicContribution(d.Name(), in)
				c.Source = detect.FallbackPrefix + d.Name()
				c.Fallback = true
				c.Latency = time.Since(start)
			}
			contributions[i] = c
		}(i, d)
	}
	wg.Wait()
	return contributions
}

// reconcile folds detector contributions and tutor-response evidence back
// into the local analyzer results.
func (s *Service) reconcile(results *categoryResults, contributions []accuracy.DetectorContribution, ev evidence.ResponseAnalysis) {
	corroborated := len(results.Spelling.Errors) > 0 || ev.HasGrammarCorrection
	for _, c := range contributions {
		if c.Source == detect.SourceSpeller && !c.Fallback && c.ErrorCount > 0 {
			corroborated = true
		}
	}

	for _, c := range contributions {
		switch c.Source {
		case detect.SourceGrammar:
			results.Grammar = detect.MergeGrammar(results.Grammar, c, corroborated)
		case detect.SourceSpeller:
			results.Spelling = mergeSpelling(results.Spelling, c)
		case detect.SourceCEFR:
			results.Vocabulary = mergeBlend(results.Vocabulary, c, 0.7)
		case detect.SourceFluency:
			results.Fluency = mergeBlend(results.Fluency, c, 0.6)
		}
	}

	// Tutor corrections are authoritative evidence of real errors: fold
	// their records into grammar and apply the capped fluency penalty.
	if records := ev.ErrorRecords(); len(records) > 0 {
		results.Grammar.Errors = accuracy.DedupeErrors(append(results.Grammar.Errors, records...))
	}
	if p := ev.FluencyPenalty(); p > 0 {
		results.Fluency.Score = accuracy.ClampScore(results.Fluency.Score - p)
		results.Fluency.Metrics.Score = results.Fluency.Score
	}
}

// mergeSpelling takes the dictionary service as authoritative on words it
// flagged while never raising the local score.
func mergeSpelling(local analyze.Result, c accuracy.DetectorContribution) analyze.Result {
	if c.Fallback {
		return local
	}
	merged := local
	merged.Errors = accuracy.DedupeErrors(append(append([]accuracy.ErrorRecord{}, c.Errors...), local.Errors...))
	if c.Score < merged.Score {
		merged.Score = c.Score
	}
	merged.Metrics.Score = merged.Score
	merged.Metrics.ErrorCount = len(merged.Errors)
	merged.Metrics.SeverityCounts = accuracy.SeverityHistogram(merged.Errors)
	return merged
}

// mergeBlend mixes a contribution into a local score with the given local
// weight, carrying the contribution's records along.
func mergeBlend(local analyze.Result, c accuracy.DetectorContribution, localWeight float64) analyze.Result {
	if c.Fallback {
		return local
	}
	merged := local
	merged.Score = accuracy.RoundScore(localWeight*local.Score + (1-localWeight)*c.Score)
	merged.Errors = accuracy.DedupeErrors(append(append([]accuracy.ErrorRecord{}, local.Errors...), c.Errors...))
	merged.Metrics.Score = merged.Score
	merged.Metrics.ErrorCount = len(merged.Errors)
	return merged
}

func (s *Service) buildSnapshot(r categoryResults, ev evidence.ResponseAnalysis, caps tier.Capabilities) *accuracy.AccuracySnapshot {
	snap := &accuracy.AccuracySnapshot{
		ID:             uuid.NewString(),
		Grammar:        r.Grammar.Score,
		Spelling:       r.Spelling.Score,
		Vocabulary:     r.Vocabulary.Score,
		Fluency:        r.Fluency.Score,
		Punctuation:    r.Punctuation.Score,
		Capitalization: r.Capitalization.Score,
		Timestamp:      time.Now().UTC(),
	}

	snap.Syntax = syntaxScore(r)
	snap.Coherence = accuracy.RoundScore(
		0.5*r.Fluency.Score + 0.3*r.Vocabulary.Score + 0.2*r.Grammar.Score)

	if caps.Readability {
		v := accuracy.ClampScore(r.Fluency.Metrics.Details["readability"])
		snap.Readability = &v
	}
	if caps.Tone {
		v := toneScore(r, ev)
		snap.Tone = &v
	}
	if caps.Style {
		v := accuracy.RoundScore(
			0.5*r.Vocabulary.Score + 0.3*r.Fluency.Score + 0.2*r.Grammar.Score)
		snap.Style = &v
	}

	return snap
}

// syntaxScore views grammar and fluency through a structural lens, with
// an extra deduction for explicit syntax findings.
func syntaxScore(r categoryResults) float64 {
	base := 0.7*r.Grammar.Score + 0.3*r.Fluency.Score
	penalty := 0.0
	for _, rec := range r.Grammar.Errors {
		if rec.Kind == accuracy.KindSyntax {
			penalty += 4
		}
	}
	if penalty > 20 {
		penalty = 20
	}
	return accuracy.RoundScore(base - penalty)
}

// toneScore prefers the tutor's observed engagement when a response is
// available, otherwise derives tone from fluency and vocabulary.
func toneScore(r categoryResults, ev evidence.ResponseAnalysis) float64 {
	derived := 0.6*r.Fluency.Score + 0.4*r.Vocabulary.Score
	if ev.EngagementScore > 0 {
		return accuracy.RoundScore(0.5*derived + 0.5*ev.EngagementScore)
	}
	return accuracy.RoundScore(derived)
}

// collectErrors gathers every error record in authority order: grammar
// first (it carries the merged service and evidence findings), then the
// remaining categories.
func collectErrors(r categoryResults, lang language.Context) []accuracy.ErrorRecord {
	var all []accuracy.ErrorRecord
	all = append(all, r.Grammar.Errors...)
	all = append(all, r.Spelling.Errors...)
	all = append(all, r.Vocabulary.Errors...)
	all = append(all, r.Fluency.Errors...)
	all = append(all, r.Punctuation.Errors...)
	all = append(all, r.Capitalization.Errors...)
	all = lang.SuppressRelaxed(all)
	return accuracy.DedupeErrors(all)
}

func collectFeedback(r categoryResults, lang language.Context) []string {
	var items []string
	items = append(items, lang.Notes...)
	for _, res := range []analyze.Result{
		r.Grammar, r.Spelling, r.Vocabulary, r.Fluency, r.Punctuation, r.Capitalization,
	} {
		items = append(items, res.Feedback...)
	}
	return dedupeStrings(items)
}

func dedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// emptyResult is the well-formed response for a message with no content.
func (s *Service) emptyResult(req accuracy.AnalysisRequest, caps tier.Capabilities) *Result {
	current := &accuracy.AccuracySnapshot{
		ID:              uuid.NewString(),
		Overall:         emptyOverall,
		AdjustedOverall: emptyOverall,
		Timestamp:       time.Now().UTC(),
	}

	smoothing := accuracy.SmoothingOverrides{}
	if req.Smoothing != nil {
		smoothing = *req.Smoothing
	}
	pair := history.Blend(current, req.Prior, req.Tier, smoothing)

	return &Result{
		Pair:     pair,
		Feedback: caps.TrimFeedback([]string{"no content to analyze"}),
		Language: language.Context{Primary: "unknown"},
	}
}
