package detect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/cache"
	"github.com/kavya/lexis/internal/textutil"
)

// Resilient decorates a Detector with a bounded timeout, a read-through
// cache keyed by the input text hash, and a local fallback heuristic.
// Check never returns an error: any failure becomes a labeled fallback
// contribution.
type Resilient struct {
	inner    Detector
	cache    cache.Provider
	ttl      time.Duration
	timeout  time.Duration
	fallback func(Input) accuracy.DetectorContribution
	log      zerolog.Logger
}

// WithResilience wraps a detector. A nil fallback uses the built-in
// heuristic for the detector's source name.
func WithResilience(d Detector, c cache.Provider, ttl, timeout time.Duration,
	fallback func(Input) accuracy.DetectorContribution, log zerolog.Logger) *Resilient {
	if c == nil {
		c = cache.NoopProvider{}
	}
	if fallback == nil {
		name := d.Name()
		fallback = func(in Input) accuracy.DetectorContribution {
			return HeuristicContribution(name, in)
		}
	}
	return &Resilient{
		inner:    d,
		cache:    c,
		ttl:      ttl,
		timeout:  timeout,
		fallback: fallback,
		log:      log,
	}
}

func (r *Resilient) Name() string { return r.inner.Name() }

// Check consults the cache, then the wrapped detector under its own
// timeout, then the fallback. The returned error is always nil.
func (r *Resilient) Check(ctx context.Context, in Input) (accuracy.DetectorContribution, error) {
	key := r.cacheKey(in.Text)

	if data, err := r.cache.Get(ctx, key); err == nil {
		var cached accuracy.DetectorContribution
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entries are dropped and recomputed.
		_ = r.cache.Del(ctx, key)
	}

	checkCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	contribution, err := r.inner.Check(checkCtx, in)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("detector", r.inner.Name()).
			Msg("detector failed, using local fallback")

		fb := r.fallback(in)
		fb.Source = FallbackPrefix + r.inner.Name()
		fb.Fallback = true
		return fb, nil
	}

	// Best effort: a cache write failure never delays the pipeline.
	if data, marshalErr := json.Marshal(contribution); marshalErr == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl); setErr != nil {
			r.log.Debug().Err(setErr).Str("detector", r.inner.Name()).Msg("cache write failed")
		}
	}

	return contribution, nil
}

func (r *Resilient) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("detect:%s:%s", r.inner.Name(), hex.EncodeToString(sum[:]))
}

// HeuristicContribution is the local stand-in used when a detector is
// unavailable. Scores are conservative and confidence is low so fusion
// leans on the pattern analyzers instead.
func HeuristicContribution(name string, in Input) accuracy.DetectorContribution {
	words := textutil.Words(in.Text)
	sentences := textutil.Sentences(in.Text)

	switch name {
	case SourceFluency:
		// Sentence-length proxy: closest to ~12 words per sentence
		// scores best.
		if len(sentences) == 0 || len(words) == 0 {
			return accuracy.DetectorContribution{Score: 50, Confidence: 0.2}
		}
		wps := float64(len(words)) / float64(len(sentences))
		dev := wps - 12
		if dev < 0 {
			dev = -dev
		}
		return accuracy.DetectorContribution{
			Score:      accuracy.ClampScore(85 - dev*3),
			Confidence: 0.3,
		}
	case SourceGrammar:
		return accuracy.DetectorContribution{Score: 75, Confidence: 0.2}
	case SourceSpeller:
		return accuracy.DetectorContribution{Score: 85, Confidence: 0.2}
	case SourceCEFR:
		return accuracy.DetectorContribution{Score: 60, Confidence: 0.2}
	default:
		return accuracy.DetectorContribution{Score: 50, Confidence: 0.1}
	}
}
