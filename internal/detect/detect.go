// Package detect wraps the external detectors: a grammar-checking
// service, a dictionary speller, a CEFR vocabulary model and an LLM
// fluency scorer. Every adapter normalizes its result into an
// accuracy.DetectorContribution; the Resilient wrapper adds timeout,
// caching and local fallback so a detector outage degrades quality, not
// availability.
package detect

import (
	"context"

	"github.com/kavya/lexis/internal/accuracy"
)

// Source identifiers attached to contributions. Fallback variants carry
// the FallbackPrefix in front of the detector name.
const (
	SourceGrammar  = "grammar-service"
	SourceSpeller  = "dictionary-checker"
	SourceCEFR     = "cefr-wordlists"
	SourceFluency  = "transformer-fluency"
	FallbackPrefix = "fallback-"
)

// Input is the immutable text plus tier/level hints handed to every
// detector.
type Input struct {
	Text  string
	Tier  accuracy.Tier
	Level accuracy.Level
}

// Detector is one external checking service.
type Detector interface {
	// Name returns the detector's source identifier.
	Name() string

	// Check analyzes the input text. Implementations respect ctx
	// cancellation; errors are recovered by the Resilient wrapper, never
	// surfaced to the pipeline.
	Check(ctx context.Context, in Input) (accuracy.DetectorContribution, error)
}
