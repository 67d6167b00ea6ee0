package cmd

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/cache"
	"github.com/kavya/lexis/internal/config"
	"github.com/kavya/lexis/internal/detect"
	"github.com/kavya/lexis/internal/engine"
	"github.com/kavya/lexis/internal/llm"
	"github.com/kavya/lexis/internal/store"
)

// buildService assembles the analysis engine from config: external
// detectors where configured, the local CEFR model always, and the LLM
// fluency scorer when a provider is discoverable in the environment.
// Every detector is wrapped with caching, timeout, and local fallback.
func buildService(ctx context.Context, cfg *config.Config, eventRepo store.EventRepo, log zerolog.Logger) *engine.Service {
	mem := cache.NewMemoryProvider()
	ttl := cfg.Cache.TTL
	timeout := cfg.Detectors.Timeout

	resilient := func(d detect.Detector) detect.Detector {
		return detect.WithResilience(d, mem, ttl, timeout, nil, log)
	}

	var detectors []detect.Detector
	if cfg.Detectors.Enabled {
		if cfg.Detectors.GrammarURL != "" {
			detectors = append(detectors,
				resilient(detect.NewGrammarService(cfg.Detectors.GrammarURL, timeout, log)))
		}
		if cfg.Detectors.SpellerURL != "" {
			detectors = append(detectors,
				resilient(detect.NewDictionarySpeller(cfg.Detectors.SpellerURL, timeout, log)))
		}
		detectors = append(detectors, resilient(detect.NewCEFRModel()))

		if llmCfg, ok := llm.DiscoverConfig(); ok {
			provider, err := llm.NewProvider(ctx, llmCfg, eventRepo, log)
			if err != nil {
				log.Warn().Err(err).Msg("llm provider unavailable, fluency scoring stays local")
			} else {
				detectors = append(detectors, resilient(
					detect.NewFluencyScorer(provider, detect.DefaultFluencyScorerConfig())))
			}
		}
	}

	return engine.New(detectors, log, engine.WithDecayFactor(cfg.History.DecayFactor))
}
