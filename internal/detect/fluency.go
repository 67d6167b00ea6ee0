package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/llm"
)

// fluencySchema defines the JSON schema for LLM fluency ratings.
var fluencySchema = &llm.Schema{
	Name:        "fluency-rating",
	Description: "A fluency assessment of one English learner message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     100.0,
				"description": "Overall fluency of the message on a 0-100 scale",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence in the score",
			},
			"issues": map[string]any{
				"type":        "array",
				"description": "Short phrases naming the fluency problems found, empty if none",
				"items": map[string]any{
					"type": "string",
				},
			},
		},
		"required":             []any{"score", "confidence", "issues"},
		"additionalProperties": false,
	},
}

const fluencySystemPrompt = `You are an English fluency rater for language learners.
Rate how naturally the message reads to a native speaker: word order,
idiomatic phrasing, rhythm and flow. Ignore spelling. Be consistent:
the same message always gets the same score.`

// FluencyScorerConfig bounds the LLM call.
type FluencyScorerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultFluencyScorerConfig returns sensible defaults.
func DefaultFluencyScorerConfig() FluencyScorerConfig {
	return FluencyScorerConfig{
		MaxTokens:   256,
		Temperature: 0.0,
	}
}

// FluencyScorer rates message fluency with an LLM, using schema-validated
// structured output.
type FluencyScorer struct {
	provider llm.Provider
	cfg      FluencyScorerConfig
}

func NewFluencyScorer(provider llm.Provider, cfg FluencyScorerConfig) *FluencyScorer {
	return &FluencyScorer{provider: provider, cfg: cfg}
}

func (s *FluencyScorer) Name() string { return SourceFluency }

// fluencyOutput is the raw LLM response.
type fluencyOutput struct {
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
}

// Check sends the message to the LLM and converts the rating into a
// contribution. Reported issues become style records at suggestion
// severity; the LLM names problems but does not locate them.
func (s *FluencyScorer) Check(ctx context.Context, in Input) (accuracy.DetectorContribution, error) {
	start := time.Now()
	ctx = llm.WithPurpose(ctx, "fluency-score")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: fluencySystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("Learner level: %s\n\nMessage:\n%s", in.Level, in.Text),
		}},
		Schema:      fluencySchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("fluency scorer: %w", err)
	}

	var out fluencyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("decode fluency rating: %w", err)
	}

	errors := make([]accuracy.ErrorRecord, 0, len(out.Issues))
	for _, issue := range out.Issues {
		errors = append(errors, accuracy.ErrorRecord{
			Kind:     accuracy.KindFluency,
			Severity: accuracy.SeveritySuggestion,
			Message:  issue,
			RuleID:   "llm-fluency",
		})
	}

	return accuracy.DetectorContribution{
		Source:     SourceFluency,
		Score:      accuracy.ClampScore(out.Score),
		Confidence: accuracy.ClampUnit(out.Confidence),
		ErrorCount: len(errors),
		Errors:     errors,
		Latency:    time.Since(start),
	}, nil
}
