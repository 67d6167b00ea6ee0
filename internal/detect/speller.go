package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/textutil"
)

// DictionarySpeller adapts an HTTP dictionary spell-checking service.
// The service accepts a JSON word list and returns the subset it does
// not recognize, with optional suggestions.
type DictionarySpeller struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewDictionarySpeller(baseURL string, timeout time.Duration, log zerolog.Logger) *DictionarySpeller {
	return &DictionarySpeller{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (s *DictionarySpeller) Name() string { return SourceSpeller }

type spellCheckRequest struct {
	Words []string `json:"words"`
}

type spellCheckResponse struct {
	Unknown []struct {
		Word        string   `json:"word"`
		Suggestions []string `json:"suggestions"`
	} `json:"unknown"`
}

// Check sends the message's unique words for lookup. Unknown words
// become spelling records; the score is the known-word ratio.
func (s *DictionarySpeller) Check(ctx context.Context, in Input) (accuracy.DetectorContribution, error) {
	start := time.Now()

	words := uniqueLowerWords(in.Text)
	if len(words) == 0 {
		return accuracy.DetectorContribution{
			Source:     SourceSpeller,
			Score:      100,
			Confidence: 1,
			Latency:    time.Since(start),
		}, nil
	}

	body, err := json.Marshal(spellCheckRequest{Words: words})
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("encode speller request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/check", bytes.NewReader(body))
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("build speller request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("dictionary speller: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return accuracy.DetectorContribution{}, fmt.Errorf("dictionary speller: status %d", resp.StatusCode)
	}

	var parsed spellCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("decode speller response: %w", err)
	}

	errors := make([]accuracy.ErrorRecord, 0, len(parsed.Unknown))
	for _, u := range parsed.Unknown {
		rec := accuracy.ErrorRecord{
			Kind:     accuracy.KindSpelling,
			Severity: accuracy.SeverityMedium,
			Message:  fmt.Sprintf("%q not found in dictionary", u.Word),
			Matched:  u.Word,
			RuleID:   "dictionary-unknown",
		}
		if len(u.Suggestions) > 0 {
			rec.Suggestion = u.Suggestions[0]
		}
		errors = append(errors, rec)
	}

	ratio := float64(len(words)-len(errors)) / float64(len(words))

	s.log.Debug().
		Int("words", len(words)).
		Int("unknown", len(errors)).
		Dur("latency", time.Since(start)).
		Msg("dictionary speller check")

	return accuracy.DetectorContribution{
		Source:     SourceSpeller,
		Score:      accuracy.ClampScore(ratio * 100),
		Confidence: 0.85,
		ErrorCount: len(errors),
		Errors:     errors,
		Latency:    time.Since(start),
	}, nil
}

func uniqueLowerWords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range textutil.LowerWords(text) {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
