package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kavya/lexis/internal/accuracy"
)

// GrammarService adapts a LanguageTool-compatible HTTP grammar checker.
type GrammarService struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewGrammarService creates the adapter. timeout bounds each HTTP call.
func NewGrammarService(baseURL string, timeout time.Duration, log zerolog.Logger) *GrammarService {
	return &GrammarService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (s *GrammarService) Name() string { return SourceGrammar }

// grammarCheckResponse mirrors the LanguageTool /v2/check response, down
// to the fields we read.
type grammarCheckResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		ShortMessage string `json:"shortMessage"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID        string `json:"id"`
			IssueType string `json:"issueType"`
			Category  struct {
				ID string `json:"id"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check posts the text to /v2/check and converts matches into error
// records. The contribution score starts at 100 and loses weight-scaled
// points per match.
func (s *GrammarService) Check(ctx context.Context, in Input) (accuracy.DetectorContribution, error) {
	start := time.Now()

	form := url.Values{}
	form.Set("text", in.Text)
	form.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("build grammar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("grammar service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return accuracy.DetectorContribution{}, fmt.Errorf("grammar service: status %d", resp.StatusCode)
	}

	var parsed grammarCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return accuracy.DetectorContribution{}, fmt.Errorf("decode grammar response: %w", err)
	}

	errors := make([]accuracy.ErrorRecord, 0, len(parsed.Matches))
	penalty := 0.0
	for _, m := range parsed.Matches {
		rec := accuracy.ErrorRecord{
			Kind:     grammarKind(m.Rule.Category.ID),
			Severity: grammarSeverity(m.Rule.IssueType),
			Message:  firstNonEmpty(m.ShortMessage, m.Message),
			Span:     &accuracy.Span{Start: m.Offset, End: m.Offset + m.Length},
			RuleID:   m.Rule.ID,
		}
		if m.Offset >= 0 && m.Offset+m.Length <= len(in.Text) {
			rec.Matched = in.Text[m.Offset : m.Offset+m.Length]
		}
		if len(m.Replacements) > 0 {
			rec.Suggestion = m.Replacements[0].Value
		}
		errors = append(errors, rec)
		penalty += rec.Severity.Weight() * 2.5
	}

	s.log.Debug().
		Int("matches", len(parsed.Matches)).
		Dur("latency", time.Since(start)).
		Msg("grammar service check")

	return accuracy.DetectorContribution{
		Source:     SourceGrammar,
		Score:      accuracy.ClampScore(100 - penalty),
		Confidence: 0.9,
		ErrorCount: len(errors),
		Errors:     errors,
		Latency:    time.Since(start),
	}, nil
}

func grammarKind(categoryID string) accuracy.ErrorKind {
	switch strings.ToUpper(categoryID) {
	case "TYPOS", "MISSPELLING":
		return accuracy.KindSpelling
	case "PUNCTUATION":
		return accuracy.KindPunctuation
	case "CASING":
		return accuracy.KindCapitalization
	case "STYLE", "REDUNDANCY":
		return accuracy.KindStyle
	default:
		return accuracy.KindGrammar
	}
}

func grammarSeverity(issueType string) accuracy.Severity {
	switch strings.ToLower(issueType) {
	case "grammar":
		return accuracy.SeverityMajor
	case "misspelling":
		return accuracy.SeverityMedium
	case "typographical", "whitespace":
		return accuracy.SeverityLow
	case "style", "register":
		return accuracy.SeveritySuggestion
	default:
		return accuracy.SeverityMedium
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
