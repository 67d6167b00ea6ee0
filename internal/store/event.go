package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
			(created_at, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request event: %w", err)
	}
	return nil
}
