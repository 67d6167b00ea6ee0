package store

import (
	"context"

	"github.com/kavya/lexis/internal/accuracy"
)

// SnapshotRepo manages per-user accuracy snapshot history.
type SnapshotRepo interface {
	// Save stores a snapshot for a user.
	Save(ctx context.Context, userID string, snap *accuracy.AccuracySnapshot) error

	// Latest returns the most recent snapshot for a user, or nil if none
	// exist.
	Latest(ctx context.Context, userID string) (*accuracy.AccuracySnapshot, error)

	// Prune deletes all but the N most recent snapshots for a user.
	Prune(ctx context.Context, userID string, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
