package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kavya/lexis/internal/accuracy"
)

// snapshotRepo implements SnapshotRepo with raw SQL. Snapshots are
// stored whole as JSON so schema changes in the snapshot type never
// require a table migration.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, userID string, snap *accuracy.AccuracySnapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	createdAt := snap.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, snapshot_id, created_at, data) VALUES (?, ?, ?, ?)`,
		userID, snap.ID, createdAt, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, userID string) (*accuracy.AccuracySnapshot, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var snap accuracy.AccuracySnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, userID string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE user_id = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE user_id = ?
			ORDER BY created_at DESC, id DESC LIMIT ?
		)`,
		userID, userID, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
