package store

import (
	"context"
	"testing"
	"time"

	"github.com/kavya/lexis/internal/accuracy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSnapshot(id string, overall float64, at time.Time) *accuracy.AccuracySnapshot {
	return &accuracy.AccuracySnapshot{
		ID:               id,
		Overall:          overall,
		AdjustedOverall:  overall,
		Grammar:          overall,
		CalculationCount: 1,
		Timestamp:        at,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"snapshots", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, "user-1", testSnapshot("snap-a", 82, now)); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.ID != "snap-a" {
		t.Errorf("id = %q, want snap-a", snap.ID)
	}
	if snap.Overall != 82 {
		t.Errorf("overall = %v, want 82", snap.Overall)
	}
}

func TestSnapshotLatestIsPerUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Save(ctx, "alice", testSnapshot("a1", 90, now)); err != nil {
		t.Fatalf("save alice: %v", err)
	}
	if err := repo.Save(ctx, "bob", testSnapshot("b1", 40, now.Add(time.Minute))); err != nil {
		t.Fatalf("save bob: %v", err)
	}

	snap, err := repo.Latest(ctx, "alice")
	if err != nil {
		t.Fatalf("latest alice: %v", err)
	}
	if snap.ID != "a1" {
		t.Errorf("alice latest = %q, want a1", snap.ID)
	}

	snap, err = repo.Latest(ctx, "carol")
	if err != nil {
		t.Fatalf("latest carol: %v", err)
	}
	if snap != nil {
		t.Error("expected nil snapshot for unknown user")
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		snap := testSnapshot("", float64(60+i*10), base.Add(time.Duration(i)*time.Minute))
		snap.ID = string(rune('a' + i))
		if err := repo.Save(ctx, "user-1", snap); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.ID != "c" {
		t.Errorf("latest id = %q, want c", snap.ID)
	}
	if snap.Overall != 80 {
		t.Errorf("overall = %v, want 80", snap.Overall)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		snap := testSnapshot("", 70, base.Add(time.Duration(i)*time.Minute))
		snap.ID = string(rune('a' + i))
		if err := repo.Save(ctx, "user-1", snap); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	// Another user's snapshots must survive the prune.
	if err := repo.Save(ctx, "user-2", testSnapshot("other", 50, base)); err != nil {
		t.Fatalf("save user-2: %v", err)
	}

	if err := repo.Prune(ctx, "user-1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(
		"SELECT COUNT(*) FROM snapshots WHERE user_id = 'user-1'",
	).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err := repo.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.ID != "g" {
		t.Errorf("latest after prune = %q, want g", snap.ID)
	}

	other, err := repo.Latest(ctx, "user-2")
	if err != nil {
		t.Fatalf("latest user-2: %v", err)
	}
	if other == nil || other.ID != "other" {
		t.Error("user-2 snapshot should survive user-1 prune")
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		snap := testSnapshot("", 70, base.Add(time.Duration(i)*time.Minute))
		snap.ID = string(rune('a' + i))
		if err := repo.Save(ctx, "user-1", snap); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, "user-1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(
		"SELECT COUNT(*) FROM snapshots WHERE user_id = 'user-1'",
	).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("remaining snapshots = %d, want 2", count)
	}
}

func TestSnapshotRoundTripPreservesOptionalScores(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	readability := 72.0
	snap := testSnapshot("rt", 88, time.Now().UTC())
	snap.Readability = &readability
	snap.ErrorsByKind = map[accuracy.ErrorKind]int{accuracy.KindGrammar: 2}

	if err := repo.Save(ctx, "user-1", snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Latest(ctx, "user-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Readability == nil || *got.Readability != 72 {
		t.Errorf("readability = %v, want 72", got.Readability)
	}
	if got.ErrorsByKind[accuracy.KindGrammar] != 2 {
		t.Errorf("grammar errors = %d, want 2", got.ErrorsByKind[accuracy.KindGrammar])
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "fluency-score",
		InputTokens:  120,
		OutputTokens: 30,
		LatencyMs:    450,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var purpose string
	var success int
	if err := s.DB().QueryRow(
		"SELECT purpose, success FROM llm_request_events",
	).Scan(&purpose, &success); err != nil {
		t.Fatalf("query event: %v", err)
	}
	if purpose != "fluency-score" {
		t.Errorf("purpose = %q", purpose)
	}
	if success != 1 {
		t.Errorf("success = %d, want 1", success)
	}
}
