package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"ai-grocery-assistant/internal/database"
	"ai-grocery-assistant/internal/llm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestStoreRecordAndDailyUsage(t *testing.T) {
	store := newTestStore(t)

	err := store.Record(CallMetric{
		Caller:           "planner",
		Model:            "llama-3.3-70b-versatile",
		PromptTokens:     120,
		CompletionTokens: 400,
		TotalTokens:      520,
		LatencyMS:        900,
	})
	if err != nil {
		t.Fatalf("failed to record metric: %v", err)
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("failed to get daily usage: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("expected 1 day of usage, got %d", len(usage))
	}
	if usage[0].TotalPrompt != 120 || usage[0].TotalCompletion != 400 {
		t.Errorf("unexpected token totals: %+v", usage[0])
	}
	if usage[0].TotalCalls != 1 {
		t.Errorf("expected 1 call, got %d", usage[0].TotalCalls)
	}
}

func TestStoreRecordMetaSkipsEmptyUsage(t *testing.T) {
	store := newTestStore(t)

	err := store.RecordMeta(llm.CallMeta{
		Caller:  "clipper",
		Latency: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("failed to get daily usage: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("expected no recorded usage, got %d rows", len(usage))
	}
}

func TestStoreCleanup(t *testing.T) {
	store := newTestStore(t)

	old := CallMetric{
		Caller:           "planner",
		Model:            "llama-3.3-70b-versatile",
		PromptTokens:     5,
		CompletionTokens: 5,
		TotalTokens:      10,
		Timestamp:        time.Now().UTC().AddDate(0, 0, -30),
	}
	if err := store.Record(old); err != nil {
		t.Fatalf("failed to record metric: %v", err)
	}

	if err := store.Cleanup(7); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	usage, err := store.GetDailyUsage(60)
	if err != nil {
		t.Fatalf("failed to get daily usage: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("expected old metrics to be removed, got %d rows", len(usage))
	}
}
