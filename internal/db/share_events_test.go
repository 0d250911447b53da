package db

import (
	"context"
	"testing"
)

func TestShareEventCount(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	property := createTestProperty(t, db)
	share := createTestShare(t, db, property.ID, nil)
	other := createTestShare(t, db, property.ID, nil)

	events := []string{EventShareCreated, EventShareViewed, EventShareViewed}
	for _, eventType := range events {
		if err := db.InsertShareEvent(ctx, eventType, &share.ID, map[string]any{"source": "test"}); err != nil {
			t.Fatalf("InsertShareEvent(%s) error = %v", eventType, err)
		}
	}
	// Events without a share id, like cleanup sweeps, count toward no share.
	if err := db.InsertShareEvent(ctx, EventSharesCleanup, nil, nil); err != nil {
		t.Fatalf("InsertShareEvent(cleanup) error = %v", err)
	}

	count, err := db.GetShareEventCount(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShareEventCount() error = %v", err)
	}
	if count != len(events) {
		t.Errorf("event count = %d, want %d", count, len(events))
	}

	count, err = db.GetShareEventCount(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetShareEventCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("untouched share event count = %d, want 0", count)
	}
}
