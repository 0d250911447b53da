package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Share event types for the audit log.
const (
	EventShareCreated     = "share_created"
	EventShareViewed      = "share_viewed"
	EventShareUpdated     = "share_updated"
	EventShareDeactivated = "share_deactivated"
	EventSharesCleanup    = "shares_cleanup"
)

// InsertShareEvent appends an audit log entry. detail must be JSON-marshalable.
func (d *DB) InsertShareEvent(ctx context.Context, eventType string, shareID *uuid.UUID, detail map[string]any) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	if detail == nil {
		payload = []byte("{}")
	}

	_, err = d.Pool.Exec(ctx, `
		INSERT INTO share_events (event_type, share_id, detail)
		VALUES ($1, $2, $3)
	`, eventType, shareID, payload)
	return err
}

// GetShareEventCount returns the number of audit entries for a share.
func (d *DB) GetShareEventCount(ctx context.Context, shareID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM share_events WHERE share_id = $1`, shareID,
	).Scan(&count)
	return count, err
}
