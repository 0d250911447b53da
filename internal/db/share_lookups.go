package db

import (
	"context"

	"propshare/internal/models"
)

// IncrementShareLookup upserts a share resolution count by outcome.
func (d *DB) IncrementShareLookup(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO share_lookups (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = share_lookups.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetAllShareLookups returns all share lookup rows for metrics export.
func (d *DB) GetAllShareLookups(ctx context.Context) ([]models.ShareLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count, last_seen_at FROM share_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.ShareLookup
	for rows.Next() {
		var l models.ShareLookup
		if err := rows.Scan(&l.Outcome, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
