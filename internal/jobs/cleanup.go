package jobs

import (
	"context"
	"log"
	"time"

	"propshare/internal/db"
)

// CleanupSweeper deactivates shares whose expiry or view limit has been
// reached but not yet reflected in is_active.
type CleanupSweeper struct {
	db       *db.DB
	interval time.Duration
}

// NewCleanupSweeper creates a new sweeper.
func NewCleanupSweeper(database *db.DB, interval time.Duration) *CleanupSweeper {
	return &CleanupSweeper{
		db:       database,
		interval: interval,
	}
}

// Start begins the background sweep loop.
func (s *CleanupSweeper) Start(ctx context.Context) {
	log.Printf("Share cleanup sweeper started (interval: %v)", s.interval)

	// Run immediately on start
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Share cleanup sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one cleanup pass. Racing an in-flight resolution is benign: both
// writers leave the record inactive.
func (s *CleanupSweeper) sweep(ctx context.Context) {
	cleaned, err := s.db.CleanupExpiredShares(ctx)
	if err != nil {
		log.Printf("Share cleanup sweeper: sweep failed: %v", err)
		return
	}

	if cleaned == 0 {
		return
	}

	log.Printf("Share cleanup sweeper: deactivated %d shares", cleaned)

	if err := s.db.InsertShareEvent(ctx, db.EventSharesCleanup, nil, map[string]any{
		"cleaned_count": cleaned,
	}); err != nil {
		log.Printf("Share cleanup sweeper: failed to log cleanup event: %v", err)
	}
}
