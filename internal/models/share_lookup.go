package models

import "time"

// Resolution outcome labels, recorded per lookup for metrics export.
const (
	OutcomeAccepted          = "accepted"
	OutcomeNeedsInfo         = "needs_info"
	OutcomeInvalidToken      = "invalid_token"
	OutcomeExpired           = "expired"
	OutcomeViewLimitExceeded = "view_limit_exceeded"
)

// ShareLookup is an aggregate count of share resolutions by outcome.
type ShareLookup struct {
	Outcome    string    `json:"outcome"`
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
