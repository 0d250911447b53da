package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"propshare/internal/db"
	"propshare/internal/metrics"
	"propshare/internal/models"
)

// Outcome classifies a resolution attempt. The string values double as the
// metric labels recorded per lookup.
type Outcome string

const (
	Accepted          Outcome = models.OutcomeAccepted
	NeedsInfo         Outcome = models.OutcomeNeedsInfo
	InvalidToken      Outcome = models.OutcomeInvalidToken
	Expired           Outcome = models.OutcomeExpired
	ViewLimitExceeded Outcome = models.OutcomeViewLimitExceeded
)

// ClientInfo is the optional visitor identification supplied with a
// resolution attempt.
type ClientInfo struct {
	Name  string
	Email string
	Phone string
}

// valid reports whether both name and email were supplied.
func (ci *ClientInfo) valid() bool {
	return ci != nil && ci.Name != "" && ci.Email != ""
}

// Resolution is the outcome of one resolution attempt. Share and Property are
// set only on Accepted.
type Resolution struct {
	Outcome  Outcome
	Share    *models.Share
	Property *models.Property
}

// Info builds the read-only share metadata exposed to the visitor.
func (r *Resolution) Info() *models.ShareInfo {
	return &models.ShareInfo{
		ID:             r.Share.ID,
		ExpiresAt:      r.Share.ExpiresAt,
		CustomMessage:  r.Share.CustomMessage,
		AllowDownloads: r.Share.AllowDownloads,
		ViewCount:      r.Share.ViewCount,
		AllowedViews:   r.Share.AllowedViews,
		ClientName:     r.Share.ClientName,
	}
}

// Resolve runs the access state machine for one token. Expired-by-time and
// manually-deactivated shares are both reported as Expired to the caller.
// A NeedsInfo outcome performs no mutation at all, so it can be retried
// without penalty. The view increment itself is a single conditional update
// in the store, so the view limit holds under concurrent attempts.
func (s *Service) Resolve(ctx context.Context, token string, info *ClientInfo) (*Resolution, error) {
	record, err := s.db.GetShareByToken(ctx, token)
	if errors.Is(err, db.ErrShareNotFound) {
		return s.deny(InvalidToken), nil
	}
	if err != nil {
		return nil, err
	}

	if !record.IsActive {
		return s.deny(Expired), nil
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.db.DeactivateShare(ctx, record.ID); err != nil {
			return nil, err
		}
		return s.deny(Expired), nil
	}

	if record.AllowedViews != nil && record.ViewCount >= *record.AllowedViews {
		if err := s.db.DeactivateShare(ctx, record.ID); err != nil {
			return nil, err
		}
		return s.deny(ViewLimitExceeded), nil
	}

	if record.RequireClientInfo && !record.HasClientInfo() && !info.valid() {
		metrics.RecordShareLookup(models.OutcomeNeedsInfo)
		return &Resolution{Outcome: NeedsInfo}, nil
	}

	if info.valid() && !record.HasClientInfo() {
		if err := s.db.SetShareClientInfo(ctx, record.ID, info.Name, info.Email); err != nil {
			return nil, err
		}
		record.ClientName = &info.Name
		record.ClientEmail = &info.Email
	}

	viewCount, err := s.db.RegisterView(ctx, record.ID)
	if errors.Is(err, db.ErrShareInactive) {
		// Lost a race against expiry, deactivation or the last allowed view.
		return s.classifyRejected(ctx, record.ID)
	}
	if err != nil {
		return nil, err
	}
	record.ViewCount = viewCount

	property, err := s.db.GetPropertyByID(ctx, record.PropertyID)
	if err != nil {
		return nil, err
	}

	metrics.RecordShareLookup(models.OutcomeAccepted)
	s.logEvent(ctx, db.EventShareViewed, &record.ID, map[string]any{
		"property_id": record.PropertyID.String(),
		"view_count":  viewCount,
	})

	return &Resolution{Outcome: Accepted, Share: record, Property: property}, nil
}

// classifyRejected re-reads a share whose guarded increment was rejected and
// maps the state to a deny outcome. Whichever concurrent write landed first,
// the record is already (or about to be) inactive, so deactivating here is a
// benign no-op.
func (s *Service) classifyRejected(ctx context.Context, id uuid.UUID) (*Resolution, error) {
	record, err := s.db.GetShareByID(ctx, id)
	if errors.Is(err, db.ErrShareNotFound) {
		return s.deny(InvalidToken), nil
	}
	if err != nil {
		return nil, err
	}

	if record.AllowedViews != nil && record.ViewCount >= *record.AllowedViews {
		if err := s.db.DeactivateShare(ctx, record.ID); err != nil {
			return nil, err
		}
		return s.deny(ViewLimitExceeded), nil
	}

	if err := s.db.DeactivateShare(ctx, record.ID); err != nil {
		return nil, err
	}
	return s.deny(Expired), nil
}

func (s *Service) deny(outcome Outcome) *Resolution {
	metrics.RecordShareLookup(string(outcome))
	return &Resolution{Outcome: outcome}
}
