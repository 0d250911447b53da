package share

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"propshare/internal/db"
	"propshare/internal/models"
)

// Service issues and resolves share tokens against the share record store.
type Service struct {
	db            *db.DB
	defaultExpiry time.Duration
	maxExpiry     time.Duration
}

// NewService creates a share service with the configured expiry bounds.
func NewService(database *db.DB, defaultExpiry, maxExpiry time.Duration) *Service {
	return &Service{
		db:            database,
		defaultExpiry: defaultExpiry,
		maxExpiry:     maxExpiry,
	}
}

// CreateRequest carries the options for minting a new share.
type CreateRequest struct {
	PropertyID        uuid.UUID
	CreatedBy         uuid.UUID
	ExpiryHours       float64 // 0 means the configured default
	AllowedViews      *int    // nil means unlimited
	RequireClientInfo bool
	AllowDownloads    bool
	ClientName        *string
	ClientEmail       *string
	CustomMessage     string
}

// CreateShare validates the target property, mints a token and inserts the
// share record. A token collision is retried once with a fresh token before
// the error is surfaced.
func (s *Service) CreateShare(ctx context.Context, req CreateRequest) (*models.Share, error) {
	if _, err := s.db.GetShareableProperty(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	expiry := s.defaultExpiry
	if req.ExpiryHours > 0 {
		expiry = time.Duration(req.ExpiryHours * float64(time.Hour))
	}
	if expiry > s.maxExpiry {
		expiry = s.maxExpiry
	}

	record := &models.Share{
		PropertyID:        req.PropertyID,
		CreatedBy:         &req.CreatedBy,
		ExpiresAt:         time.Now().Add(expiry),
		AllowedViews:      req.AllowedViews,
		RequireClientInfo: req.RequireClientInfo,
		AllowDownloads:    req.AllowDownloads,
		ClientName:        req.ClientName,
		ClientEmail:       req.ClientEmail,
		CustomMessage:     req.CustomMessage,
	}

	// One retry on the astronomically unlikely token collision.
	for attempt := 0; attempt < 2; attempt++ {
		token, err := GenerateToken()
		if err != nil {
			return nil, err
		}
		record.Token = token

		err = s.db.CreateShare(ctx, record)
		if err == nil {
			s.logEvent(ctx, db.EventShareCreated, &record.ID, map[string]any{
				"property_id": record.PropertyID.String(),
				"expires_at":  record.ExpiresAt,
			})
			return record, nil
		}
		if !errors.Is(err, db.ErrDuplicateToken) {
			return nil, err
		}
	}

	return nil, db.ErrDuplicateToken
}

// logEvent appends to the audit log. Failures are logged, never surfaced:
// the audit trail must not break the request path.
func (s *Service) logEvent(ctx context.Context, eventType string, shareID *uuid.UUID, detail map[string]any) {
	if err := s.db.InsertShareEvent(ctx, eventType, shareID, detail); err != nil {
		log.Printf("share: failed to log %s event: %v", eventType, err)
	}
}
