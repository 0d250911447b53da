package models

import (
	"time"

	"github.com/google/uuid"
)

// Share represents a time-limited public access grant to one property.
type Share struct {
	ID                uuid.UUID  `json:"id"`
	Token             string     `json:"token"`
	PropertyID        uuid.UUID  `json:"property_id"`
	CreatedBy         *uuid.UUID `json:"created_by"`
	IsActive          bool       `json:"is_active"`
	ExpiresAt         time.Time  `json:"expires_at"`
	AllowedViews      *int       `json:"allowed_views"` // nil = unlimited
	ViewCount         int        `json:"view_count"`
	RequireClientInfo bool       `json:"require_client_info"`
	AllowDownloads    bool       `json:"allow_downloads"`
	ClientName        *string    `json:"client_name"`
	ClientEmail       *string    `json:"client_email"`
	CustomMessage     string     `json:"custom_message"`
	LastViewedAt      *time.Time `json:"last_viewed_at"`
	DeactivatedAt     *time.Time `json:"deactivated_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasClientInfo reports whether a client name and email are on file.
func (s *Share) HasClientInfo() bool {
	return s.ClientName != nil && *s.ClientName != "" &&
		s.ClientEmail != nil && *s.ClientEmail != ""
}

// ShareWithProperty joins a share with display fields of its property,
// used by the authenticated list endpoint.
type ShareWithProperty struct {
	Share
	PropertyName       string `json:"property_name"`
	PropertyCoverImage string `json:"property_cover_image"`
}

// SharePatch carries the mutable share fields for updates. Nil means
// "leave unchanged". Token, property, creator and view count are not
// patchable and have no fields here.
type SharePatch struct {
	IsActive          *bool      `json:"is_active"`
	ExpiresAt         *time.Time `json:"expires_at"`
	AllowedViews      *int       `json:"allowed_views"`
	RequireClientInfo *bool      `json:"require_client_info"`
	AllowDownloads    *bool      `json:"allow_downloads"`
	CustomMessage     *string    `json:"custom_message"`
}

// IsEmpty reports whether the patch carries no changes.
func (p *SharePatch) IsEmpty() bool {
	return p.IsActive == nil && p.ExpiresAt == nil && p.AllowedViews == nil &&
		p.RequireClientInfo == nil && p.AllowDownloads == nil && p.CustomMessage == nil
}

// ShareInfo is the read-only share metadata returned to anonymous visitors
// alongside the property on a successful resolution.
type ShareInfo struct {
	ID             uuid.UUID `json:"id"`
	ExpiresAt      time.Time `json:"expires_at"`
	CustomMessage  string    `json:"custom_message"`
	AllowDownloads bool      `json:"allow_downloads"`
	ViewCount      int       `json:"view_count"`
	AllowedViews   *int      `json:"allowed_views"`
	ClientName     *string   `json:"client_name"`
}
