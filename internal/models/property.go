package models

import (
	"time"

	"github.com/google/uuid"
)

// Property status constants
const (
	PropertyAvailable = "available"
	PropertyPending   = "pending"
	PropertySold      = "sold"
	PropertyArchived  = "archived"
)

// Property represents a property record that can be shared with clients.
type Property struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Price       *int64     `json:"price"`
	Description string     `json:"description"`
	CoverImage  string     `json:"cover_image"`
	Status      string     `json:"status"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidPropertyStatus reports whether status is a known property status.
func ValidPropertyStatus(status string) bool {
	switch status {
	case PropertyAvailable, PropertyPending, PropertySold, PropertyArchived:
		return true
	}
	return false
}
