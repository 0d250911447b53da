package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"propshare/internal/db"
)

// AnalyticsHandler serves share usage reports via JSON API.
type AnalyticsHandler struct {
	db *db.DB
}

// NewAnalyticsHandler creates a new API analytics handler.
func NewAnalyticsHandler(database *db.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: database}
}

// Get returns aggregated sharing analytics. The range defaults to the last
// 30 days; ?days= widens or narrows it.
func (h *AnalyticsHandler) Get(c fiber.Ctx) error {
	days := fiber.Query(c, "days", 30)
	if days <= 0 || days > 3650 {
		return jsonError(c, fiber.StatusBadRequest, "days must be between 1 and 3650")
	}

	now := time.Now()
	filters := db.AnalyticsFilters{
		StartDate: now.AddDate(0, 0, -days),
		EndDate:   now,
	}

	if raw := c.Query("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid property_id")
		}
		filters.PropertyID = &id
	}
	if raw := c.Query("created_by"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid created_by")
		}
		filters.CreatedBy = &id
	}

	analytics, err := h.db.GetSharingAnalytics(c.Context(), filters)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute analytics")
	}

	return jsonSuccess(c, fiber.Map{
		"analytics": analytics,
		"date_range": fiber.Map{
			"start_date": filters.StartDate,
			"end_date":   filters.EndDate,
		},
	})
}
