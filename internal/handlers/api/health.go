package api

import (
	"github.com/gofiber/fiber/v3"

	"propshare/internal/db"
)

// HealthHandler reports service health via JSON API.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check pings the database and reports readiness.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unreachable")
	}

	return jsonSuccess(c, fiber.Map{
		"database": "ok",
	})
}
