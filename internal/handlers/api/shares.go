package api

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"propshare/internal/config"
	"propshare/internal/db"
	"propshare/internal/models"
	"propshare/internal/share"
	"propshare/internal/validation"
)

// ShareHandler handles share CRUD operations via JSON API.
type ShareHandler struct {
	db     *db.DB
	cfg    *config.Config
	shares *share.Service
}

// NewShareHandler creates a new API share handler.
func NewShareHandler(database *db.DB, cfg *config.Config, shares *share.Service) *ShareHandler {
	return &ShareHandler{db: database, cfg: cfg, shares: shares}
}

// Create mints a new share token for a property.
func (h *ShareHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		PropertyID        string  `json:"property_id"`
		ExpiryHours       float64 `json:"expiry_hours"`
		AllowedViews      *int    `json:"allowed_views"`
		RequireClientInfo bool    `json:"require_client_info"`
		AllowDownloads    *bool   `json:"allow_downloads"`
		ClientName        string  `json:"client_name"`
		ClientEmail       string  `json:"client_email"`
		CustomMessage     string  `json:"custom_message"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid property_id")
	}

	if !validation.ValidateExpiryHours(body.ExpiryHours) {
		return jsonError(c, fiber.StatusBadRequest, "expiry_hours must be positive")
	}
	if body.AllowedViews != nil && !validation.ValidateAllowedViews(*body.AllowedViews) {
		return jsonError(c, fiber.StatusBadRequest, "allowed_views must be positive")
	}
	if body.ClientEmail != "" && !validation.ValidateEmail(body.ClientEmail) {
		return jsonError(c, fiber.StatusBadRequest, "invalid client_email")
	}

	req := share.CreateRequest{
		PropertyID:        propertyID,
		CreatedBy:         user.ID,
		ExpiryHours:       body.ExpiryHours,
		AllowedViews:      body.AllowedViews,
		RequireClientInfo: body.RequireClientInfo,
		AllowDownloads:    true,
		CustomMessage:     body.CustomMessage,
	}
	if body.AllowDownloads != nil {
		req.AllowDownloads = *body.AllowDownloads
	}
	if body.ClientName != "" {
		req.ClientName = &body.ClientName
	}
	if body.ClientEmail != "" {
		email := validation.NormalizeEmail(body.ClientEmail)
		req.ClientEmail = &email
	}

	record, err := h.shares.CreateShare(c.Context(), req)
	if err != nil {
		if errors.Is(err, db.ErrPropertyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create share")
	}

	return jsonCreated(c, fiber.Map{
		"share_id":   record.ID,
		"token":      record.Token,
		"url":        h.cfg.BaseURL + "/share/" + record.Token,
		"expires_at": record.ExpiresAt,
	})
}

// List returns shares newest-first, optionally filtered.
func (h *ShareHandler) List(c fiber.Ctx) error {
	filters := db.ShareFilters{
		Limit:  fiber.Query(c, "limit", 50),
		Offset: fiber.Query(c, "offset", 0),
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
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid active filter")
		}
		filters.IsActive = &active
	}

	shares, err := h.db.ListShares(c.Context(), filters)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list shares")
	}

	return jsonSuccess(c, shares)
}

// Get returns a single share with its audit event count.
func (h *ShareHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid share id")
	}

	record, err := h.db.GetShareByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrShareNotFound) {
			return jsonError(c, fiber.StatusNotFound, "share not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to get share")
	}

	eventCount, err := h.db.GetShareEventCount(c.Context(), record.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to get share")
	}

	return jsonSuccess(c, fiber.Map{
		"share":       record,
		"event_count": eventCount,
	})
}

// Update applies an allow-listed patch to a share. Token, property, creator
// and view count cannot be changed here, and an inactive share cannot be
// reactivated.
func (h *ShareHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid share id")
	}

	var patch models.SharePatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if patch.AllowedViews != nil && !validation.ValidateAllowedViews(*patch.AllowedViews) {
		return jsonError(c, fiber.StatusBadRequest, "allowed_views must be positive")
	}

	record, err := h.db.UpdateShare(c.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, db.ErrShareNotFound) {
			return jsonError(c, fiber.StatusNotFound, "share not found")
		}
		if errors.Is(err, db.ErrNoShareUpdates) {
			return jsonError(c, fiber.StatusBadRequest, "no updatable fields provided")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update share")
	}

	// Audit failures never fail the request.
	if err := h.db.InsertShareEvent(c.Context(), db.EventShareUpdated, &record.ID, nil); err != nil {
		log.Printf("failed to log share update event: %v", err)
	}

	return jsonSuccess(c, record)
}

// Deactivate flips a share inactive. Idempotent: deactivating twice succeeds.
func (h *ShareHandler) Deactivate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid share id")
	}

	if err := h.db.DeactivateShare(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrShareNotFound) {
			return jsonError(c, fiber.StatusNotFound, "share not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to deactivate share")
	}

	if err := h.db.InsertShareEvent(c.Context(), db.EventShareDeactivated, &id, nil); err != nil {
		log.Printf("failed to log share deactivation event: %v", err)
	}

	return jsonSuccess(c, fiber.Map{
		"message": "share deactivated successfully",
	})
}
