package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"propshare/internal/db"
	"propshare/internal/models"
)

// PropertyHandler handles property CRUD operations via JSON API.
type PropertyHandler struct {
	db *db.DB
}

// NewPropertyHandler creates a new API property handler.
func NewPropertyHandler(database *db.DB) *PropertyHandler {
	return &PropertyHandler{db: database}
}

type propertyBody struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Price       *int64 `json:"price"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Status      string `json:"status"`
}

// Create inserts a new property.
func (h *PropertyHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body propertyBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if body.Status != "" && !models.ValidPropertyStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	property := &models.Property{
		Name:        body.Name,
		Location:    body.Location,
		Price:       body.Price,
		Description: body.Description,
		CoverImage:  body.CoverImage,
		Status:      body.Status,
		CreatedBy:   &user.ID,
	}

	if err := h.db.CreateProperty(c.Context(), property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create property")
	}

	return jsonCreated(c, property)
}

// List returns properties newest-first, optionally filtered by status.
func (h *PropertyHandler) List(c fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.ValidPropertyStatus(status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	limit := fiber.Query(c, "limit", 50)
	offset := fiber.Query(c, "offset", 0)

	properties, err := h.db.ListProperties(c.Context(), status, limit, offset)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list properties")
	}

	return jsonSuccess(c, properties)
}

// Get returns a single property by ID.
func (h *PropertyHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid property id")
	}

	property, err := h.db.GetPropertyByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrPropertyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch property")
	}

	return jsonSuccess(c, property)
}

// Update changes a property's descriptive fields.
func (h *PropertyHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid property id")
	}

	property, err := h.db.GetPropertyByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrPropertyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch property")
	}

	var body propertyBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if body.Status != "" && !models.ValidPropertyStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	property.Name = body.Name
	property.Location = body.Location
	property.Price = body.Price
	property.Description = body.Description
	property.CoverImage = body.CoverImage
	if body.Status != "" {
		property.Status = body.Status
	}

	if err := h.db.UpdateProperty(c.Context(), property); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update property")
	}

	return jsonSuccess(c, property)
}

// Delete removes a property. Routes guard this with the delete capability.
func (h *PropertyHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid property id")
	}

	if err := h.db.DeleteProperty(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrPropertyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "property not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete property")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "property deleted successfully",
	})
}
