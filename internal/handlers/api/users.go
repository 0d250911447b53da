package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"propshare/internal/db"
	"propshare/internal/models"
)

// UserHandler handles user administration via JSON API. Routes guard these
// with the manage-users capability (master role).
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new API user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// List returns all users.
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.db.GetAllUsers(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list users")
	}
	return jsonSuccess(c, users)
}

// UpdateRole changes a user's role. A master cannot demote themselves, so
// there is always at least one master left.
func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	actor, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !models.ValidRole(body.Role) {
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}

	if userID == actor.ID && body.Role != models.RoleMaster {
		return jsonError(c, fiber.StatusBadRequest, "you cannot change your own role")
	}

	if err := h.db.UpdateUserRole(c.Context(), userID, body.Role); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "role updated successfully",
	})
}

// Delete removes a user. Masters cannot delete themselves.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	actor, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if userID == actor.ID {
		return jsonError(c, fiber.StatusBadRequest, "you cannot delete your own account")
	}

	if err := h.db.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete user")
	}

	return jsonSuccess(c, fiber.Map{
		"message": "user deleted successfully",
	})
}
