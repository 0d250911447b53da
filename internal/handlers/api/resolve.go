package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"propshare/internal/share"
	"propshare/internal/validation"
)

// ResolveHandler handles public share token resolution via JSON API.
type ResolveHandler struct {
	shares *share.Service
}

// NewResolveHandler creates a new API resolve handler.
func NewResolveHandler(shares *share.Service) *ResolveHandler {
	return &ResolveHandler{shares: shares}
}

// Resolve handles GET /api/share/:token. Optional name and email query
// parameters supply visitor identification.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	info, badInfo := clientInfoFromQuery(c)
	if badInfo != "" {
		return jsonError(c, fiber.StatusBadRequest, badInfo)
	}
	return h.resolve(c, info)
}

// SubmitClientInfo handles POST /api/share/:token with a JSON body carrying
// the visitor's name and email.
func (h *ResolveHandler) SubmitClientInfo(c fiber.Ctx) error {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if ok, msg := validation.ValidateClientInfo(body.Name, body.Email); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	return h.resolve(c, &share.ClientInfo{
		Name:  body.Name,
		Email: validation.NormalizeEmail(body.Email),
		Phone: body.Phone,
	})
}

// resolve runs the shared resolution path and maps outcomes to HTTP statuses.
func (h *ResolveHandler) resolve(c fiber.Ctx, info *share.ClientInfo) error {
	token := c.Params("token")
	if !validation.ValidateToken(token) {
		return jsonError(c, fiber.StatusNotFound, "invalid or expired sharing link")
	}

	resolution, err := h.shares.Resolve(c.Context(), token, info)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve share")
	}

	switch resolution.Outcome {
	case share.Accepted:
		return jsonSuccess(c, fiber.Map{
			"property":   resolution.Property,
			"share_info": resolution.Info(),
		})
	case share.NeedsInfo:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":               "error",
			"error":                "client information required to view this property",
			"requires_client_info": true,
		})
	case share.ViewLimitExceeded:
		return jsonError(c, fiber.StatusTooManyRequests, "this sharing link has reached its view limit")
	case share.Expired:
		return jsonError(c, fiber.StatusGone, "this sharing link has expired")
	default:
		return jsonError(c, fiber.StatusNotFound, "invalid or expired sharing link")
	}
}

// clientInfoFromQuery extracts optional visitor identification from query
// parameters. Returns a message when a partial or malformed pair was supplied.
func clientInfoFromQuery(c fiber.Ctx) (*share.ClientInfo, string) {
	name := c.Query("name")
	email := c.Query("email")
	if name == "" && email == "" {
		return nil, ""
	}

	if ok, msg := validation.ValidateClientInfo(name, email); !ok {
		return nil, msg
	}

	return &share.ClientInfo{
		Name:  name,
		Email: validation.NormalizeEmail(email),
	}, ""
}
