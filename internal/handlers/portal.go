package handlers

import (
	"github.com/gofiber/fiber/v3"

	"propshare/internal/config"
	"propshare/internal/share"
	"propshare/internal/validation"
)

// PortalHandler renders the public share page visitors land on when they
// follow a sharing link.
type PortalHandler struct {
	shares *share.Service
	cfg    *config.Config
}

// NewPortalHandler creates a new portal handler.
func NewPortalHandler(shares *share.Service, cfg *config.Config) *PortalHandler {
	return &PortalHandler{shares: shares, cfg: cfg}
}

// View resolves a share token and renders the property page. An anonymous
// lookup against a share that requires client info renders the info form
// instead, without consuming a view.
func (h *PortalHandler) View(c fiber.Ctx) error {
	return h.resolve(c, nil)
}

// SubmitInfo handles the client info form post and re-resolves the share
// with the supplied details.
func (h *PortalHandler) SubmitInfo(c fiber.Ctx) error {
	info := &share.ClientInfo{
		Name:  c.FormValue("name"),
		Email: validation.NormalizeEmail(c.FormValue("email")),
		Phone: c.FormValue("phone"),
	}

	if ok, msg := validation.ValidateClientInfo(info.Name, info.Email); !ok {
		return c.Status(fiber.StatusUnprocessableEntity).Render("share_form", MergeBranding(fiber.Map{
			"Token": c.Params("token"),
			"Name":  info.Name,
			"Email": info.Email,
			"Phone": info.Phone,
			"Error": msg,
		}, h.cfg))
	}

	return h.resolve(c, info)
}

func (h *PortalHandler) resolve(c fiber.Ctx, info *share.ClientInfo) error {
	token := c.Params("token")
	if !validation.ValidateToken(token) {
		return h.renderError(c, fiber.StatusNotFound, "Link Not Found",
			"This sharing link is not valid.")
	}

	resolution, err := h.shares.Resolve(c.Context(), token, info)
	if err != nil {
		return err
	}

	switch resolution.Outcome {
	case share.Accepted:
		return c.Render("share", MergeBranding(fiber.Map{
			"Property": resolution.Property,
			"Share":    resolution.Info(),
		}, h.cfg))
	case share.NeedsInfo:
		return c.Status(fiber.StatusUnprocessableEntity).Render("share_form", MergeBranding(fiber.Map{
			"Token": token,
		}, h.cfg))
	case share.ViewLimitExceeded:
		return h.renderError(c, fiber.StatusTooManyRequests, "View Limit Reached",
			"This sharing link has reached its maximum number of views.")
	case share.Expired:
		return h.renderError(c, fiber.StatusGone, "Link Expired",
			"This sharing link has expired or been deactivated.")
	default:
		return h.renderError(c, fiber.StatusNotFound, "Link Not Found",
			"This sharing link is not valid.")
	}
}

func (h *PortalHandler) renderError(c fiber.Ctx, status int, title, message string) error {
	return c.Status(status).Render("error", MergeBranding(fiber.Map{
		"Title":   title,
		"Message": message,
	}, h.cfg))
}
