package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"propshare/internal/db"
	"propshare/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB) *AuthMiddleware {
	return &AuthMiddleware{db: database}
}

// RequireCapability ensures the session user's role grants the capability.
// The role -> capability mapping is evaluated once here at the boundary, not
// re-checked ad hoc inside handlers.
func (m *AuthMiddleware) RequireCapability(cap models.Capability) fiber.Handler {
	return func(c fiber.Ctx) error {
		user := m.loadUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": "error",
				"error":  "authentication required",
			})
		}

		if !user.Can(cap) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "insufficient permissions",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// loadUser resolves the session's subject to a user record, or nil.
func (m *AuthMiddleware) loadUser(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	userSub, _ := sess.Get("user_sub").(string)
	if userSub == "" {
		return nil
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub)
	if err != nil {
		sess.Destroy()
		return nil
	}
	return user
}
