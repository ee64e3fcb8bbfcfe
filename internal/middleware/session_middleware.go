package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thangamari27/zenmart/internal/auth"
	"github.com/thangamari27/zenmart/internal/authz"
	"github.com/thangamari27/zenmart/internal/models"
)

// SessionKey is the fiber.Ctx local under which the resolved session is
// stored for downstream handlers.
const SessionKey = "session"

// SessionRequired resolves the bearer token to a session and applies the
// route authorization policy. Policy redirects are answered as JSON bodies
// carrying the redirect target, mirroring the client-side navigation.
func SessionRequired(manager *auth.Manager, requiresAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := sessionFromRequest(manager, c)

		// The policy reasons about client-side routes, so the API prefix
		// is stripped before evaluation.
		path := strings.TrimPrefix(c.Path(), "/api/v1")
		decision := authz.Authorize(session, path, requiresAdmin)
		if !decision.Allowed {
			status := fiber.StatusForbidden
			if session == nil {
				status = fiber.StatusUnauthorized
			}
			return c.Status(status).JSON(fiber.Map{
				"message":     "Access denied",
				"redirect_to": decision.RedirectTo,
				"from":        decision.From,
			})
		}

		c.Locals(SessionKey, session)
		return c.Next()
	}
}

func sessionFromRequest(manager *auth.Manager, c *fiber.Ctx) *models.Session {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil
	}

	session, err := manager.SessionFromToken(parts[1])
	if err != nil {
		log.Printf("session token validation failed: %v", err)
		return nil
	}
	return session
}

// CurrentSession returns the session stored by SessionRequired, or nil.
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(SessionKey).(*models.Session)
	return session
}
