package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/thangamari27/zenmart/internal/auth"
	"github.com/thangamari27/zenmart/internal/authz"
)

// AuthHandler handles HTTP requests for the mock authentication flow.
type AuthHandler struct {
	manager  *auth.Manager
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(manager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		manager:  manager,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/mock", h.HandleMockLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleSession)
}

// LoginRequest represents the request body for password login. From is the
// path the client originally tried to visit, used to resolve the
// post-login redirect.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	From     string `json:"from"`
}

// HandleLogin authenticates a mock identity by email and password.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	session, token, err := h.manager.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Login successful",
		"token":       token,
		"session":     session,
		"redirect_to": authz.PostLoginRedirect(session, req.From),
	})
}

// MockLoginRequest selects a mock directory entry by index for the
// one-click demo logins.
type MockLoginRequest struct {
	Index int    `json:"index"`
	From  string `json:"from"`
}

// HandleMockLogin signs in a mock identity without a credential check.
func (h *AuthHandler) HandleMockLogin(c *fiber.Ctx) error {
	var req MockLoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mock login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	session, token, err := h.manager.LoginMock(req.Index)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Mock login failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Login successful",
		"token":       token,
		"session":     session,
		"redirect_to": authz.PostLoginRedirect(session, req.From),
	})
}

// HandleLogout clears the session. It always succeeds; a storage failure
// during cleanup is logged, not surfaced.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.manager.Logout()
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleSession resolves the bearer token to the current session, for
// restoring the signed-in state after a reload.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authorization header format must be 'Bearer <token>'",
		})
	}

	session, err := h.manager.SessionFromToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"session": session,
	})
}

// validationMessages turns validator errors into a field-to-message map,
// shared by all handlers.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["_"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return messages
}
