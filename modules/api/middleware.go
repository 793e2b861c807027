package api

import (
	"strings"

	domain "github.com/example/marketplace-services/domain/user"
	"github.com/example/marketplace-services/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"

	bearerPrefix = "Bearer "
)

// unauthorized is written for every rejected credential.
var unauthorized = ErrorResponse{
	Error:   "unauthorized",
	Message: "Invalid or missing credentials",
}

// AuthMiddleware creates a middleware that validates bearer tokens.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(unauthorized)
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(unauthorized)
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil || claims == nil || claims.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(unauthorized)
		}

		// Store claims in context for use in handlers
		c.Locals(UserContextKey, claims)
		c.SetUserContext(auth.WithUserID(c.UserContext(), claims.UserID))

		return c.Next()
	}
}

// currentUserID returns the authenticated caller, or "" on public routes.
func currentUserID(c *fiber.Ctx) string {
	if claims, ok := c.Locals(UserContextKey).(*domain.Claims); ok {
		return claims.UserID
	}
	return ""
}
