package middleware

import (
	"strings"

	"academy-server/services"

	"github.com/gofiber/fiber/v2"
)

// UserContext extracts the caller's identity from a Bearer token and
// attaches it to the request context. Requests without a token pass
// through anonymously; gated routes decide what to require.
func UserContext(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Next()
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}
		c.Locals("user_id", claims.Subject)
		c.Locals("username", claims.Username)
		c.Locals("is_admin", claims.IsAdmin)
		return c.Next()
	}
}
