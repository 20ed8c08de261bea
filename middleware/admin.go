package middleware

import "github.com/gofiber/fiber/v2"

// RequireAdmin rejects requests whose token does not carry the admin flag.
// It expects UserContext to have run first.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("user_id") == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if isAdmin, _ := c.Locals("is_admin").(bool); !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// Passthrough is the admin gate used when admin enforcement is disabled.
func Passthrough() fiber.Handler {
	return func(c *fiber.Ctx) error { return c.Next() }
}
