package handlers

import (
	"academy-server/models"

	"github.com/gofiber/fiber/v2"
)

// fail writes the standard error body: {"message": ...}.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// failErr attaches the underlying cause for server-side failures.
func failErr(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "error": err.Error()})
}

// failValidation enumerates every offending field of a creation payload.
func failValidation(c *fiber.Ctx, message string, errs []models.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message, "errors": errs})
}
