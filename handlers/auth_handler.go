package handlers

import (
	"errors"

	"academy-server/models"
	"academy-server/services"
	"academy-server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler serves registration, login and profile updates.
type AuthHandler struct {
	auth  *services.AuthService
	store storage.Store
	log   zerolog.Logger
}

func NewAuthHandler(auth *services.AuthService, store storage.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, log: log}
}

func SetupAuthRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Put("/api/users/:id", h.UpdateUser)
}

// Register creates a user. The password never appears in the response; the
// User model keeps it out of any JSON the server emits.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in models.InsertUser
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid user data", errs)
	}

	user, token, err := h.auth.Register(in)
	switch {
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error().Err(err).Msg("register failed")
		return failErr(c, fiber.StatusInternalServerError, "Registration failed", err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid login data")
	}

	user, token, err := h.auth.Login(in.Email, in.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		h.log.Error().Err(err).Msg("login failed")
		return failErr(c, fiber.StatusInternalServerError, "Login failed", err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

// UpdateUser applies a partial profile update (theme, email, ...). The
// password and admin flag cannot be changed through this route.
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user data")
	}
	delete(partial, "password")
	delete(partial, "isAdmin")

	user, err := h.store.UpdateUser(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}
	if user == nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(user)
}
