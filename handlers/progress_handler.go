package handlers

import (
	"academy-server/models"
	"academy-server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProgressHandler serves per-user lesson progress and achievements.
type ProgressHandler struct {
	store storage.Store
	log   zerolog.Logger
}

func NewProgressHandler(store storage.Store, log zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{store: store, log: log}
}

func SetupProgressRoutes(app *fiber.App, h *ProgressHandler, admin fiber.Handler) {
	app.Get("/api/users/:userId/progress", h.GetUserProgress)
	app.Post("/api/progress", h.CreateProgress)
	app.Put("/api/progress/:id", h.UpdateProgress)

	app.Get("/api/achievements", h.GetAchievements)
	app.Post("/api/achievements", admin, h.CreateAchievement)
	app.Get("/api/users/:userId/achievements", h.GetUserAchievements)
	app.Post("/api/users/:userId/achievements/:achievementId", admin, h.GrantAchievement)
}

func (h *ProgressHandler) GetUserProgress(c *fiber.Ctx) error {
	progress, err := h.store.GetUserProgress(c.Params("userId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch progress", err)
	}
	return c.JSON(progress)
}

// CreateProgress starts a lesson for a user. One record per (user, lesson)
// pair: a second create for the same pair is rejected with a conflict.
func (h *ProgressHandler) CreateProgress(c *fiber.Ctx) error {
	var in models.InsertUserProgress
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid progress data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid progress data", errs)
	}

	existing, err := h.store.GetUserProgressByLesson(in.UserID, in.LessonID)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create progress", err)
	}
	if existing != nil {
		return fail(c, fiber.StatusConflict, "Progress already exists for this lesson")
	}

	progress, err := h.store.CreateUserProgress(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create progress", err)
	}
	return c.JSON(progress)
}

// UpdateProgress merges a partial body; setting completed=true stamps
// completedAt on the server.
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid progress data")
	}
	progress, err := h.store.UpdateUserProgress(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update progress", err)
	}
	if progress == nil {
		return fail(c, fiber.StatusNotFound, "Progress not found")
	}
	return c.JSON(progress)
}

// Achievements

func (h *ProgressHandler) GetAchievements(c *fiber.Ctx) error {
	achievements, err := h.store.GetAchievements()
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch achievements", err)
	}
	return c.JSON(achievements)
}

func (h *ProgressHandler) CreateAchievement(c *fiber.Ctx) error {
	var in models.InsertAchievement
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid achievement data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid achievement data", errs)
	}
	achievement, err := h.store.CreateAchievement(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create achievement", err)
	}
	return c.JSON(achievement)
}

func (h *ProgressHandler) GetUserAchievements(c *fiber.Ctx) error {
	achievements, err := h.store.GetUserAchievements(c.Params("userId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch user achievements", err)
	}
	return c.JSON(achievements)
}

// GrantAchievement awards an achievement to a user. Granting twice is a
// no-op that returns the original earned record.
func (h *ProgressHandler) GrantAchievement(c *fiber.Ctx) error {
	userID, achievementID := c.Params("userId"), c.Params("achievementId")

	user, err := h.store.GetUser(userID)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to grant achievement", err)
	}
	if user == nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	achievement, err := h.store.GetAchievement(achievementID)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to grant achievement", err)
	}
	if achievement == nil {
		return fail(c, fiber.StatusNotFound, "Achievement not found")
	}

	grant, err := h.store.GrantAchievement(userID, achievementID)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to grant achievement", err)
	}
	return c.JSON(grant)
}
