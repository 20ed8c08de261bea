package handlers

import (
	"academy-server/models"
	"academy-server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ContentHandler serves the curriculum tree: realms, modules, lessons.
type ContentHandler struct {
	store storage.Store
	log   zerolog.Logger
}

func NewContentHandler(store storage.Store, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{store: store, log: log}
}

// SetupContentRoutes registers the curriculum routes. Write routes go
// through the admin gate, which is a pass-through unless REQUIRE_ADMIN is
// set.
func SetupContentRoutes(app *fiber.App, h *ContentHandler, admin fiber.Handler) {
	app.Get("/api/realms", h.GetRealms)
	app.Get("/api/realms/:id", h.GetRealm)
	app.Post("/api/realms", admin, h.CreateRealm)
	app.Put("/api/realms/:id", admin, h.UpdateRealm)
	app.Delete("/api/realms/:id", admin, h.DeleteRealm)

	app.Get("/api/realms/:realmId/modules", h.GetModulesByRealm)
	app.Get("/api/modules/:id", h.GetModule)
	app.Post("/api/modules", admin, h.CreateModule)
	app.Put("/api/modules/:id", admin, h.UpdateModule)
	app.Delete("/api/modules/:id", admin, h.DeleteModule)

	app.Get("/api/modules/:moduleId/lessons", h.GetLessonsByModule)
	app.Get("/api/lessons/:id", h.GetLesson)
	app.Post("/api/lessons", admin, h.CreateLesson)
	app.Put("/api/lessons/:id", admin, h.UpdateLesson)
	app.Delete("/api/lessons/:id", admin, h.DeleteLesson)
}

// Realms

func (h *ContentHandler) GetRealms(c *fiber.Ctx) error {
	realms, err := h.store.GetRealms()
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch realms", err)
	}
	return c.JSON(realms)
}

func (h *ContentHandler) GetRealm(c *fiber.Ctx) error {
	realm, err := h.store.GetRealm(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch realm", err)
	}
	if realm == nil {
		return fail(c, fiber.StatusNotFound, "Realm not found")
	}
	return c.JSON(realm)
}

func (h *ContentHandler) CreateRealm(c *fiber.Ctx) error {
	var in models.InsertRealm
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid realm data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid realm data", errs)
	}
	realm, err := h.store.CreateRealm(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create realm", err)
	}
	return c.JSON(realm)
}

func (h *ContentHandler) UpdateRealm(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid realm data")
	}
	realm, err := h.store.UpdateRealm(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update realm", err)
	}
	if realm == nil {
		return fail(c, fiber.StatusNotFound, "Realm not found")
	}
	return c.JSON(realm)
}

func (h *ContentHandler) DeleteRealm(c *fiber.Ctx) error {
	ok, err := h.store.DeleteRealm(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete realm", err)
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "Realm not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// Modules

func (h *ContentHandler) GetModulesByRealm(c *fiber.Ctx) error {
	modules, err := h.store.GetModulesByRealm(c.Params("realmId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch modules", err)
	}
	return c.JSON(modules)
}

func (h *ContentHandler) GetModule(c *fiber.Ctx) error {
	module, err := h.store.GetModule(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch module", err)
	}
	if module == nil {
		return fail(c, fiber.StatusNotFound, "Module not found")
	}
	return c.JSON(module)
}

func (h *ContentHandler) CreateModule(c *fiber.Ctx) error {
	var in models.InsertModule
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid module data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid module data", errs)
	}
	module, err := h.store.CreateModule(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create module", err)
	}
	return c.JSON(module)
}

func (h *ContentHandler) UpdateModule(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid module data")
	}
	module, err := h.store.UpdateModule(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update module", err)
	}
	if module == nil {
		return fail(c, fiber.StatusNotFound, "Module not found")
	}
	return c.JSON(module)
}

func (h *ContentHandler) DeleteModule(c *fiber.Ctx) error {
	ok, err := h.store.DeleteModule(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete module", err)
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "Module not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// Lessons

func (h *ContentHandler) GetLessonsByModule(c *fiber.Ctx) error {
	lessons, err := h.store.GetLessonsByModule(c.Params("moduleId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch lessons", err)
	}
	return c.JSON(lessons)
}

func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.store.GetLesson(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch lesson", err)
	}
	if lesson == nil {
		return fail(c, fiber.StatusNotFound, "Lesson not found")
	}
	return c.JSON(lesson)
}

func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var in models.InsertLesson
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid lesson data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid lesson data", errs)
	}
	lesson, err := h.store.CreateLesson(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create lesson", err)
	}
	return c.JSON(lesson)
}

func (h *ContentHandler) UpdateLesson(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid lesson data")
	}
	lesson, err := h.store.UpdateLesson(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update lesson", err)
	}
	if lesson == nil {
		return fail(c, fiber.StatusNotFound, "Lesson not found")
	}
	return c.JSON(lesson)
}

func (h *ContentHandler) DeleteLesson(c *fiber.Ctx) error {
	ok, err := h.store.DeleteLesson(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete lesson", err)
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "Lesson not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}
