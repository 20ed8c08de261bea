package handlers

import (
	"academy-server/models"
	"academy-server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// JournalHandler serves journal entries and the virtual altar.
type JournalHandler struct {
	store storage.Store
	log   zerolog.Logger
}

func NewJournalHandler(store storage.Store, log zerolog.Logger) *JournalHandler {
	return &JournalHandler{store: store, log: log}
}

func SetupJournalRoutes(app *fiber.App, h *JournalHandler) {
	app.Get("/api/users/:userId/journal", h.GetUserJournal)
	app.Post("/api/journal", h.CreateEntry)
	app.Put("/api/journal/:id", h.UpdateEntry)
	app.Delete("/api/journal/:id", h.DeleteEntry)

	app.Get("/api/users/:userId/altar", h.GetUserAltar)
	app.Post("/api/altar", h.CreateAltarElement)
	app.Put("/api/altar/:id", h.UpdateAltarElement)
}

// GetUserJournal lists a user's entries, newest first.
func (h *JournalHandler) GetUserJournal(c *fiber.Ctx) error {
	entries, err := h.store.GetUserJournalEntries(c.Params("userId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch journal entries", err)
	}
	return c.JSON(entries)
}

func (h *JournalHandler) CreateEntry(c *fiber.Ctx) error {
	var in models.InsertJournalEntry
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid journal entry data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid journal entry data", errs)
	}
	entry, err := h.store.CreateJournalEntry(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create journal entry", err)
	}
	return c.JSON(entry)
}

func (h *JournalHandler) UpdateEntry(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid journal entry data")
	}
	entry, err := h.store.UpdateJournalEntry(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update journal entry", err)
	}
	if entry == nil {
		return fail(c, fiber.StatusNotFound, "Journal entry not found")
	}
	return c.JSON(entry)
}

func (h *JournalHandler) DeleteEntry(c *fiber.Ctx) error {
	ok, err := h.store.DeleteJournalEntry(c.Params("id"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to delete journal entry", err)
	}
	if !ok {
		return fail(c, fiber.StatusNotFound, "Journal entry not found")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// Altar

func (h *JournalHandler) GetUserAltar(c *fiber.Ctx) error {
	elements, err := h.store.GetUserAltarElements(c.Params("userId"))
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to fetch altar", err)
	}
	return c.JSON(elements)
}

func (h *JournalHandler) CreateAltarElement(c *fiber.Ctx) error {
	var in models.InsertAltarElement
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid altar element data")
	}
	if errs := models.Validate(in); errs != nil {
		return failValidation(c, "Invalid altar element data", errs)
	}
	element, err := h.store.CreateAltarElement(in)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to create altar element", err)
	}
	return c.JSON(element)
}

func (h *JournalHandler) UpdateAltarElement(c *fiber.Ctx) error {
	var partial storage.Partial
	if err := c.BodyParser(&partial); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid altar element data")
	}
	element, err := h.store.UpdateAltarElement(c.Params("id"), partial)
	if err != nil {
		return failErr(c, fiber.StatusInternalServerError, "Failed to update altar element", err)
	}
	if element == nil {
		return fail(c, fiber.StatusNotFound, "Altar element not found")
	}
	return c.JSON(element)
}
