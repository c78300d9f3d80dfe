package handlers

import (
	"time"

	"github.com/bilal-attab/tuition_manager/repository"
	"github.com/gofiber/fiber/v2"
)

// ExportData serves the full backup document as a JSON download named after
// the current date.
func (h *APIHandler) ExportData(c *fiber.Ctx) error {
	raw, err := h.repo.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+repository.ExportFilename(time.Now())+`"`)
	return c.Send(raw)
}

// ImportData replaces the stored collections with the uploaded document.
// A bad document leaves existing state untouched.
func (h *APIHandler) ImportData(c *fiber.Ctx) error {
	if err := h.repo.Import(c.UserContext(), c.Body()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Data imported"})
}
