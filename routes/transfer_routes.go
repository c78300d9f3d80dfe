package routes

import (
	"github.com/bilal-attab/tuition_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func TransferRoutes(app *fiber.App, h *handlers.APIHandler) {
	api := app.Group("/api/v1")

	api.Get("/export", h.ExportData)
	api.Post("/import", h.ImportData)
}
