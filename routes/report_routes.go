package routes

import (
	"github.com/bilal-attab/tuition_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App, h *handlers.APIHandler) {
	api := app.Group("/api/v1")

	api.Get("/report", h.GetReport)
	api.Get("/report/text", h.GetReportText)
	api.Get("/report/xlsx", h.GetReportXLSX)
}
