package routes

import (
	"github.com/bilal-attab/tuition_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App, h *handlers.APIHandler) {
	api := app.Group("/api/v1")

	api.Post("/students", h.CreateStudent)
	api.Patch("/students/:id", h.UpdateStudent)
	api.Delete("/students/:id", h.DeleteStudent)
	api.Post("/students/:id/attendance", h.MarkAttendance)
	api.Post("/students/:id/payment", h.MarkPayment)
	api.Get("/students/:id/status", h.StudentStatus)
}
