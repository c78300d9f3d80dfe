package routes

import (
	"github.com/bilal-attab/tuition_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func GroupRoutes(app *fiber.App, h *handlers.APIHandler) {
	api := app.Group("/api/v1")

	api.Get("/groups", h.ListGroups)
	api.Post("/groups", h.CreateGroup)
	api.Delete("/groups/:id", h.DeleteGroup)
	api.Post("/groups/:id/teacher-sessions", h.IncrementTeacherSessions)
	api.Get("/groups/:id/students", h.ListGroupStudents)
	api.Get("/groups/:id/debtors", h.ListGroupDebtors)
}
