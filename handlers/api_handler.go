package handlers

import (
	"errors"

	"github.com/bilal-attab/tuition_manager/repository"
	"github.com/bilal-attab/tuition_manager/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/collate"
)

var validate = validator.New()

// APIHandler serves the HTTP surface over an injected repository, so tests
// and the binary construct their own instead of sharing a global.
type APIHandler struct {
	repo     *repository.Repository
	report   *services.ReportService
	collator *collate.Collator
}

func NewAPIHandler(repo *repository.Repository, report *services.ReportService, collator *collate.Collator) *APIHandler {
	return &APIHandler{repo: repo, report: report, collator: collator}
}

// respondError maps repository errors onto HTTP statuses. Nothing here is
// fatal: bad input and stale ids degrade to an error payload.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrGroupNotFound),
		errors.Is(err, repository.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
