package handlers

import (
	"github.com/bilal-attab/tuition_manager/ledger"
	"github.com/bilal-attab/tuition_manager/repository"
	"github.com/gofiber/fiber/v2"
)

type CreateStudentRequest struct {
	GroupID         string   `json:"groupId" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Phone           string   `json:"phone"`
	IndividualPrice *float64 `json:"individualPrice" validate:"omitempty,gte=0"`
}

// UpdateStudentRequest carries a partial edit. Absent fields are untouched;
// an explicit null individualPrice reverts the student to the group price.
type UpdateStudentRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1"`
	Phone           *string  `json:"phone"`
	SessionsOwed    *int     `json:"sessionsOwed"`
	IndividualPrice *float64 `json:"individualPrice" validate:"omitempty,gte=0"`
}

func (h *APIHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s, err := h.repo.AddStudent(c.UserContext(), req.GroupID, req.Name, req.Phone, req.IndividualPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "student": s})
}

func (h *APIHandler) UpdateStudent(c *fiber.Ctx) error {
	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// "individualPrice": null means revert to the group price; an absent key
	// means leave it alone. Re-scan the raw body to tell the two apart.
	var raw map[string]any
	clearPrice := false
	if err := c.App().Config().JSONDecoder(c.Body(), &raw); err == nil {
		if v, present := raw["individualPrice"]; present && v == nil {
			clearPrice = true
		}
	}

	s, err := h.repo.UpdateStudent(c.UserContext(), c.Params("id"), repository.StudentUpdate{
		Name:                 req.Name,
		Phone:                req.Phone,
		SessionsOwed:         req.SessionsOwed,
		IndividualPrice:      req.IndividualPrice,
		ClearIndividualPrice: clearPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "student": s})
}

func (h *APIHandler) DeleteStudent(c *fiber.Ctx) error {
	if err := h.repo.DeleteStudent(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// MarkAttendance records one attended session.
func (h *APIHandler) MarkAttendance(c *fiber.Ctx) error {
	s, err := h.repo.MarkAttendance(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "student": s})
}

// MarkPayment records a billing-cycle payment.
func (h *APIHandler) MarkPayment(c *fiber.Ctx) error {
	s, err := h.repo.MarkPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "student": s})
}

// StudentStatus returns the student's ledger classification.
func (h *APIHandler) StudentStatus(c *fiber.Ctx) error {
	s, err := h.repo.Student(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	g, err := h.repo.Group(s.GroupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"student": s, "status": ledger.StudentStatus(s, g)})
}
