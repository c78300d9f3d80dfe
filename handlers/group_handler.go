package handlers

import (
	"github.com/bilal-attab/tuition_manager/ledger"
	"github.com/bilal-attab/tuition_manager/models"
	"github.com/gofiber/fiber/v2"
)

type CreateGroupRequest struct {
	Name             string  `json:"name" validate:"required"`
	MonthlyPrice     float64 `json:"monthlyPrice" validate:"gte=0"`
	SessionsPerMonth int     `json:"sessionsPerMonth" validate:"required,gte=1"`
}

// ListGroups returns every group with its outstanding debt and credit
// figures, the summary the groups screen shows.
func (h *APIHandler) ListGroups(c *fiber.Ctx) error {
	groups := h.repo.Groups()
	students := h.repo.Students()

	type groupSummary struct {
		Group        models.Group `json:"group"`
		StudentCount int          `json:"studentCount"`
		Debt         float64      `json:"debt"`
		Credit       float64      `json:"credit"`
	}

	summaries := make([]groupSummary, 0, len(groups))
	for _, g := range groups {
		count := 0
		for _, s := range students {
			if s.GroupID == g.ID {
				count++
			}
		}
		debt, credit := ledger.Outstanding(g, students)
		summaries = append(summaries, groupSummary{
			Group:        g,
			StudentCount: count,
			Debt:         debt,
			Credit:       credit,
		})
	}
	return c.JSON(fiber.Map{"groups": summaries})
}

func (h *APIHandler) CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	g, err := h.repo.AddGroup(c.UserContext(), req.Name, req.MonthlyPrice, req.SessionsPerMonth)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "group": g})
}

// DeleteGroup removes the group and cascades to its students.
func (h *APIHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.repo.DeleteGroup(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// IncrementTeacherSessions bumps the group's taught-session counter.
func (h *APIHandler) IncrementTeacherSessions(c *fiber.Ctx) error {
	g, err := h.repo.IncrementTeacherSessions(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "group": g})
}

// ListGroupStudents returns the group's roster in display order.
func (h *APIHandler) ListGroupStudents(c *fiber.Ctx) error {
	g, err := h.repo.Group(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	students := ledger.SortByName(h.repo.StudentsOfGroup(g.ID), h.collator)
	return c.JSON(fiber.Map{"group": g, "students": students})
}

// ListGroupDebtors returns the group's students at or past the debt
// threshold, sorted by name.
func (h *APIHandler) ListGroupDebtors(c *fiber.Ctx) error {
	g, err := h.repo.Group(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	debtors := ledger.Debtors(g, h.repo.StudentsOfGroup(g.ID), h.collator)
	return c.JSON(fiber.Map{"group": g, "debtors": debtors})
}
