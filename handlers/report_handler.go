package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetReport returns the financial report as structured JSON.
func (h *APIHandler) GetReport(c *fiber.Ctx) error {
	return c.JSON(h.report.Build())
}

// GetReportText serves the plain-text rendering of the report.
func (h *APIHandler) GetReportText(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(h.report.RenderText())
}

// GetReportXLSX serves the report workbook as a download.
func (h *APIHandler) GetReportXLSX(c *fiber.Ctx) error {
	raw, err := h.report.RenderXLSX()
	if err != nil {
		return respondError(c, err)
	}
	filename := "tuition-report-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(raw)
}
