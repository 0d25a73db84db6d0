package report

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// parseFilters reads the shared query parameters. date_from/date_to use the
// YYYY-MM-DD layout; date_to is widened to the end of its day so the range
// stays inclusive on both ends.
func parseFilters(c *fiber.Ctx) (ReportFilters, error) {
	filters := ReportFilters{Format: c.Query("format", "XLSX")}

	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, fiber.NewError(fiber.StatusBadRequest, "Invalid project_id")
		}
		projectID := uint(id)
		filters.ProjectID = &projectID
	}

	if raw := c.Query("session_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filters, fiber.NewError(fiber.StatusBadRequest, "Invalid session_id")
		}
		sessionID := uint(id)
		filters.SessionID = &sessionID
	}

	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, fiber.NewError(fiber.StatusBadRequest, "date_from must be 'YYYY-MM-DD'")
		}
		filters.DateFrom = &from
	}

	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, fiber.NewError(fiber.StatusBadRequest, "date_to must be 'YYYY-MM-DD'")
		}
		to = to.Add(24*time.Hour - time.Second)
		filters.DateTo = &to
	}

	return filters, nil
}

// GET /api/reports
// Returns the joined dataset plus the filename a rendered file would get.
func BuildReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := parseFilters(c)
		if err != nil {
			return err
		}

		rep, err := BuildReport(filters)
		if err != nil {
			return err
		}

		return c.JSON(rep)
	}
}

// GET /api/reports/download
// Renders the dataset as an XLSX workbook. PDF rendering is not done here;
// PDF requests only affect the filename returned by GET /api/reports.
func DownloadReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := parseFilters(c)
		if err != nil {
			return err
		}
		filters.Format = "XLSX"

		rep, err := BuildReport(filters)
		if err != nil {
			return err
		}

		buf, err := RenderXLSX(rep)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render report file")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rep.Filename+`"`)
		return c.Send(buf.Bytes())
	}
}
