package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// AttendanceHandler handles check-in/check-out and the admin views
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckIn handles POST /v1/attendance/checkin
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	rec, err := h.attendanceService.CheckIn(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, rec)
}

// CheckOut handles POST /v1/attendance/checkout
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	rec, err := h.attendanceService.CheckOut(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, rec)
}

// History handles GET /v1/attendance, the caller's own records
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	records, err := h.attendanceService.History(c.Context(), middleware.GetUserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, records)
}

// ListByDate handles GET /v1/admin/attendance?date=
func (h *AttendanceHandler) ListByDate(c *fiber.Ctx) error {
	records, err := h.attendanceService.ForDate(c.Context(), c.Query("date"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, records)
}

// ExportCSV handles GET /v1/admin/attendance/export?from=&to=
func (h *AttendanceHandler) ExportCSV(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")

	records, err := h.attendanceService.Range(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"employee_id", "date", "check_in", "check_out", "status"})
	for _, rec := range records {
		checkOut := ""
		if rec.CheckOut != nil {
			checkOut = rec.CheckOut.Format("15:04:05")
		}
		_ = w.Write([]string{
			rec.EmployeeID,
			rec.Date,
			rec.CheckIn.Format("15:04:05"),
			checkOut,
			rec.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance_%s_%s.csv"`, from, to))
	return c.Send(buf.Bytes())
}
