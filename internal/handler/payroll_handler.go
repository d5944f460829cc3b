package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// PayrollHandler handles salary slip endpoints
type PayrollHandler struct {
	payrollService *service.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
	}
}

// Create handles POST /v1/admin/payroll
func (h *PayrollHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	slip, err := h.payrollService.Create(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, slip)
}

// Release handles POST /v1/admin/payroll/:id/release
func (h *PayrollHandler) Release(c *fiber.Ctx) error {
	slip, err := h.payrollService.Release(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, slip)
}

// ListAll handles GET /v1/admin/payroll?month=&year=
func (h *PayrollHandler) ListAll(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	slips, err := h.payrollService.ForPeriod(c.Context(), month, year)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, slips)
}

// ListMine handles GET /v1/payroll, the caller's own slips
func (h *PayrollHandler) ListMine(c *fiber.Ctx) error {
	slips, err := h.payrollService.ForEmployee(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, slips)
}
