package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/service"
)

// DashboardHandler handles the admin dashboard counters
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary handles GET /v1/admin/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.Summary(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, summary)
}
