package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// MeetingHandler handles meeting scheduling endpoints
type MeetingHandler struct {
	meetingService *service.MeetingService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
	}
}

// Create handles POST /v1/meetings
func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	var req service.MeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	meeting, err := h.meetingService.Create(c.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, meeting)
}

// List handles GET /v1/meetings
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	meetings, err := h.meetingService.List(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, meetings)
}

// Get handles GET /v1/meetings/:id
func (h *MeetingHandler) Get(c *fiber.Ctx) error {
	meeting, err := h.meetingService.Get(c.Context(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, meeting)
}

// Update handles PUT /v1/meetings/:id. Organizer or admin only.
func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	var req service.MeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	meeting, err := h.meetingService.Update(c.Context(), middleware.GetPrincipal(c), c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, meeting)
}

// Delete handles DELETE /v1/meetings/:id. Organizer or admin only.
func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	if err := h.meetingService.Delete(c.Context(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
