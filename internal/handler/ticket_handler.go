package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// TicketHandler handles helpdesk ticket endpoints
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// Create handles POST /v1/tickets
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Subject     string `json:"subject"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ticket, err := h.ticketService.Create(c.Context(), middleware.GetPrincipal(c), req.Subject, req.Description, req.Priority)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, ticket)
}

// List handles GET /v1/tickets
func (h *TicketHandler) List(c *fiber.Ctx) error {
	tickets, err := h.ticketService.List(c.Context(), middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, tickets)
}

// Get handles GET /v1/tickets/:id
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.ticketService.Get(c.Context(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, ticket)
}

// AddMessage handles POST /v1/tickets/:id/messages
func (h *TicketHandler) AddMessage(c *fiber.Ctx) error {
	var req struct {
		SenderName string `json:"sender_name"`
		Body       string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ticket, err := h.ticketService.AddMessage(c.Context(), middleware.GetPrincipal(c), c.Params("id"), req.SenderName, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, ticket)
}

// UpdateStatus handles PATCH /v1/admin/tickets/:id/status
func (h *TicketHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ticket, err := h.ticketService.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, ticket)
}
