package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// ReviewHandler handles performance review endpoints
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create handles POST /v1/manager/reviews (manager or admin)
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req service.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	review, err := h.reviewService.Create(c.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, review)
}

// ListAll handles GET /v1/manager/reviews?employee_id=
func (h *ReviewHandler) ListAll(c *fiber.Ctx) error {
	reviews, err := h.reviewService.All(c.Context(), c.Query("employee_id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, reviews)
}

// ListMine handles GET /v1/reviews, reviews about the caller
func (h *ReviewHandler) ListMine(c *fiber.Ctx) error {
	reviews, err := h.reviewService.ForEmployee(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, reviews)
}

// Acknowledge handles POST /v1/reviews/:id/ack
func (h *ReviewHandler) Acknowledge(c *fiber.Ctx) error {
	review, err := h.reviewService.Acknowledge(c.Context(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, review)
}
