package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/middleware"
	"github.com/crewdesk/crewdesk/internal/service"
)

// AuthHandler handles registration, login and the profile endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.StatusCreated, resp)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.StatusOK, resp)
}

// Me handles GET /v1/me. Returns live account state, not the token snapshot.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Profile(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}

// UpdateMe handles PUT /v1/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Designation string `json:"designation"`
		Phone       string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.authService.UpdateProfile(c.Context(), middleware.GetUserID(c), req.Name, req.Designation, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}
