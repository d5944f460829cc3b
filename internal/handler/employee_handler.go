package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// EmployeeHandler handles the admin employee-management endpoints
type EmployeeHandler struct {
	userRepo domain.UserRepository
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(userRepo domain.UserRepository) *EmployeeHandler {
	return &EmployeeHandler{
		userRepo: userRepo,
	}
}

type employeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Active      *bool  `json:"active"`
}

// List handles GET /v1/admin/employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var (
		users []*domain.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.userRepo.GetByRole(c.Context(), role)
	} else {
		users, err = h.userRepo.GetAll(c.Context())
	}
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, users)
}

// Create handles POST /v1/admin/employees
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	email := domain.NormalizeEmail(req.Email)
	if req.Name == "" || email == "" || req.Password == "" {
		return badRequest(c, "name, email and password are required")
	}
	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return badRequest(c, "invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
		Designation:  req.Designation,
		Phone:        req.Phone,
		Active:       true,
		JoinedAt:     &now,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, user)
}

// Get handles GET /v1/admin/employees/:id
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}

// Update handles PUT /v1/admin/employees/:id. Role changes land here; an
// already-issued token keeps the old role until it expires.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.userRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = domain.NormalizeEmail(req.Email)
	}
	if req.Role != "" {
		if !domain.ValidRole(req.Role) {
			return badRequest(c, "invalid role")
		}
		user.Role = req.Role
	}
	if req.Designation != "" {
		user.Designation = req.Designation
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fail(c, err)
		}
		user.PasswordHash = string(hash)
	}

	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, user)
}

// Delete handles DELETE /v1/admin/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.userRepo.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
