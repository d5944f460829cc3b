package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/domain"
	"github.com/crewdesk/crewdesk/internal/service"
)

// Context keys for storing the authenticated identity
const (
	UserIDKey = "userID"
	EmailKey  = "email"
	RoleKey   = "role"
)

// RequireAuth validates the bearer token and attaches the identity to the
// request context. All verification failures return the same 401 body so
// clients can't distinguish malformed, tampered and expired tokens.
func RequireAuth(tokens *service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		// Expected format: "Bearer <token>"
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header",
			})
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(EmailKey, claims.Email)
		c.Locals(RoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole allows the request through when the principal holds one of the
// given roles. Admin passes every role gate.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No role found in token",
			})
		}

		if role == domain.RoleAdmin {
			return c.Next()
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Insufficient permissions",
			"required_roles": allowedRoles,
		})
	}
}

// GetUserID extracts the authenticated user ID from Fiber context
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDKey).(string); ok {
		return v
	}
	return ""
}

// GetRole extracts the authenticated role from Fiber context
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(RoleKey).(string); ok {
		return v
	}
	return ""
}

// GetPrincipal assembles the request's Principal from context values.
func GetPrincipal(c *fiber.Ctx) domain.Principal {
	email, _ := c.Locals(EmailKey).(string)
	return domain.Principal{
		UserID: GetUserID(c),
		Email:  email,
		Role:   GetRole(c),
	}
}
