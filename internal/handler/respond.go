package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// fail translates a service error into the HTTP taxonomy. Domain sentinels
// map to 4xx; anything unrecognized is a 500 with a generic message so
// internals never leak to clients.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal server error"

	var vErr domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		status, msg = fiber.StatusBadRequest, vErr.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, msg = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		status, msg = fiber.StatusBadRequest, "Already checked in today"
	case errors.Is(err, domain.ErrAlreadyCheckedOut):
		status, msg = fiber.StatusBadRequest, "Already checked out today"
	case errors.Is(err, domain.ErrNotCheckedIn):
		status, msg = fiber.StatusNotFound, "Not checked in today"
	case errors.Is(err, domain.ErrPayrollDuplicate):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrPayrollReleased):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrAccountDisabled):
		status, msg = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		status, msg = fiber.StatusConflict, err.Error()
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// badRequest reports a validation failure with the given message.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// ok wraps a successful payload.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}
