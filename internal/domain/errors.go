package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks client input that failed a shape or range check.
// Handlers translate it to a 400 response.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return ValidationError(fmt.Sprintf(format, args...))
}

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("access forbidden: you don't own this resource")

	// Token verification failures. The HTTP gate collapses all three into a
	// single 401 so callers can't tell which check failed.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")

	// Attendance
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedIn      = errors.New("not checked in today")

	// Payroll
	ErrPayrollDuplicate = errors.New("payroll entry already exists for this period")
	ErrPayrollReleased  = errors.New("payroll entry already released")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrEmailTaken         = errors.New("email already registered")
)
