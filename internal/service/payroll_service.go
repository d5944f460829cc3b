package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// PayrollService handles salary slip creation and release
type PayrollService struct {
	payrollRepo domain.PayrollRepository
	userRepo    domain.UserRepository
	cache       domain.CacheRepository
	notifier    domain.Notifier
}

// NewPayrollService creates a new payroll service
func NewPayrollService(payrollRepo domain.PayrollRepository, userRepo domain.UserRepository, cache domain.CacheRepository, notifier domain.Notifier) *PayrollService {
	return &PayrollService{
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
		cache:       cache,
		notifier:    notifier,
	}
}

// CreateRequest contains the slip creation params
type CreateRequest struct {
	EmployeeID string  `json:"employee_id"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Basic      float64 `json:"basic"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
}

// Create issues a pending slip for one (employee, month, year) period.
func (s *PayrollService) Create(ctx context.Context, req CreateRequest) (*domain.Payroll, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, domain.Validationf("month must be between 1 and 12")
	}
	if req.Year < 2000 {
		return nil, domain.Validationf("year %d is out of range", req.Year)
	}
	if req.Basic < 0 || req.Allowances < 0 || req.Deductions < 0 {
		return nil, domain.Validationf("amounts must not be negative")
	}

	// The employee must exist; a stale ID would create an orphan slip.
	if _, err := s.userRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("employee %s: %w", req.EmployeeID, domain.ErrNotFound)
		}
		return nil, err
	}

	slip := &domain.Payroll{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Basic:      req.Basic,
		Allowances: req.Allowances,
		Deductions: req.Deductions,
		Net:        req.Basic + req.Allowances - req.Deductions,
		Status:     domain.PayrollPending,
	}
	if err := s.payrollRepo.Create(ctx, slip); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}

	return slip, nil
}

// Release marks a pending slip released and stamps the release date, then
// tells the employee over the realtime channel.
func (s *PayrollService) Release(ctx context.Context, id string) (*domain.Payroll, error) {
	if err := s.payrollRepo.Release(ctx, id, time.Now()); err != nil {
		return nil, err
	}

	slip, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(slip.EmployeeID, "payroll_released", slip)
	}

	return slip, nil
}

// ForEmployee returns the employee's own slips.
func (s *PayrollService) ForEmployee(ctx context.Context, employeeID string) ([]*domain.Payroll, error) {
	return s.payrollRepo.ListByEmployee(ctx, employeeID)
}

// ForPeriod returns all slips, optionally filtered by month/year (admin view).
func (s *PayrollService) ForPeriod(ctx context.Context, month, year int) ([]*domain.Payroll, error) {
	return s.payrollRepo.ListByPeriod(ctx, month, year)
}
