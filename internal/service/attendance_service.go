package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk/internal/domain"
)

const dateLayout = "2006-01-02"

// AttendanceService handles daily check-in/check-out
type AttendanceService struct {
	attendanceRepo domain.AttendanceRepository
	cache          domain.CacheRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo domain.AttendanceRepository, cache domain.CacheRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		cache:          cache,
	}
}

// CheckIn records the employee's arrival for today. A second check-in on the
// same date fails with ErrAlreadyCheckedIn and leaves the first record alone.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string) (*domain.Attendance, error) {
	now := time.Now()
	today := now.Format(dateLayout)

	if _, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today); err == nil {
		return nil, domain.ErrAlreadyCheckedIn
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}

	rec := &domain.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    now,
		Status:     domain.AttendancePresent,
	}
	if err := s.attendanceRepo.Create(ctx, rec); err != nil {
		// The unique (employee, date) index catches the race between the
		// lookup above and the insert.
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}

	return rec, nil
}

// CheckOut stamps the departure time on today's record. Less than four hours
// on the clock downgrades the day to half_day.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string) (*domain.Attendance, error) {
	now := time.Now()
	today := now.Format(dateLayout)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotCheckedIn
		}
		return nil, err
	}
	if rec.CheckOut != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	status := domain.AttendancePresent
	if now.Sub(rec.CheckIn) < 4*time.Hour {
		status = domain.AttendanceHalfDay
	}

	if err := s.attendanceRepo.SetCheckOut(ctx, rec.ID, now, status); err != nil {
		return nil, err
	}

	rec.CheckOut = &now
	rec.Status = status
	return rec, nil
}

// History returns the employee's own records, optionally bounded by
// from/to dates (inclusive, "2006-01-02").
func (s *AttendanceService) History(ctx context.Context, employeeID, from, to string) ([]*domain.Attendance, error) {
	if err := validateDateBounds(from, to); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
}

// ForDate returns every employee's record for one date (admin view).
func (s *AttendanceService) ForDate(ctx context.Context, date string) ([]*domain.Attendance, error) {
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domain.Validationf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return s.attendanceRepo.ListByDate(ctx, date)
}

// Range returns all records between from and to for the CSV export.
func (s *AttendanceService) Range(ctx context.Context, from, to string) ([]*domain.Attendance, error) {
	if from == "" || to == "" {
		return nil, domain.Validationf("from and to dates are required")
	}
	if err := validateDateBounds(from, to); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByRange(ctx, from, to)
}

func validateDateBounds(dates ...string) error {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return domain.Validationf("invalid date %q: expected YYYY-MM-DD", d)
		}
	}
	return nil
}
