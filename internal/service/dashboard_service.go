package service

import (
	"context"
	"log"
	"time"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// dashboardTTL bounds how stale the admin counters may get.
const dashboardTTL = 60 * time.Second

// DashboardService aggregates the admin landing-page counters with a
// read-through Redis cache in front of the Mongo counts.
type DashboardService struct {
	userRepo       domain.UserRepository
	attendanceRepo domain.AttendanceRepository
	ticketRepo     domain.TicketRepository
	payrollRepo    domain.PayrollRepository
	meetingRepo    domain.MeetingRepository
	cache          domain.CacheRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo domain.UserRepository,
	attendanceRepo domain.AttendanceRepository,
	ticketRepo domain.TicketRepository,
	payrollRepo domain.PayrollRepository,
	meetingRepo domain.MeetingRepository,
	cache domain.CacheRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		ticketRepo:     ticketRepo,
		payrollRepo:    payrollRepo,
		meetingRepo:    meetingRepo,
		cache:          cache,
	}
}

// Summary returns the counters, served from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDashboardSummary(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("dashboard cache read failed: %v", err)
		}
	}

	now := time.Now()
	today := now.Format(dateLayout)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	employees, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	presentToday, err := s.attendanceRepo.CountByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	openTickets, err := s.ticketRepo.CountByStatus(ctx, domain.TicketOpen)
	if err != nil {
		return nil, err
	}
	pendingPayroll, err := s.payrollRepo.CountByStatus(ctx, domain.PayrollPending)
	if err != nil {
		return nil, err
	}
	meetingsToday, err := s.meetingRepo.CountOnDate(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{
		Employees:      employees,
		PresentToday:   presentToday,
		OpenTickets:    openTickets,
		PendingPayroll: pendingPayroll,
		MeetingsToday:  meetingsToday,
		GeneratedAt:    now,
	}

	if s.cache != nil {
		if err := s.cache.SetDashboardSummary(ctx, summary, dashboardTTL); err != nil {
			log.Printf("dashboard cache write failed: %v", err)
		}
	}

	return summary, nil
}
