package domain

import (
	"context"
	"time"
)

// DashboardSummary is the admin landing-page counters block.
type DashboardSummary struct {
	Employees      int64     `json:"employees"`
	PresentToday   int64     `json:"present_today"`
	OpenTickets    int64     `json:"open_tickets"`
	PendingPayroll int64     `json:"pending_payroll"`
	MeetingsToday  int64     `json:"meetings_today"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// CacheRepository defines the read-through cache used by the dashboard.
type CacheRepository interface {
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
	SetDashboardSummary(ctx context.Context, summary *DashboardSummary, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error
}
