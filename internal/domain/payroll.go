package domain

import (
	"context"
	"time"
)

// Payroll statuses
const (
	PayrollPending  = "pending"
	PayrollReleased = "released"
)

// Payroll is one salary slip for one (employee, month, year) period.
type Payroll struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	EmployeeID  string     `bson:"employee_id" json:"employee_id"`
	Month       int        `bson:"month" json:"month"` // 1..12
	Year        int        `bson:"year" json:"year"`
	Basic       float64    `bson:"basic" json:"basic"`
	Allowances  float64    `bson:"allowances" json:"allowances"`
	Deductions  float64    `bson:"deductions" json:"deductions"`
	Net         float64    `bson:"net" json:"net"`
	Status      string     `bson:"status" json:"status"`
	ReleaseDate *time.Time `bson:"release_date,omitempty" json:"release_date,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// PayrollRepository defines payroll persistence operations
type PayrollRepository interface {
	Create(ctx context.Context, slip *Payroll) error
	GetByID(ctx context.Context, id string) (*Payroll, error)
	GetByPeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	Release(ctx context.Context, id string, at time.Time) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*Payroll, error)
	ListByPeriod(ctx context.Context, month, year int) ([]*Payroll, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
