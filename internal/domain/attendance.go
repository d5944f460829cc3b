package domain

import (
	"context"
	"time"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceHalfDay = "half_day"
)

// Attendance is one employee's record for one calendar date.
// Date is stored as "2006-01-02" so the (employee, date) pair can carry a
// unique index.
type Attendance struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	EmployeeID string     `bson:"employee_id" json:"employee_id"`
	Date       string     `bson:"date" json:"date"`
	CheckIn    time.Time  `bson:"check_in" json:"check_in"`
	CheckOut   *time.Time `bson:"check_out,omitempty" json:"check_out,omitempty"`
	Status     string     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// AttendanceRepository defines attendance persistence operations
type AttendanceRepository interface {
	Create(ctx context.Context, rec *Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	SetCheckOut(ctx context.Context, id string, at time.Time, status string) error
	ListByEmployee(ctx context.Context, employeeID, from, to string) ([]*Attendance, error)
	ListByDate(ctx context.Context, date string) ([]*Attendance, error)
	ListByRange(ctx context.Context, from, to string) ([]*Attendance, error)
	CountByDate(ctx context.Context, date string) (int64, error)
}
