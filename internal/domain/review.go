package domain

import (
	"context"
	"time"
)

// Review statuses
const (
	ReviewSubmitted    = "submitted"
	ReviewAcknowledged = "acknowledged"
)

// Review is a performance review written by a manager or admin.
type Review struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	EmployeeID   string     `bson:"employee_id" json:"employee_id"`
	ReviewerID   string     `bson:"reviewer_id" json:"reviewer_id"`
	Period       string     `bson:"period" json:"period"` // e.g. "2024-H1"
	Rating       int        `bson:"rating" json:"rating"` // 1..5
	Strengths    string     `bson:"strengths" json:"strengths"`
	Improvements string     `bson:"improvements" json:"improvements"`
	Status       string     `bson:"status" json:"status"`
	AckedAt      *time.Time `bson:"acked_at,omitempty" json:"acked_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// MemberIDs implements Owned: the reviewed employee and the reviewer.
func (r *Review) MemberIDs() []string {
	return []string{r.EmployeeID, r.ReviewerID}
}

// ReviewRepository defines review persistence operations
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Acknowledge(ctx context.Context, id string, at time.Time) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*Review, error)
	ListAll(ctx context.Context) ([]*Review, error)
}
