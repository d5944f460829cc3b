package domain

import (
	"context"
	"time"
)

// Ticket statuses
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Ticket priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TicketMessage is one entry in a ticket's conversation thread.
type TicketMessage struct {
	SenderID   string    `bson:"sender_id" json:"sender_id"`
	SenderName string    `bson:"sender_name" json:"sender_name"`
	Body       string    `bson:"body" json:"body"`
	SentAt     time.Time `bson:"sent_at" json:"sent_at"`
}

// Ticket is a support/helpdesk request raised by an employee.
type Ticket struct {
	ID          string          `bson:"_id,omitempty" json:"id"`
	EmployeeID  string          `bson:"employee_id" json:"employee_id"`
	Subject     string          `bson:"subject" json:"subject"`
	Description string          `bson:"description" json:"description"`
	Priority    string          `bson:"priority" json:"priority"`
	Status      string          `bson:"status" json:"status"`
	Messages    []TicketMessage `bson:"messages" json:"messages"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updated_at"`
}

// MemberIDs implements Owned: the raising employee owns the ticket.
func (t *Ticket) MemberIDs() []string {
	return []string{t.EmployeeID}
}

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// TicketRepository defines ticket persistence operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Ticket, error)
	ListAll(ctx context.Context) ([]*Ticket, error)
	AppendMessage(ctx context.Context, id string, msg TicketMessage) error
	UpdateStatus(ctx context.Context, id string, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
