package service

import (
	"context"
	"time"

	"github.com/crewdesk/crewdesk/internal/authz"
	"github.com/crewdesk/crewdesk/internal/domain"
)

// TicketService handles helpdesk tickets and their message threads
type TicketService struct {
	ticketRepo domain.TicketRepository
	cache      domain.CacheRepository
	notifier   domain.Notifier
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo domain.TicketRepository, cache domain.CacheRepository, notifier domain.Notifier) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		cache:      cache,
		notifier:   notifier,
	}
}

// Create opens a ticket owned by the calling principal and pings admins.
func (s *TicketService) Create(ctx context.Context, p domain.Principal, subject, description, priority string) (*domain.Ticket, error) {
	if subject == "" {
		return nil, domain.Validationf("subject is required")
	}
	switch priority {
	case "":
		priority = domain.PriorityMedium
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		return nil, domain.Validationf("invalid priority %q", priority)
	}

	ticket := &domain.Ticket{
		EmployeeID:  p.UserID,
		Subject:     subject,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketOpen,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}
	if s.notifier != nil {
		s.notifier.NotifyRole(domain.RoleAdmin, "ticket_created", ticket)
	}

	return ticket, nil
}

// Get loads a ticket the principal is allowed to see.
func (s *TicketService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireMember(p, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns the principal's own tickets, or every ticket for admins.
func (s *TicketService) List(ctx context.Context, p domain.Principal) ([]*domain.Ticket, error) {
	if p.IsAdmin() {
		return s.ticketRepo.ListAll(ctx)
	}
	return s.ticketRepo.ListByEmployee(ctx, p.UserID)
}

// AddMessage appends to the ticket thread and notifies the other party:
// the owner's messages go to admins, an admin's reply goes to the owner.
func (s *TicketService) AddMessage(ctx context.Context, p domain.Principal, id, senderName, body string) (*domain.Ticket, error) {
	if body == "" {
		return nil, domain.Validationf("message body is required")
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireMember(p, ticket); err != nil {
		return nil, err
	}

	msg := domain.TicketMessage{
		SenderID:   p.UserID,
		SenderName: senderName,
		Body:       body,
		SentAt:     time.Now(),
	}
	if err := s.ticketRepo.AppendMessage(ctx, id, msg); err != nil {
		return nil, err
	}
	ticket.Messages = append(ticket.Messages, msg)

	if s.notifier != nil {
		payload := map[string]any{"ticket_id": id, "message": msg}
		if p.UserID == ticket.EmployeeID {
			s.notifier.NotifyRole(domain.RoleAdmin, "ticket_message", payload)
		} else {
			s.notifier.NotifyUser(ticket.EmployeeID, "ticket_message", payload)
		}
	}

	return ticket, nil
}

// UpdateStatus moves a ticket through its lifecycle (admin route) and tells
// the owner.
func (s *TicketService) UpdateStatus(ctx context.Context, id, status string) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(status) {
		return nil, domain.Validationf("invalid ticket status %q", status)
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(ticket.EmployeeID, "ticket_status", ticket)
	}

	return ticket, nil
}
