package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewdesk/crewdesk/internal/authz"
	"github.com/crewdesk/crewdesk/internal/domain"
)

// MeetingService handles meeting scheduling and room-link generation
type MeetingService struct {
	meetingRepo domain.MeetingRepository
	notifier    domain.Notifier
	linkBaseURL string
}

// NewMeetingService creates a new meeting service
func NewMeetingService(meetingRepo domain.MeetingRepository, notifier domain.Notifier, linkBaseURL string) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		notifier:    notifier,
		linkBaseURL: linkBaseURL,
	}
}

// MeetingRequest contains the create/update params
type MeetingRequest struct {
	Title           string    `json:"title"`
	Agenda          string    `json:"agenda"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Participants    []string  `json:"participants"`
}

func (r MeetingRequest) validate() error {
	if r.Title == "" {
		return domain.Validationf("title is required")
	}
	if r.StartsAt.IsZero() {
		return domain.Validationf("starts_at is required")
	}
	if r.DurationMinutes <= 0 {
		return domain.Validationf("duration_minutes must be positive")
	}
	return nil
}

// Create schedules a meeting organized by the principal, mints a room link
// and invites the participants over the realtime channel.
func (s *MeetingService) Create(ctx context.Context, p domain.Principal, req MeetingRequest) (*domain.Meeting, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	code := uuid.NewString()
	meeting := &domain.Meeting{
		OrganizerID:     p.UserID,
		Title:           req.Title,
		Agenda:          req.Agenda,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Participants:    req.Participants,
		RoomCode:        code,
		JoinURL:         fmt.Sprintf("%s/%s", s.linkBaseURL, code),
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for _, participantID := range meeting.Participants {
			s.notifier.NotifyUser(participantID, "meeting_invite", meeting)
		}
	}

	return meeting, nil
}

// Get loads a meeting the principal may see (organizer, participant, admin).
func (s *MeetingService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireMember(p, meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

// List returns meetings the principal organizes or attends; admins see all.
func (s *MeetingService) List(ctx context.Context, p domain.Principal) ([]*domain.Meeting, error) {
	if p.IsAdmin() {
		return s.meetingRepo.ListAll(ctx)
	}
	return s.meetingRepo.ListForUser(ctx, p.UserID)
}

// Update rewrites a meeting. Participants can view but only the organizer
// (or an admin) can change it.
func (s *MeetingService) Update(ctx context.Context, p domain.Principal, id string, req MeetingRequest) (*domain.Meeting, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsOrganizer(p, meeting.OrganizerID) {
		return nil, domain.ErrForbidden
	}

	meeting.Title = req.Title
	meeting.Agenda = req.Agenda
	meeting.StartsAt = req.StartsAt
	meeting.DurationMinutes = req.DurationMinutes
	meeting.Participants = req.Participants

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for _, participantID := range meeting.Participants {
			s.notifier.NotifyUser(participantID, "meeting_updated", meeting)
		}
	}

	return meeting, nil
}

// Delete cancels a meeting. Organizer or admin only.
func (s *MeetingService) Delete(ctx context.Context, p domain.Principal, id string) error {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.IsOrganizer(p, meeting.OrganizerID) {
		return domain.ErrForbidden
	}

	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.notifier != nil {
		for _, participantID := range meeting.Participants {
			s.notifier.NotifyUser(participantID, "meeting_cancelled", meeting)
		}
	}
	return nil
}
