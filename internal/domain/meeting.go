package domain

import (
	"context"
	"time"
)

// Meeting is a scheduled call with an organizer and a participant list.
type Meeting struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	OrganizerID     string    `bson:"organizer_id" json:"organizer_id"`
	Title           string    `bson:"title" json:"title"`
	Agenda          string    `bson:"agenda" json:"agenda"`
	StartsAt        time.Time `bson:"starts_at" json:"starts_at"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Participants    []string  `bson:"participants" json:"participants"`
	RoomCode        string    `bson:"room_code" json:"room_code"`
	JoinURL         string    `bson:"join_url" json:"join_url"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// MemberIDs implements Owned: participants plus the organizer may view.
// Mutation is restricted further to the organizer (handlers enforce that).
func (m *Meeting) MemberIDs() []string {
	return append([]string{m.OrganizerID}, m.Participants...)
}

// MeetingRepository defines meeting persistence operations
type MeetingRepository interface {
	Create(ctx context.Context, meeting *Meeting) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*Meeting, error)
	ListAll(ctx context.Context) ([]*Meeting, error)
	CountOnDate(ctx context.Context, dayStart, dayEnd time.Time) (int64, error)
}
