package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// In-memory repository fakes shared by the service tests. They implement
// just enough of the repository contracts to exercise the service logic,
// including the duplicate-key behavior the Mongo indexes provide.

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) GetByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memAttendanceRepo struct {
	recs   map[string]*domain.Attendance
	nextID int
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{recs: make(map[string]*domain.Attendance)}
}

func (r *memAttendanceRepo) Create(_ context.Context, rec *domain.Attendance) error {
	for _, existing := range r.recs {
		if existing.EmployeeID == rec.EmployeeID && existing.Date == rec.Date {
			return domain.ErrAlreadyCheckedIn
		}
	}
	r.nextID++
	rec.ID = fmt.Sprintf("att-%d", r.nextID)
	r.recs[rec.ID] = rec
	return nil
}

func (r *memAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID, date string) (*domain.Attendance, error) {
	for _, rec := range r.recs {
		if rec.EmployeeID == employeeID && rec.Date == date {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAttendanceRepo) SetCheckOut(_ context.Context, id string, at time.Time, status string) error {
	rec, ok := r.recs[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.CheckOut = &at
	rec.Status = status
	return nil
}

func (r *memAttendanceRepo) ListByEmployee(_ context.Context, employeeID, from, to string) ([]*domain.Attendance, error) {
	var out []*domain.Attendance
	for _, rec := range r.recs {
		if rec.EmployeeID != employeeID {
			continue
		}
		if from != "" && rec.Date < from {
			continue
		}
		if to != "" && rec.Date > to {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *memAttendanceRepo) ListByDate(_ context.Context, date string) ([]*domain.Attendance, error) {
	var out []*domain.Attendance
	for _, rec := range r.recs {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memAttendanceRepo) ListByRange(_ context.Context, from, to string) ([]*domain.Attendance, error) {
	var out []*domain.Attendance
	for _, rec := range r.recs {
		if rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memAttendanceRepo) CountByDate(_ context.Context, date string) (int64, error) {
	recs, _ := r.ListByDate(context.Background(), date)
	return int64(len(recs)), nil
}

type memPayrollRepo struct {
	slips  map[string]*domain.Payroll
	nextID int
}

func newMemPayrollRepo() *memPayrollRepo {
	return &memPayrollRepo{slips: make(map[string]*domain.Payroll)}
}

func (r *memPayrollRepo) Create(_ context.Context, slip *domain.Payroll) error {
	for _, existing := range r.slips {
		if existing.EmployeeID == slip.EmployeeID && existing.Month == slip.Month && existing.Year == slip.Year {
			return domain.ErrPayrollDuplicate
		}
	}
	r.nextID++
	slip.ID = fmt.Sprintf("slip-%d", r.nextID)
	r.slips[slip.ID] = slip
	return nil
}

func (r *memPayrollRepo) GetByID(_ context.Context, id string) (*domain.Payroll, error) {
	slip, ok := r.slips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slip, nil
}

func (r *memPayrollRepo) GetByPeriod(_ context.Context, employeeID string, month, year int) (*domain.Payroll, error) {
	for _, slip := range r.slips {
		if slip.EmployeeID == employeeID && slip.Month == month && slip.Year == year {
			return slip, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memPayrollRepo) Release(_ context.Context, id string, at time.Time) error {
	slip, ok := r.slips[id]
	if !ok {
		return domain.ErrNotFound
	}
	if slip.Status != domain.PayrollPending {
		return domain.ErrPayrollReleased
	}
	slip.Status = domain.PayrollReleased
	slip.ReleaseDate = &at
	return nil
}

func (r *memPayrollRepo) ListByEmployee(_ context.Context, employeeID string) ([]*domain.Payroll, error) {
	var out []*domain.Payroll
	for _, slip := range r.slips {
		if slip.EmployeeID == employeeID {
			out = append(out, slip)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) ListByPeriod(_ context.Context, month, year int) ([]*domain.Payroll, error) {
	var out []*domain.Payroll
	for _, slip := range r.slips {
		if month != 0 && slip.Month != month {
			continue
		}
		if year != 0 && slip.Year != year {
			continue
		}
		out = append(out, slip)
	}
	return out, nil
}

func (r *memPayrollRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, slip := range r.slips {
		if slip.Status == status {
			n++
		}
	}
	return n, nil
}

type memTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Return a copy so callers mutating the result don't alias the store,
	// matching what a real decode from Mongo gives back.
	cp := *t
	cp.Messages = append([]domain.TicketMessage(nil), t.Messages...)
	return &cp, nil
}

func (r *memTicketRepo) ListByEmployee(_ context.Context, employeeID string) ([]*domain.Ticket, error) {
	var out []*domain.Ticket
	for _, t := range r.tickets {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ListAll(_ context.Context) ([]*domain.Ticket, error) {
	out := make([]*domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTicketRepo) AppendMessage(_ context.Context, id string, msg domain.TicketMessage) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Messages = append(t.Messages, msg)
	return nil
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id string, status string) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *memTicketRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

type memMeetingRepo struct {
	meetings map[string]*domain.Meeting
	nextID   int
}

func newMemMeetingRepo() *memMeetingRepo {
	return &memMeetingRepo{meetings: make(map[string]*domain.Meeting)}
}

func (r *memMeetingRepo) Create(_ context.Context, meeting *domain.Meeting) error {
	r.nextID++
	meeting.ID = fmt.Sprintf("meeting-%d", r.nextID)
	r.meetings[meeting.ID] = meeting
	return nil
}

func (r *memMeetingRepo) GetByID(_ context.Context, id string) (*domain.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	cp.Participants = append([]string(nil), m.Participants...)
	return &cp, nil
}

func (r *memMeetingRepo) Update(_ context.Context, meeting *domain.Meeting) error {
	if _, ok := r.meetings[meeting.ID]; !ok {
		return domain.ErrNotFound
	}
	r.meetings[meeting.ID] = meeting
	return nil
}

func (r *memMeetingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.meetings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.meetings, id)
	return nil
}

func (r *memMeetingRepo) ListForUser(_ context.Context, userID string) ([]*domain.Meeting, error) {
	var out []*domain.Meeting
	for _, m := range r.meetings {
		if m.OrganizerID == userID {
			out = append(out, m)
			continue
		}
		for _, p := range m.Participants {
			if p == userID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (r *memMeetingRepo) ListAll(_ context.Context) ([]*domain.Meeting, error) {
	out := make([]*domain.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m)
	}
	return out, nil
}

func (r *memMeetingRepo) CountOnDate(_ context.Context, dayStart, dayEnd time.Time) (int64, error) {
	var n int64
	for _, m := range r.meetings {
		if !m.StartsAt.Before(dayStart) && m.StartsAt.Before(dayEnd) {
			n++
		}
	}
	return n, nil
}

// recordingNotifier captures realtime pushes for assertions.
type recordingNotifier struct {
	userEvents []recordedEvent
	roleEvents []recordedEvent
}

type recordedEvent struct {
	Target  string
	Event   string
	Payload any
}

func (n *recordingNotifier) NotifyUser(userID, event string, payload any) {
	n.userEvents = append(n.userEvents, recordedEvent{Target: userID, Event: event, Payload: payload})
}

func (n *recordingNotifier) NotifyRole(role, event string, payload any) {
	n.roleEvents = append(n.roleEvents, recordedEvent{Target: role, Event: event, Payload: payload})
}
