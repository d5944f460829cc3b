package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/domain"
)

func TestCheckInOnce(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := NewAttendanceService(repo, nil)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", rec.EmployeeID)
	assert.Equal(t, domain.AttendancePresent, rec.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), rec.Date)
	assert.Nil(t, rec.CheckOut)
}

func TestDoubleCheckInRejected(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := NewAttendanceService(repo, nil)
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "emp-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)

	// The first record is untouched.
	stored, err := repo.GetByEmployeeAndDate(ctx, "emp-1", first.Date)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.CheckIn, stored.CheckIn)

	// A different employee still checks in fine.
	_, err = svc.CheckIn(ctx, "emp-2")
	assert.NoError(t, err)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := NewAttendanceService(newMemAttendanceRepo(), nil)

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, domain.ErrNotCheckedIn)
}

func TestCheckOutHalfDay(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := NewAttendanceService(repo, nil)
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, "emp-1")
	require.NoError(t, err)

	// Checking out right after checking in means under four hours worked.
	out, err := svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceHalfDay, out.Status)
	require.NotNil(t, out.CheckOut)

	// A second check-out is rejected.
	_, err = svc.CheckOut(ctx, "emp-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedOut)

	_ = rec
}

func TestCheckOutFullDay(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := NewAttendanceService(repo, nil)
	ctx := context.Background()

	today := time.Now().Format("2006-01-02")
	rec := &domain.Attendance{
		EmployeeID: "emp-1",
		Date:       today,
		CheckIn:    time.Now().Add(-9 * time.Hour),
		Status:     domain.AttendancePresent,
	}
	require.NoError(t, repo.Create(ctx, rec))

	out, err := svc.CheckOut(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AttendancePresent, out.Status)
}

func TestHistoryRejectsBadDates(t *testing.T) {
	svc := NewAttendanceService(newMemAttendanceRepo(), nil)

	_, err := svc.History(context.Background(), "emp-1", "01-02-2026", "")
	var vErr domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestRangeRequiresBounds(t *testing.T) {
	svc := NewAttendanceService(newMemAttendanceRepo(), nil)

	_, err := svc.Range(context.Background(), "2026-08-01", "")
	var vErr domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
