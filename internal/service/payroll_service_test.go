package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/domain"
)

func seedEmployee(t *testing.T, users *memUserRepo) *domain.User {
	t.Helper()
	u := &domain.User{Email: "emp@crewdesk.io", Name: "Emp", Role: domain.RoleEmployee, Active: true}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestPayrollCreate(t *testing.T) {
	users := newMemUserRepo()
	emp := seedEmployee(t, users)
	svc := NewPayrollService(newMemPayrollRepo(), users, nil, nil)

	slip, err := svc.Create(context.Background(), CreateRequest{
		EmployeeID: emp.ID,
		Month:      8,
		Year:       2026,
		Basic:      5000,
		Allowances: 800,
		Deductions: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollPending, slip.Status)
	assert.InDelta(t, 5500.0, slip.Net, 0.001)
	assert.Nil(t, slip.ReleaseDate)
}

func TestPayrollCreateValidation(t *testing.T) {
	users := newMemUserRepo()
	emp := seedEmployee(t, users)
	svc := NewPayrollService(newMemPayrollRepo(), users, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"month too small", CreateRequest{EmployeeID: emp.ID, Month: 0, Year: 2026, Basic: 1}},
		{"month too large", CreateRequest{EmployeeID: emp.ID, Month: 13, Year: 2026, Basic: 1}},
		{"year out of range", CreateRequest{EmployeeID: emp.ID, Month: 1, Year: 1999, Basic: 1}},
		{"negative basic", CreateRequest{EmployeeID: emp.ID, Month: 1, Year: 2026, Basic: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			var vErr domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{EmployeeID: "nope", Month: 1, Year: 2026, Basic: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPayrollDuplicatePeriod(t *testing.T) {
	users := newMemUserRepo()
	emp := seedEmployee(t, users)
	svc := NewPayrollService(newMemPayrollRepo(), users, nil, nil)
	ctx := context.Background()

	req := CreateRequest{EmployeeID: emp.ID, Month: 8, Year: 2026, Basic: 5000}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrPayrollDuplicate)
}

func TestPayrollRelease(t *testing.T) {
	users := newMemUserRepo()
	emp := seedEmployee(t, users)
	notifier := &recordingNotifier{}
	svc := NewPayrollService(newMemPayrollRepo(), users, nil, notifier)
	ctx := context.Background()

	slip, err := svc.Create(ctx, CreateRequest{EmployeeID: emp.ID, Month: 8, Year: 2026, Basic: 5000})
	require.NoError(t, err)

	released, err := svc.Release(ctx, slip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PayrollReleased, released.Status)
	require.NotNil(t, released.ReleaseDate)

	// The employee is told over the realtime channel.
	require.Len(t, notifier.userEvents, 1)
	assert.Equal(t, emp.ID, notifier.userEvents[0].Target)
	assert.Equal(t, "payroll_released", notifier.userEvents[0].Event)

	// Releasing twice fails and keeps the original release date.
	_, err = svc.Release(ctx, slip.ID)
	assert.ErrorIs(t, err, domain.ErrPayrollReleased)
}

func TestPayrollReleaseUnknownID(t *testing.T) {
	users := newMemUserRepo()
	svc := NewPayrollService(newMemPayrollRepo(), users, nil, nil)

	_, err := svc.Release(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
