package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

var calendarTokenAuth = jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)

func calendarContext(t *testing.T, email, companyID string, permission user.Permission) context.Context {
	t.Helper()
	tok, _, err := calendarTokenAuth.Encode(map[string]interface{}{
		"email":      email,
		"company_id": companyID,
		"permission": int(permission),
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type stubTimestampRepo struct {
	timesheet.TimestampRepository
	entries []timesheet.TimeStamp
}

func (r *stubTimestampRepo) GetRange(_ context.Context, userEmail string, start, end time.Time) ([]timesheet.TimeStamp, error) {
	var out []timesheet.TimeStamp
	for _, ts := range r.entries {
		if ts.UserEmail != userEmail {
			continue
		}
		if ts.PunchIn.Before(start) || ts.PunchIn.After(end) {
			continue
		}
		out = append(out, ts)
	}
	return out, nil
}

type stubUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func calendarEmployee(email, companyID string) user.User {
	return user.User{
		Email:         email,
		FirstName:     "Test",
		LastName:      "Employee",
		CompanyID:     companyID,
		Permission:    user.PermissionEmployee,
		IsActive:      true,
		WorkCapacity:  8.0,
		WeekendChoice: []string{"saturday", "sunday"},
	}
}

func workEntry(email string, punchIn time.Time, workSeconds int64) timesheet.TimeStamp {
	out := punchIn.Add(time.Duration(workSeconds) * time.Second)
	return timesheet.TimeStamp{
		ID:               email + punchIn.Format(time.RFC3339),
		UserEmail:        email,
		EnteredBy:        email,
		PunchType:        timesheet.PunchTypeClock,
		PunchIn:          punchIn,
		PunchOut:         &out,
		ReportingType:    timesheet.ReportingWork,
		TotalWorkSeconds: workSeconds,
		LastUpdate:       out,
	}
}

func TestCalendarService_BuildMonthCalendar(t *testing.T) {
	t.Parallel()

	alice := calendarEmployee("alice@example.com", "company-1")
	userRepo := &stubUserRepo{users: map[string]user.User{alice.Email: alice}}
	tsRepo := &stubTimestampRepo{entries: []timesheet.TimeStamp{
		workEntry("alice@example.com", time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), 8*3600),
		workEntry("alice@example.com", time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), 4*3600),
	}}
	svc := NewCalendarService(nil, tsRepo, userRepo)

	ctx := calendarContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.BuildMonthCalendar(ctx, &calendar.MonthRequest{
		UserEmail: "alice@example.com",
		Year:      2024,
		Month:     4,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.UserEmail)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 4, resp.Month)
	assert.Equal(t, "April", resp.MonthName)
	// April 1 2024 is a Monday, so the month fits in five week rows
	require.Len(t, resp.Weeks, 5)

	monday := resp.Weeks[0]["monday"]
	assert.Equal(t, 1, monday.Day)
	assert.Equal(t, "work", monday.Classification)
	assert.Equal(t, int64(8*3600), monday.TotalSeconds)

	assert.Equal(t, int64(12*3600), resp.MonthTotalSeconds)
	assert.Equal(t, "12:00", resp.MonthTotal)
}

func TestCalendarService_BuildMonthCalendar_CrossUserDenied(t *testing.T) {
	t.Parallel()

	alice := calendarEmployee("alice@example.com", "company-1")
	userRepo := &stubUserRepo{users: map[string]user.User{alice.Email: alice}}
	svc := NewCalendarService(nil, &stubTimestampRepo{}, userRepo)

	ctx := calendarContext(t, "bob@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.BuildMonthCalendar(ctx, &calendar.MonthRequest{
		UserEmail: "alice@example.com",
		Year:      2024,
		Month:     4,
	})

	assert.ErrorIs(t, err, user.ErrUnauthorized)
}

func TestCalendarService_BuildMonthCalendar_EmployerSameCompany(t *testing.T) {
	t.Parallel()

	alice := calendarEmployee("alice@example.com", "company-1")
	userRepo := &stubUserRepo{users: map[string]user.User{alice.Email: alice}}
	svc := NewCalendarService(nil, &stubTimestampRepo{}, userRepo)

	ctx := calendarContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	resp, err := svc.BuildMonthCalendar(ctx, &calendar.MonthRequest{
		UserEmail: "alice@example.com",
		Year:      2024,
		Month:     4,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.UserEmail)
}

func TestCalendarService_BuildMonthCalendar_InvalidRequest(t *testing.T) {
	t.Parallel()

	svc := NewCalendarService(nil, &stubTimestampRepo{}, &stubUserRepo{users: map[string]user.User{}})

	ctx := calendarContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.BuildMonthCalendar(ctx, &calendar.MonthRequest{
		UserEmail: "alice@example.com",
		Year:      2024,
		Month:     13,
	})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestCalendarService_SessionsIsolatedPerViewer(t *testing.T) {
	t.Parallel()

	alice := calendarEmployee("alice@example.com", "company-1")
	bob := calendarEmployee("bob@example.com", "company-1")
	userRepo := &stubUserRepo{users: map[string]user.User{alice.Email: alice, bob.Email: bob}}
	svc := NewCalendarService(nil, &stubTimestampRepo{}, userRepo)

	aliceCtx := calendarContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	bobCtx := calendarContext(t, "bob@example.com", "company-1", user.PermissionEmployee)

	// interleaved viewers must not invalidate each other's selections
	_, err := svc.BuildMonthCalendar(aliceCtx, &calendar.MonthRequest{UserEmail: "alice@example.com", Year: 2024, Month: 4})
	require.NoError(t, err)
	_, err = svc.BuildMonthCalendar(bobCtx, &calendar.MonthRequest{UserEmail: "bob@example.com", Year: 2024, Month: 5})
	require.NoError(t, err)
	_, err = svc.BuildMonthCalendar(aliceCtx, &calendar.MonthRequest{UserEmail: "alice@example.com", Year: 2024, Month: 6})
	require.NoError(t, err)
}
