package timesheet

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
)

const testJWTSecret = "test-secret-key-for-jwt"

var testTokenAuth = jwtauth.New("HS256", []byte(testJWTSecret), nil)

// authedContext builds a context carrying verified JWT claims, the same shape
// the Verifier middleware produces for handlers.
func authedContext(t *testing.T, email, companyID string, permission user.Permission) context.Context {
	t.Helper()
	tok, _, err := testTokenAuth.Encode(map[string]interface{}{
		"email":      email,
		"company_id": companyID,
		"permission": int(permission),
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

// memTimestampRepo is an in-memory TimestampRepository for service tests.
type memTimestampRepo struct {
	mu      sync.Mutex
	entries map[string]timesheet.TimeStamp
}

func newMemTimestampRepo() *memTimestampRepo {
	return &memTimestampRepo{entries: make(map[string]timesheet.TimeStamp)}
}

func (r *memTimestampRepo) Create(_ context.Context, ts timesheet.TimeStamp) (timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[ts.ID] = ts
	return ts, nil
}

func (r *memTimestampRepo) GetByID(_ context.Context, id string) (timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.entries[id]
	if !ok {
		return timesheet.TimeStamp{}, timesheet.ErrTimestampNotFound
	}
	return ts, nil
}

func (r *memTimestampRepo) Update(_ context.Context, ts timesheet.TimeStamp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[ts.ID]; !ok {
		return timesheet.ErrTimestampNotFound
	}
	r.entries[ts.ID] = ts
	return nil
}

func (r *memTimestampRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return timesheet.ErrTimestampNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memTimestampRepo) GetRange(_ context.Context, userEmail string, start, end time.Time) ([]timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *memTimestampRepo) GetOpenEntry(_ context.Context, userEmail string, start, end time.Time) (*timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []timesheet.TimeStamp
	for _, ts := range r.entries {
		if ts.UserEmail != userEmail || ts.PunchOut != nil {
			continue
		}
		if ts.PunchIn.Before(start) || ts.PunchIn.After(end) {
			continue
		}
		open = append(open, ts)
	}
	if len(open) == 0 {
		return nil, nil
	}
	sort.Slice(open, func(i, j int) bool { return open[i].PunchIn.After(open[j].PunchIn) })
	latest := open[0]
	return &latest, nil
}

func (r *memTimestampRepo) GetAll(_ context.Context) ([]timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]timesheet.TimeStamp, 0, len(r.entries))
	for _, ts := range r.entries {
		out = append(out, ts)
	}
	return out, nil
}

func (r *memTimestampRepo) GetStaleOpenEntries(_ context.Context, cutoff time.Time) ([]timesheet.TimeStamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []timesheet.TimeStamp
	for _, ts := range r.entries {
		if ts.PunchOut == nil && ts.PunchIn.Before(cutoff) {
			out = append(out, ts)
		}
	}
	return out, nil
}

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newMemUserRepo(users ...user.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = u
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, email string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	r.users[email] = u
	return nil
}

func (r *memUserRepo) ListByCompany(_ context.Context, companyID string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func testEmployee(email, companyID string) user.User {
	return user.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "Employee",
		CompanyID:    companyID,
		Role:         "engineer",
		Permission:   user.PermissionEmployee,
		IsActive:     true,
		WorkCapacity: 8.0,
		// no rest days so punch tests behave the same on any weekday
		WeekendChoice: []string{},
	}
}

// earlierToday returns a punch-in time d before now, clamped to today's UTC
// midnight so seeded entries always land inside the current day window.
func earlierToday(d time.Duration) time.Time {
	now := time.Now().UTC()
	p := now.Add(-d)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if p.Before(dayStart) {
		p = dayStart
	}
	return p
}

func seedOpenEntry(t *testing.T, repo *memTimestampRepo, email string, punchIn time.Time) timesheet.TimeStamp {
	t.Helper()
	ts, err := repo.Create(context.Background(), timesheet.TimeStamp{
		ID:            "open-" + email,
		UserEmail:     email,
		EnteredBy:     email,
		PunchType:     timesheet.PunchTypeClock,
		PunchIn:       punchIn,
		ReportingType: timesheet.ReportingWork,
		LastUpdate:    punchIn,
	})
	require.NoError(t, err)
	return ts
}

func TestTimesheetService_PunchIn_Success(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.UserEmail)
	assert.Equal(t, "alice@example.com", resp.EnteredBy)
	assert.Equal(t, "work", resp.ReportingType)
	assert.Nil(t, resp.PunchOut)
	assert.NotEmpty(t, resp.ID)
}

func TestTimesheetService_PunchIn_AlreadyPunchedIn(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)
	seedOpenEntry(t, tsRepo, "alice@example.com", earlierToday(time.Hour))

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "alice@example.com"})

	assert.ErrorIs(t, err, timesheet.ErrAlreadyPunchedIn)
}

func TestTimesheetService_PunchIn_RestDayBlocked(t *testing.T) {
	t.Parallel()

	restDay := testEmployee("alice@example.com", "company-1")
	restDay.WeekendChoice = []string{strings.ToLower(time.Now().UTC().Weekday().String())}

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(restDay)
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "alice@example.com"})

	assert.ErrorIs(t, err, timesheet.ErrRestDayPunchIn)
}

func TestTimesheetService_PunchIn_DeactivatedUser(t *testing.T) {
	t.Parallel()

	inactive := testEmployee("alice@example.com", "company-1")
	inactive.IsActive = false

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(inactive)
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "alice@example.com"})

	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestTimesheetService_PunchIn_CrossUserForbidden(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(
		testEmployee("alice@example.com", "company-1"),
		testEmployee("bob@example.com", "company-1"),
	)
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "bob@example.com"})

	assert.ErrorIs(t, err, timesheet.ErrUnauthorized)
}

func TestTimesheetService_PunchIn_EmployerForOwnCompany(t *testing.T) {
	t.Parallel()

	employer := testEmployee("boss@example.com", "company-1")
	employer.Permission = user.PermissionEmployer

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(employer, testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "boss@example.com", "company-1", user.PermissionEmployer)
	resp, err := svc.PunchIn(ctx, timesheet.PunchInRequest{UserEmail: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.UserEmail)
	assert.Equal(t, "boss@example.com", resp.EnteredBy)
}

func TestTimesheetService_PunchOut_Success(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	punchIn := earlierToday(time.Hour)
	seeded := seedOpenEntry(t, tsRepo, "alice@example.com", punchIn)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.PunchOut(ctx, timesheet.PunchOutRequest{UserEmail: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, resp.ID)
	require.NotNil(t, resp.PunchOut)
	elapsed := time.Now().UTC().Sub(punchIn).Seconds()
	assert.InDelta(t, elapsed, float64(resp.TotalWorkSeconds), 5)

	stored, err := tsRepo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.PunchOut)
}

func TestTimesheetService_PunchOut_NoOpenEntry(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.PunchOut(ctx, timesheet.PunchOutRequest{UserEmail: "alice@example.com"})

	assert.ErrorIs(t, err, timesheet.ErrNoOpenEntry)
}

func TestTimesheetService_PunchOut_OverridesReportingType(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)
	seedOpenEntry(t, tsRepo, "alice@example.com", earlierToday(2*time.Hour))

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.PunchOut(ctx, timesheet.PunchOutRequest{
		UserEmail:     "alice@example.com",
		ReportingType: "paid_leave",
		Detail:        "half day leave",
	})

	require.NoError(t, err)
	assert.Equal(t, "paid_leave", resp.ReportingType)
	assert.Equal(t, "half day leave", resp.Detail)
}

func TestTimesheetService_CheckPunchStatus(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)
	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)

	punchedIn, err := svc.CheckPunchStatus(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, punchedIn)

	seedOpenEntry(t, tsRepo, "alice@example.com", earlierToday(time.Minute))

	punchedIn, err = svc.CheckPunchStatus(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, punchedIn)
}

func TestTimesheetService_CreateTimestamp_ClosedEntry(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	punchIn := "2024-04-01T09:00:00Z"
	punchOut := "2024-04-01T17:30:00Z"
	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.CreateTimestamp(ctx, timesheet.CreateTimestampRequest{
		UserEmail:     "alice@example.com",
		PunchType:     int(timesheet.PunchTypeManual),
		PunchIn:       &punchIn,
		PunchOut:      &punchOut,
		ReportingType: "work",
		Detail:        "forgot to clock in",
	})

	require.NoError(t, err)
	assert.Equal(t, punchIn, resp.PunchIn)
	require.NotNil(t, resp.PunchOut)
	assert.Equal(t, punchOut, *resp.PunchOut)
	assert.Equal(t, int64(8*3600+1800), resp.TotalWorkSeconds)
}

func TestTimesheetService_CreateTimestamp_PunchOrderViolation(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	punchIn := "2024-04-01T17:00:00Z"
	punchOut := "2024-04-01T09:00:00Z"
	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.CreateTimestamp(ctx, timesheet.CreateTimestampRequest{
		UserEmail:     "alice@example.com",
		PunchType:     int(timesheet.PunchTypeManual),
		PunchIn:       &punchIn,
		PunchOut:      &punchOut,
		ReportingType: "work",
	})

	assert.ErrorIs(t, err, timesheet.ErrPunchOrder)
}

func TestTimesheetService_EditTimestamp_RecomputesTotal(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	in := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	out := time.Date(2024, 4, 1, 17, 0, 0, 0, time.UTC)
	_, err := tsRepo.Create(context.Background(), timesheet.TimeStamp{
		ID:               "3f1d3f86-9d3c-4a07-9e2a-52b0ad07a0f1",
		UserEmail:        "alice@example.com",
		EnteredBy:        "alice@example.com",
		PunchType:        timesheet.PunchTypeClock,
		PunchIn:          in,
		PunchOut:         &out,
		ReportingType:    timesheet.ReportingWork,
		TotalWorkSeconds: 8 * 3600,
		LastUpdate:       out,
	})
	require.NoError(t, err)

	newOut := "2024-04-01T18:00:00Z"
	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	resp, err := svc.EditTimestamp(ctx, timesheet.EditTimestampRequest{
		ID:       "3f1d3f86-9d3c-4a07-9e2a-52b0ad07a0f1",
		PunchOut: &newOut,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9*3600), resp.TotalWorkSeconds)
	assert.Equal(t, "alice@example.com", resp.EnteredBy)
}

func TestTimesheetService_DeleteTimestamp(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)
	seeded := seedOpenEntry(t, tsRepo, "alice@example.com", earlierToday(time.Hour))

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	require.NoError(t, svc.DeleteTimestamp(ctx, seeded.ID))

	err := svc.DeleteTimestamp(ctx, seeded.ID)
	assert.ErrorIs(t, err, timesheet.ErrTimestampNotFound)
}

func TestTimesheetService_GetTimestampsRange(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)

	inRange := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	seedOpenEntry(t, tsRepo, "alice@example.com", inRange)
	_, err := tsRepo.Create(context.Background(), timesheet.TimeStamp{
		ID:            "later-entry",
		UserEmail:     "alice@example.com",
		PunchType:     timesheet.PunchTypeClock,
		PunchIn:       outOfRange,
		ReportingType: timesheet.ReportingWork,
	})
	require.NoError(t, err)

	ctx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	entries, err := svc.GetTimestampsRange(ctx, timesheet.RangeFilter{
		UserEmail: "alice@example.com",
		StartDate: "2024-04-01",
		EndDate:   "2024-04-30",
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-04-10T09:00:00Z", entries[0].PunchIn)
}

func TestTimesheetService_GetAllTimestamps_NetAdminOnly(t *testing.T) {
	t.Parallel()

	tsRepo := newMemTimestampRepo()
	userRepo := newMemUserRepo(testEmployee("alice@example.com", "company-1"))
	svc := NewTimesheetService(nil, tsRepo, userRepo)
	seedOpenEntry(t, tsRepo, "alice@example.com", earlierToday(time.Hour))

	employeeCtx := authedContext(t, "alice@example.com", "company-1", user.PermissionEmployee)
	_, err := svc.GetAllTimestamps(employeeCtx)
	assert.ErrorIs(t, err, timesheet.ErrUnauthorized)

	adminCtx := authedContext(t, "admin@example.com", "", user.PermissionNetAdmin)
	entries, err := svc.GetAllTimestamps(adminCtx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
