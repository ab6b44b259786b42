package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.TimestampRepository
	user.UserRepository
}

func NewTimesheetService(db *database.DB, tsRepo timesheet.TimestampRepository, userRepo user.UserRepository) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:                  db,
		TimestampRepository: tsRepo,
		UserRepository:      userRepo,
	}
}

// actor is the authenticated caller extracted from the JWT claims.
type actor struct {
	Email      string
	CompanyID  string
	Permission user.Permission
}

func actorFromContext(ctx context.Context) (actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return actor{}, fmt.Errorf("email claim is missing or invalid")
	}

	companyID, _ := claims["company_id"].(string)

	permission, ok := user.PermissionFromClaim(claims["permission"])
	if !ok {
		return actor{}, user.ErrInvalidPermission
	}

	return actor{Email: email, CompanyID: companyID, Permission: permission}, nil
}

// authorizeTarget checks that the actor may act on the target user's data.
// Employees only touch their own records; employers reach anyone inside
// their company; net admins reach everyone.
func (s *TimesheetServiceImpl) authorizeTarget(ctx context.Context, a actor, targetEmail string) (user.User, error) {
	target, err := s.UserRepository.GetByEmail(ctx, targetEmail)
	if err != nil {
		return user.User{}, err
	}

	switch {
	case a.Permission.IsNetAdmin():
		return target, nil
	case a.Permission.IsEmployer() && a.CompanyID == target.CompanyID:
		return target, nil
	case a.Email == target.Email:
		return target, nil
	}
	return user.User{}, timesheet.ErrUnauthorized
}

// dayBounds returns the UTC midnight-to-midnight window containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

// PunchIn implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) PunchIn(ctx context.Context, req timesheet.PunchInRequest) (timesheet.TimestampResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimestampResponse{}, err
	}

	a, err := actorFromContext(ctx)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	target, err := s.authorizeTarget(ctx, a, req.UserEmail)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}
	if !target.IsActive {
		return timesheet.TimestampResponse{}, user.ErrUserInactive
	}

	now := time.Now().UTC()
	if calendar.IsRestDay(now.Weekday(), target.WeekendChoice) {
		return timesheet.TimestampResponse{}, timesheet.ErrRestDayPunchIn
	}

	dayStart, dayEnd := dayBounds(now)
	open, err := s.TimestampRepository.GetOpenEntry(ctx, target.Email, dayStart, dayEnd)
	if err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to check for open entry: %w", err)
	}
	if open != nil {
		return timesheet.TimestampResponse{}, timesheet.ErrAlreadyPunchedIn
	}

	created, err := s.TimestampRepository.Create(ctx, timesheet.TimeStamp{
		ID:            uuid.NewString(),
		UserEmail:     target.Email,
		EnteredBy:     a.Email,
		PunchType:     timesheet.PunchTypeClock,
		PunchIn:       now,
		ReportingType: timesheet.ReportingWork,
		Detail:        req.Detail,
		LastUpdate:    now,
	})
	if err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to create punch-in entry: %w", err)
	}
	return timesheet.NewTimestampResponse(created), nil
}

// PunchOut implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) PunchOut(ctx context.Context, req timesheet.PunchOutRequest) (timesheet.TimestampResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimestampResponse{}, err
	}

	a, err := actorFromContext(ctx)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	target, err := s.authorizeTarget(ctx, a, req.UserEmail)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	now := time.Now().UTC()
	dayStart, dayEnd := dayBounds(now)
	open, err := s.TimestampRepository.GetOpenEntry(ctx, target.Email, dayStart, dayEnd)
	if err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to look up open entry: %w", err)
	}
	if open == nil {
		return timesheet.TimestampResponse{}, timesheet.ErrNoOpenEntry
	}

	if !now.After(open.PunchIn) {
		return timesheet.TimestampResponse{}, timesheet.ErrPunchOrder
	}

	reportingType := timesheet.ReportingWork
	if req.ReportingType != "" {
		reportingType, err = timesheet.ParseReportingType(req.ReportingType)
		if err != nil {
			return timesheet.TimestampResponse{}, err
		}
	}

	open.PunchOut = &now
	open.ReportingType = reportingType
	open.TotalWorkSeconds = int64(now.Sub(open.PunchIn).Seconds())
	open.LastUpdate = now
	open.EnteredBy = a.Email
	if req.Detail != "" {
		open.Detail = req.Detail
	}

	if err := s.TimestampRepository.Update(ctx, *open); err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to close entry: %w", err)
	}
	return timesheet.NewTimestampResponse(*open), nil
}

// CheckPunchStatus implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CheckPunchStatus(ctx context.Context, userEmail string) (bool, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return false, err
	}

	target, err := s.authorizeTarget(ctx, a, userEmail)
	if err != nil {
		return false, err
	}

	dayStart, dayEnd := dayBounds(time.Now())
	open, err := s.TimestampRepository.GetOpenEntry(ctx, target.Email, dayStart, dayEnd)
	if err != nil {
		return false, fmt.Errorf("failed to check punch status: %w", err)
	}
	return open != nil, nil
}

// CreateTimestamp implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CreateTimestamp(ctx context.Context, req timesheet.CreateTimestampRequest) (timesheet.TimestampResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimestampResponse{}, err
	}

	a, err := actorFromContext(ctx)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	target, err := s.authorizeTarget(ctx, a, req.UserEmail)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	now := time.Now().UTC()
	reportingType, err := timesheet.ParseReportingType(req.ReportingType)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	punchIn := now
	if req.PunchIn != nil {
		punchIn, _ = time.Parse(time.RFC3339, *req.PunchIn)
		punchIn = punchIn.UTC()
	}

	ts := timesheet.TimeStamp{
		ID:            uuid.NewString(),
		UserEmail:     target.Email,
		EnteredBy:     a.Email,
		PunchType:     timesheet.PunchType(req.PunchType),
		PunchIn:       punchIn,
		ReportingType: reportingType,
		Detail:        req.Detail,
		LastUpdate:    now,
	}

	if req.PunchOut != nil {
		punchOut, _ := time.Parse(time.RFC3339, *req.PunchOut)
		punchOut = punchOut.UTC()
		if !punchOut.After(punchIn) {
			return timesheet.TimestampResponse{}, timesheet.ErrPunchOrder
		}
		ts.PunchOut = &punchOut
		ts.TotalWorkSeconds = int64(punchOut.Sub(punchIn).Seconds())
	}

	created, err := s.TimestampRepository.Create(ctx, ts)
	if err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to create manual entry: %w", err)
	}
	return timesheet.NewTimestampResponse(created), nil
}

// EditTimestamp implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) EditTimestamp(ctx context.Context, req timesheet.EditTimestampRequest) (timesheet.TimestampResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimestampResponse{}, err
	}

	a, err := actorFromContext(ctx)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	ts, err := s.TimestampRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.TimestampResponse{}, err
	}

	if _, err := s.authorizeTarget(ctx, a, ts.UserEmail); err != nil {
		return timesheet.TimestampResponse{}, err
	}

	if req.PunchIn != nil {
		punchIn, _ := time.Parse(time.RFC3339, *req.PunchIn)
		ts.PunchIn = punchIn.UTC()
	}
	if req.PunchOut != nil {
		punchOut, _ := time.Parse(time.RFC3339, *req.PunchOut)
		punchOut = punchOut.UTC()
		ts.PunchOut = &punchOut
	}
	if req.PunchType != nil {
		ts.PunchType = timesheet.PunchType(*req.PunchType)
	}
	if req.ReportingType != nil {
		reportingType, err := timesheet.ParseReportingType(*req.ReportingType)
		if err != nil {
			return timesheet.TimestampResponse{}, err
		}
		ts.ReportingType = reportingType
	}
	if req.Detail != nil {
		ts.Detail = *req.Detail
	}

	if ts.PunchOut != nil {
		if !ts.PunchOut.After(ts.PunchIn) {
			return timesheet.TimestampResponse{}, timesheet.ErrPunchOrder
		}
		ts.TotalWorkSeconds = int64(ts.PunchOut.Sub(ts.PunchIn).Seconds())
	}
	ts.EnteredBy = a.Email
	ts.LastUpdate = time.Now().UTC()

	if err := s.TimestampRepository.Update(ctx, ts); err != nil {
		return timesheet.TimestampResponse{}, fmt.Errorf("failed to update entry: %w", err)
	}
	return timesheet.NewTimestampResponse(ts), nil
}

// DeleteTimestamp implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DeleteTimestamp(ctx context.Context, id string) error {
	a, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	ts, err := s.TimestampRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.authorizeTarget(ctx, a, ts.UserEmail); err != nil {
		return err
	}

	return s.TimestampRepository.Delete(ctx, id)
}

// GetTimestampsRange implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimestampsRange(ctx context.Context, filter timesheet.RangeFilter) ([]timesheet.TimestampResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	target, err := s.authorizeTarget(ctx, a, filter.UserEmail)
	if err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", filter.StartDate)
	end, _ := time.Parse("2006-01-02", filter.EndDate)
	end = end.Add(24*time.Hour - time.Nanosecond)

	entries, err := s.TimestampRepository.GetRange(ctx, target.Email, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	responses := make([]timesheet.TimestampResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timesheet.NewTimestampResponse(e))
	}
	return responses, nil
}

// GetAllTimestamps implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetAllTimestamps(ctx context.Context) ([]timesheet.TimestampResponse, error) {
	a, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !a.Permission.IsNetAdmin() {
		return nil, timesheet.ErrUnauthorized
	}

	entries, err := s.TimestampRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}

	responses := make([]timesheet.TimestampResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timesheet.NewTimestampResponse(e))
	}
	return responses, nil
}
