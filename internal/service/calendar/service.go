package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
)

type CalendarServiceImpl struct {
	db *database.DB
	timesheet.TimestampRepository
	user.UserRepository

	// one Session per viewer, keyed by the viewer's email
	sessions sync.Map
}

func NewCalendarService(db *database.DB, tsRepo timesheet.TimestampRepository, userRepo user.UserRepository) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		db:                  db,
		TimestampRepository: tsRepo,
		UserRepository:      userRepo,
	}
}

func (s *CalendarServiceImpl) sessionFor(viewerEmail string) *calendar.Session {
	session, _ := s.sessions.LoadOrStore(viewerEmail, &calendar.Session{})
	return session.(*calendar.Session)
}

// BuildMonthCalendar implements calendar.CalendarService.
func (s *CalendarServiceImpl) BuildMonthCalendar(ctx context.Context, req *calendar.MonthRequest) (*calendar.MonthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	viewerEmail, ok := claims["email"].(string)
	if !ok || viewerEmail == "" {
		return nil, fmt.Errorf("email claim is missing or invalid")
	}
	viewerCompanyID, _ := claims["company_id"].(string)
	permission, ok := user.PermissionFromClaim(claims["permission"])
	if !ok {
		return nil, user.ErrInvalidPermission
	}

	target, err := s.UserRepository.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}
	allowed := permission.IsNetAdmin() ||
		(permission.IsEmployer() && viewerCompanyID == target.CompanyID) ||
		viewerEmail == target.Email
	if !allowed {
		return nil, user.ErrUnauthorized
	}

	month := time.Month(req.Month)
	session := s.sessionFor(viewerEmail)
	token := session.Activate(calendar.Selection{
		UserEmail: target.Email,
		Year:      req.Year,
		Month:     month,
	})

	start := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	entries, err := s.TimestampRepository.GetRange(ctx, target.Email, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calendar.ErrUpstreamFetch, err)
	}

	m, err := calendar.Aggregate(req.Year, month, target.WeekendChoice, entries)
	if err != nil {
		return nil, err
	}
	if m.Discarded > 0 {
		slog.Warn("Discarded out-of-month entries while building calendar",
			"user_email", target.Email, "year", req.Year, "month", req.Month, "count", m.Discarded)
	}

	var resp calendar.MonthResponse
	if err := session.Apply(token, func() {
		resp = calendar.NewMonthResponse(target.Email, m)
	}); err != nil {
		return nil, err
	}
	return &resp, nil
}
