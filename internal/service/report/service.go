package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/report"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	db *database.DB
	timesheet.TimestampRepository
	user.UserRepository
	company.CompanyRepository
}

func NewReportService(db *database.DB, tsRepo timesheet.TimestampRepository, userRepo user.UserRepository, companyRepo company.CompanyRepository) report.ReportService {
	return &ReportServiceImpl{
		db:                  db,
		TimestampRepository: tsRepo,
		UserRepository:      userRepo,
		CompanyRepository:   companyRepo,
	}
}

type viewer struct {
	Email      string
	CompanyID  string
	Permission user.Permission
}

func viewerFromContext(ctx context.Context) (viewer, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return viewer{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return viewer{}, fmt.Errorf("email claim is missing or invalid")
	}
	companyID, _ := claims["company_id"].(string)
	permission, ok := user.PermissionFromClaim(claims["permission"])
	if !ok {
		return viewer{}, user.ErrInvalidPermission
	}
	return viewer{Email: email, CompanyID: companyID, Permission: permission}, nil
}

func (s *ReportServiceImpl) authorizeUserReport(ctx context.Context, v viewer, targetEmail string) (user.User, error) {
	target, err := s.UserRepository.GetByEmail(ctx, targetEmail)
	if err != nil {
		return user.User{}, err
	}
	allowed := v.Permission.IsNetAdmin() ||
		(v.Permission.IsEmployer() && v.CompanyID == target.CompanyID) ||
		v.Email == target.Email
	if !allowed {
		return user.User{}, report.ErrUnauthorized
	}
	return target, nil
}

// roundMoney rounds salary amounts to two decimal places.
func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// GenerateUserReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateUserReport(ctx context.Context, req report.UserReportRequest) (report.UserReport, error) {
	if err := req.Validate(); err != nil {
		return report.UserReport{}, err
	}

	v, err := viewerFromContext(ctx)
	if err != nil {
		return report.UserReport{}, err
	}
	target, err := s.authorizeUserReport(ctx, v, req.UserEmail)
	if err != nil {
		return report.UserReport{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	rep, err := s.buildUserReport(ctx, target, start, end)
	if err != nil {
		return report.UserReport{}, err
	}
	rep.PeriodYear = req.Year
	rep.PeriodMonth = req.Month
	return rep, nil
}

// GenerateUserRangeReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateUserRangeReport(ctx context.Context, req report.UserRangeReportRequest) (report.UserReport, error) {
	if err := req.Validate(); err != nil {
		return report.UserReport{}, err
	}

	v, err := viewerFromContext(ctx)
	if err != nil {
		return report.UserReport{}, err
	}
	target, err := s.authorizeUserReport(ctx, v, req.UserEmail)
	if err != nil {
		return report.UserReport{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	return s.buildUserReport(ctx, target, start, end)
}

// buildUserReport tallies one user's span of days, both bounds inclusive.
// A day counts through its first entry: a work day contributes that entry's
// recorded seconds, a paid-leave day a fixed eight hours, an unpaid-leave
// day nothing.
func (s *ReportServiceImpl) buildUserReport(ctx context.Context, target user.User, start, end time.Time) (report.UserReport, error) {
	fetchEnd := end.Add(24*time.Hour - time.Nanosecond)
	entries, err := s.TimestampRepository.GetRange(ctx, target.Email, start, fetchEnd)
	if err != nil {
		return report.UserReport{}, fmt.Errorf("failed to fetch entries: %w", err)
	}

	byDay := make(map[string][]timesheet.TimeStamp)
	for _, e := range entries {
		key := e.PunchIn.UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}
	for _, dayEntries := range byDay {
		sort.SliceStable(dayEntries, func(i, j int) bool {
			return dayEntries[i].PunchIn.Before(dayEntries[j].PunchIn)
		})
	}

	rep := report.UserReport{
		UserEmail:          target.Email,
		EmployeeName:       target.FullName(),
		PeriodStart:        start.Format("2006-01-02"),
		PeriodEnd:          end.Format("2006-01-02"),
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		DailyCapacityHours: target.WorkCapacity,
		HourlySalary:       target.Salary,
		DailyBreakdown:     []report.DayReport{},
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := report.DayReport{Date: date.Format("2006-01-02")}

		if calendar.IsRestDay(date.Weekday(), target.WeekendChoice) {
			day.Classification = string(calendar.ClassWeekend)
			day.WorkedHours = calendar.FormatDuration(0)
			rep.DailyBreakdown = append(rep.DailyBreakdown, day)
			continue
		}
		rep.PotentialWorkDays++

		dayEntries := byDay[day.Date]
		if len(dayEntries) == 0 {
			rep.DaysNotReported++
			day.Classification = string(calendar.ClassUnreported)
			day.WorkedHours = calendar.FormatDuration(0)
			rep.DailyBreakdown = append(rep.DailyBreakdown, day)
			continue
		}

		first := dayEntries[0]
		switch first.ReportingType {
		case timesheet.ReportingPaidLeave:
			rep.PaidLeaveDays++
			rep.WorkedDays++
			day.Classification = string(calendar.ClassPaidLeave)
			day.WorkedSeconds = 8 * 3600
		case timesheet.ReportingUnpaidLeave:
			rep.UnpaidLeaveDays++
			day.Classification = string(calendar.ClassUnpaidLeave)
		default:
			rep.WorkedDays++
			day.Classification = string(calendar.ClassWork)
			day.WorkedSeconds = first.WorkSeconds()
		}
		rep.WorkedSeconds += day.WorkedSeconds
		day.WorkedHours = calendar.FormatDuration(day.WorkedSeconds)
		rep.DailyBreakdown = append(rep.DailyBreakdown, day)
	}

	rep.MonthlyCapacityHours = float64(rep.PotentialWorkDays) * target.WorkCapacity
	rep.WorkedHours = calendar.FormatDuration(rep.WorkedSeconds)
	rep.EstimatedSalary = roundMoney(target.Salary * float64(rep.WorkedSeconds) / 3600)
	return rep, nil
}

// GenerateCompanyReport implements report.ReportService. Employers report on
// their own company; net admins must name the company, since their token
// carries no company scope.
func (s *ReportServiceImpl) GenerateCompanyReport(ctx context.Context, req report.CompanyReportRequest) (report.CompanyReport, error) {
	if err := req.Validate(); err != nil {
		return report.CompanyReport{}, err
	}

	v, err := viewerFromContext(ctx)
	if err != nil {
		return report.CompanyReport{}, err
	}

	companyID := req.CompanyID
	switch {
	case v.Permission.IsNetAdmin():
		if companyID == "" {
			return report.CompanyReport{}, validator.ValidationErrors{{
				Field:   "company_id",
				Message: "company_id is required",
			}}
		}
	case v.Permission.IsEmployer():
		if companyID == "" {
			companyID = v.CompanyID
		}
		if companyID != v.CompanyID {
			return report.CompanyReport{}, report.ErrUnauthorized
		}
	default:
		return report.CompanyReport{}, report.ErrUnauthorized
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return report.CompanyReport{}, err
	}
	users, err := s.UserRepository.ListByCompany(ctx, companyData.ID)
	if err != nil {
		return report.CompanyReport{}, fmt.Errorf("failed to list company users: %w", err)
	}

	var start, end time.Time
	if req.Monthly() {
		start = time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
	} else {
		start, _ = time.Parse("2006-01-02", req.StartDate)
		end, _ = time.Parse("2006-01-02", req.EndDate)
	}

	rep := report.CompanyReport{
		CompanyID:   companyData.ID,
		CompanyName: companyData.Name,
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Employees:   make([]report.UserReport, 0, len(users)),
	}
	if req.Monthly() {
		rep.PeriodYear = req.Year
		rep.PeriodMonth = req.Month
	}

	for _, u := range users {
		userRep, err := s.buildUserReport(ctx, u, start, end)
		if err != nil {
			return report.CompanyReport{}, err
		}
		userRep.PeriodYear = rep.PeriodYear
		userRep.PeriodMonth = rep.PeriodMonth
		rep.Employees = append(rep.Employees, userRep)
		rep.TotalWorkedSeconds += userRep.WorkedSeconds
		rep.TotalEstimatedSalary += userRep.EstimatedSalary
	}
	rep.TotalWorkedHours = calendar.FormatDuration(rep.TotalWorkedSeconds)
	rep.TotalEstimatedSalary = roundMoney(rep.TotalEstimatedSalary)
	return rep, nil
}

// GenerateOverview implements report.ReportService.
func (s *ReportServiceImpl) GenerateOverview(ctx context.Context, req report.OverviewRequest) (report.Overview, error) {
	if err := req.Validate(); err != nil {
		return report.Overview{}, err
	}

	v, err := viewerFromContext(ctx)
	if err != nil {
		return report.Overview{}, err
	}
	if !v.Permission.IsNetAdmin() {
		return report.Overview{}, report.ErrUnauthorized
	}

	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return report.Overview{}, fmt.Errorf("failed to list companies: %w", err)
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	overview := report.Overview{
		PeriodYear:  req.Year,
		PeriodMonth: req.Month,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Companies:   make([]report.OverviewRow, 0, len(companies)),
	}

	for _, c := range companies {
		users, err := s.UserRepository.ListByCompany(ctx, c.ID)
		if err != nil {
			return report.Overview{}, fmt.Errorf("failed to list users of company %s: %w", c.ID, err)
		}

		row := report.OverviewRow{
			CompanyID:     c.ID,
			CompanyName:   c.Name,
			EmployeeCount: len(users),
			AdminNames:    []string{},
		}
		for _, u := range users {
			if u.Permission.IsEmployer() {
				row.AdminNames = append(row.AdminNames, u.FullName())
			}
			userRep, err := s.buildUserReport(ctx, u, start, end)
			if err != nil {
				return report.Overview{}, err
			}
			row.TotalWorkedSeconds += userRep.WorkedSeconds
			row.TotalEstimatedSalary += userRep.EstimatedSalary
		}
		row.TotalWorkedHours = calendar.FormatDuration(row.TotalWorkedSeconds)
		row.TotalEstimatedSalary = roundMoney(row.TotalEstimatedSalary)
		overview.Companies = append(overview.Companies, row)
	}
	return overview, nil
}
