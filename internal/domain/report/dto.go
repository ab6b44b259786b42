package report

import (
	"fmt"
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY WORK REPORT
// ========================================

type UserReportRequest struct {
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

func (r *UserReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "invalid email format",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRangeReportRequest covers reports over an arbitrary date span rather
// than a calendar month. Both bounds are inclusive.
type UserRangeReportRequest struct {
	UserEmail string `json:"user_email"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *UserRangeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "invalid email format",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CompanyReportRequest names the company to summarize and either a calendar
// month or an explicit date span. Employers may omit CompanyID to mean their
// own company; net admins must name one.
type CompanyReportRequest struct {
	CompanyID string `json:"company_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Monthly reports whether the request asks for a calendar month rather than
// an explicit date span.
func (r *CompanyReportRequest) Monthly() bool {
	return r.StartDate == "" && r.EndDate == ""
}

func (r *CompanyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Monthly() {
		if r.Month < 1 || r.Month > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}

		currentYear := time.Now().Year()
		if r.Year < 2000 || r.Year > currentYear+1 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
			})
		}
	} else {
		start, startOK := validator.IsValidDate(r.StartDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		}
		end, endOK := validator.IsValidDate(r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		}
		if startOK && endOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverviewRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayReport is one row of a report's daily breakdown.
type DayReport struct {
	Date           string `json:"date"`
	Classification string `json:"classification"`
	WorkedSeconds  int64  `json:"worked_seconds"`
	WorkedHours    string `json:"worked_hours"`
}

// UserReport summarizes one employee's period. Potential work days exclude
// the user's rest days; capacity and salary derive from the user profile.
type UserReport struct {
	UserEmail    string `json:"user_email"`
	EmployeeName string `json:"employee_name"`

	PeriodYear  int    `json:"period_year,omitempty"`
	PeriodMonth int    `json:"period_month,omitempty"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	WorkedDays        int `json:"worked_days"`
	PotentialWorkDays int `json:"potential_work_days"`
	PaidLeaveDays     int `json:"paid_leave_days"`
	UnpaidLeaveDays   int `json:"unpaid_leave_days"`
	DaysNotReported   int `json:"days_not_reported"`

	DailyCapacityHours   float64 `json:"daily_capacity_hours"`
	MonthlyCapacityHours float64 `json:"monthly_capacity_hours"`
	WorkedSeconds        int64   `json:"worked_seconds"`
	WorkedHours          string  `json:"worked_hours"`

	HourlySalary    float64 `json:"hourly_salary"`
	EstimatedSalary float64 `json:"estimated_salary"`

	DailyBreakdown []DayReport `json:"daily_breakdown"`
}

type CompanyReport struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`

	PeriodYear  int    `json:"period_year,omitempty"`
	PeriodMonth int    `json:"period_month,omitempty"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`

	Employees []UserReport `json:"employees"`

	TotalWorkedSeconds   int64   `json:"total_worked_seconds"`
	TotalWorkedHours     string  `json:"total_worked_hours"`
	TotalEstimatedSalary float64 `json:"total_estimated_salary"`
}

// ========================================
// PLATFORM OVERVIEW (net admin)
// ========================================

type OverviewRow struct {
	CompanyID     string   `json:"company_id"`
	CompanyName   string   `json:"company_name"`
	EmployeeCount int      `json:"employee_count"`
	AdminNames    []string `json:"admin_names"`

	TotalWorkedSeconds   int64   `json:"total_worked_seconds"`
	TotalWorkedHours     string  `json:"total_worked_hours"`
	TotalEstimatedSalary float64 `json:"total_estimated_salary"`
}

type Overview struct {
	PeriodYear  int           `json:"period_year"`
	PeriodMonth int           `json:"period_month"`
	GeneratedAt string        `json:"generated_at"`
	Companies   []OverviewRow `json:"companies"`
}
