package calendar

import (
	"strings"
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

// ========================================
// CALENDAR DTOs
// ========================================

type MonthRequest struct {
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.UserEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_email",
			Message: "invalid email format",
		})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayCellResponse struct {
	Day            int                           `json:"day"`
	Classification string                        `json:"classification"`
	Entries        []timesheet.TimestampResponse `json:"entries"`
	TotalSeconds   int64                         `json:"total_seconds"`
	Total          string                        `json:"total"`
}

// WeekResponse maps lowercase weekday names to cells; blank cells are
// simply absent from the map.
type WeekResponse map[string]DayCellResponse

type MonthResponse struct {
	UserEmail         string         `json:"user_email"`
	Year              int            `json:"year"`
	Month             int            `json:"month"`
	MonthName         string         `json:"month_name"`
	Weeks             []WeekResponse `json:"weeks"`
	MonthTotalSeconds int64          `json:"month_total_seconds"`
	MonthTotal        string         `json:"month_total"`
}

func NewMonthResponse(userEmail string, m Month) MonthResponse {
	resp := MonthResponse{
		UserEmail:         userEmail,
		Year:              m.Year,
		Month:             int(m.Month),
		MonthName:         m.Month.String(),
		Weeks:             make([]WeekResponse, 0, len(m.Weeks)),
		MonthTotalSeconds: m.TotalSeconds(),
	}
	resp.MonthTotal = FormatDuration(resp.MonthTotalSeconds)

	for wi := range m.Weeks {
		week := make(WeekResponse, daysPerWeek)
		for di := range m.Weeks[wi] {
			cell := &m.Weeks[wi][di]
			if cell.Blank() {
				continue
			}
			entries := make([]timesheet.TimestampResponse, 0, len(cell.Entries))
			for _, e := range cell.Entries {
				entries = append(entries, timesheet.NewTimestampResponse(e))
			}
			week[strings.ToLower(time.Weekday(di).String())] = DayCellResponse{
				Day:            cell.Day,
				Classification: string(cell.Classification),
				Entries:        entries,
				TotalSeconds:   cell.TotalSeconds,
				Total:          FormatDuration(cell.TotalSeconds),
			}
		}
		resp.Weeks = append(resp.Weeks, week)
	}
	return resp
}
