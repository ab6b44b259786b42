package calendar

import (
	"strconv"
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/validator"
)

// DaysInMonth returns the number of days in (year, month). Day 32 normalizes
// into the following month, and 32 minus its resulting day-of-month is the
// length of this one, leap years included.
func DaysInMonth(year int, month time.Month) int {
	return 32 - time.Date(year, month, 32, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonth lays out the empty week grid for (year, month). Cells before the
// first and after the last day of the month stay blank, and week rows that
// would hold no day at all are dropped.
func BuildMonth(year int, month time.Month) (Month, error) {
	var errs validator.ValidationErrors
	if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 1 and 9999"})
	}
	if month < time.January || month > time.December {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12, got " + strconv.Itoa(int(month))})
	}
	if len(errs) > 0 {
		return Month{}, errs
	}

	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	daysIn := DaysInMonth(year, month)

	m := Month{Year: year, Month: month}
	day := 1
	for w := 0; w < maxWeekRows && day <= daysIn; w++ {
		var week Week
		for d := 0; d < daysPerWeek; d++ {
			if w*daysPerWeek+d < offset || day > daysIn {
				continue
			}
			week[d] = DayCell{
				Day:            day,
				Entries:        []timesheet.TimeStamp{},
				Classification: ClassUnreported,
			}
			day++
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m, nil
}
