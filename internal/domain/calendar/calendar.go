package calendar

import (
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
)

// Classification is the derived daily status used for display and for
// punch-eligibility decisions.
type Classification string

const (
	ClassWeekend     Classification = "weekend"
	ClassWork        Classification = "work"
	ClassPaidLeave   Classification = "paid_leave"
	ClassUnpaidLeave Classification = "unpaid_leave"
	ClassUnreported  Classification = "unreported"
)

const (
	daysPerWeek = 7
	// A month never spans more than six week rows.
	maxWeekRows = 6
)

// DayCell is one cell of the month grid. Day is zero for the blank leading
// and trailing cells that pad a week row.
type DayCell struct {
	Day            int
	Entries        []timesheet.TimeStamp
	Classification Classification
	TotalSeconds   int64
}

func (c *DayCell) Blank() bool {
	return c.Day == 0
}

// Week is one row of the grid, indexed by time.Weekday (Sunday first).
type Week [daysPerWeek]DayCell

// Month is a fully owned snapshot for one (year, month). It is rebuilt from
// scratch on every selection change or entry mutation, never patched.
type Month struct {
	Year  int
	Month time.Month
	Weeks []Week
	// Discarded counts entries whose punch-in date fell outside the month
	// and were therefore dropped during aggregation.
	Discarded int
}

// TotalSeconds sums the daily totals of every populated cell.
func (m *Month) TotalSeconds() int64 {
	var total int64
	for wi := range m.Weeks {
		for di := range m.Weeks[wi] {
			total += m.Weeks[wi][di].TotalSeconds
		}
	}
	return total
}

// Cell returns the populated cell for a day of the month, or nil when the
// day is out of range.
func (m *Month) Cell(day int) *DayCell {
	for wi := range m.Weeks {
		for di := range m.Weeks[wi] {
			if m.Weeks[wi][di].Day == day {
				return &m.Weeks[wi][di]
			}
		}
	}
	return nil
}

// PopulatedDays counts the non-blank cells; it always equals the number of
// days in the month.
func (m *Month) PopulatedDays() int {
	count := 0
	for wi := range m.Weeks {
		for di := range m.Weeks[wi] {
			if !m.Weeks[wi][di].Blank() {
				count++
			}
		}
	}
	return count
}
