package calendar

import (
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
)

// Aggregate builds the complete month snapshot: the week grid populated with
// each day's entries sorted by punch-in time, plus per-day classification and
// totals derived from the user's weekend choice.
func Aggregate(year int, month time.Month, weekendChoice []string, entries []timesheet.TimeStamp) (Month, error) {
	m, err := BuildMonth(year, month)
	if err != nil {
		return Month{}, err
	}

	store := NewEntryStore(year, month)
	for _, e := range entries {
		store.Add(e)
	}
	m.Discarded = store.Rejected()

	for wi := range m.Weeks {
		for di := range m.Weeks[wi] {
			cell := &m.Weeks[wi][di]
			if cell.Blank() {
				continue
			}
			cell.Entries = store.ForDay(cell.Day)
			cell.Classification, cell.TotalSeconds = Classify(time.Weekday(di), cell.Entries, weekendChoice)
		}
	}
	return m, nil
}
