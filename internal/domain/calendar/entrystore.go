package calendar

import (
	"sort"
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
)

// EntryStore partitions a month's timesheet entries by calendar day of their
// punch-in time.
type EntryStore struct {
	year     int
	month    time.Month
	byDay    map[int][]timesheet.TimeStamp
	rejected int
}

func NewEntryStore(year int, month time.Month) *EntryStore {
	return &EntryStore{
		year:  year,
		month: month,
		byDay: make(map[int][]timesheet.TimeStamp),
	}
}

// Add files the entry under its punch-in date. Entries dated outside the
// store's month are discarded and counted; they indicate a late record or a
// loosely filtered upstream query, never a reason to fail the whole build.
func (s *EntryStore) Add(ts timesheet.TimeStamp) bool {
	y, m, d := ts.PunchIn.UTC().Date()
	if y != s.year || m != s.month {
		s.rejected++
		return false
	}
	s.byDay[d] = append(s.byDay[d], ts)
	return true
}

// ForDay returns the entries for a day sorted by punch-in time ascending.
func (s *EntryStore) ForDay(day int) []timesheet.TimeStamp {
	entries := make([]timesheet.TimeStamp, len(s.byDay[day]))
	copy(entries, s.byDay[day])
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PunchIn.Before(entries[j].PunchIn)
	})
	return entries
}

// Rejected returns the number of entries discarded as out of month.
func (s *EntryStore) Rejected() int {
	return s.rejected
}
