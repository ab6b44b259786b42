package calendar

import "context"

// CalendarService builds month views on top of the timesheet store.
type CalendarService interface {
	// BuildMonthCalendar fetches the month's entries for a user and
	// aggregates them into the grid. Requests superseded by a newer
	// selection for the same viewer fail with ErrStaleSelection.
	BuildMonthCalendar(ctx context.Context, req *MonthRequest) (*MonthResponse, error)
}
