package calendar

import "errors"

var (
	ErrStaleSelection = errors.New("calendar selection changed while loading")
	ErrUpstreamFetch  = errors.New("failed to fetch timesheet entries")
)
