package timesheet

import (
	"context"
)

// TimesheetService defines business logic for punch and timestamp operations.
// It owns the punch lifecycle: at most one open work entry may exist per user
// at any time.
type TimesheetService interface {
	// PunchIn opens a work entry at the current time. Fails when the user
	// already has an open entry for today or today is one of their rest days.
	PunchIn(ctx context.Context, req PunchInRequest) (TimestampResponse, error)

	// PunchOut closes today's open entry at the current time. Fails when no
	// open entry exists; the caller should offer a manual entry instead.
	PunchOut(ctx context.Context, req PunchOutRequest) (TimestampResponse, error)

	// CheckPunchStatus reports whether the user currently has an open entry.
	// The answer is never cached; callers re-query after every mutation.
	CheckPunchStatus(ctx context.Context, userEmail string) (bool, error)

	// CreateTimestamp adds a manual (possibly backdated) entry
	CreateTimestamp(ctx context.Context, req CreateTimestampRequest) (TimestampResponse, error)

	// EditTimestamp updates fields of an existing entry
	EditTimestamp(ctx context.Context, req EditTimestampRequest) (TimestampResponse, error)

	// DeleteTimestamp removes an entry
	DeleteTimestamp(ctx context.Context, id string) error

	// GetTimestampsRange retrieves a user's entries for a date range
	GetTimestampsRange(ctx context.Context, filter RangeFilter) ([]TimestampResponse, error)

	// GetAllTimestamps retrieves every entry (net admin only)
	GetAllTimestamps(ctx context.Context) ([]TimestampResponse, error)
}
