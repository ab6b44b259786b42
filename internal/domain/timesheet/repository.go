package timesheet

import (
	"context"
	"time"
)

// TimestampRepository defines data access methods for timestamp entries.
// The open-entry invariant is enforced by the service layer, not here.
type TimestampRepository interface {
	// Create inserts a new timestamp entry
	Create(ctx context.Context, ts TimeStamp) (TimeStamp, error)

	// GetByID retrieves a timestamp by its id
	GetByID(ctx context.Context, id string) (TimeStamp, error)

	// Update overwrites an existing timestamp entry
	Update(ctx context.Context, ts TimeStamp) error

	// Delete removes a timestamp entry
	Delete(ctx context.Context, id string) error

	// GetRange retrieves a user's entries whose punch-in falls inside
	// [start, end]. Order is not guaranteed; callers sort before use.
	GetRange(ctx context.Context, userEmail string, start, end time.Time) ([]TimeStamp, error)

	// GetOpenEntry returns the user's open work entry whose punch-in falls
	// inside [start, end], or nil when there is none.
	GetOpenEntry(ctx context.Context, userEmail string, start, end time.Time) (*TimeStamp, error)

	// GetAll retrieves every timestamp entry (net admin only)
	GetAll(ctx context.Context) ([]TimeStamp, error)

	// GetStaleOpenEntries returns open work entries punched in before cutoff
	GetStaleOpenEntries(ctx context.Context, cutoff time.Time) ([]TimeStamp, error)
}
