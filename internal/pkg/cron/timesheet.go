package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
)

// TimesheetJobs contains timesheet-related cron jobs
type TimesheetJobs struct {
	timestampRepo timesheet.TimestampRepository
	userRepo      user.UserRepository
}

func NewTimesheetJobs(timestampRepo timesheet.TimestampRepository, userRepo user.UserRepository) *TimesheetJobs {
	return &TimesheetJobs{
		timestampRepo: timestampRepo,
		userRepo:      userRepo,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	// Midnight UTC, once the previous day is fully over.
	scheduler.AddDailyJob("auto_close_stale_entries", 0, j.AutoCloseStaleEntries)
}

// AutoCloseStaleEntries closes open entries whose punch-in is older than a
// day. The punch-out is set to punch-in plus the user's daily work capacity,
// never the current time, so a forgotten punch does not inflate the total.
func (j *TimesheetJobs) AutoCloseStaleEntries(ctx context.Context) error {
	slog.Info("Cron: Starting auto-close stale entries job")

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	stale, err := j.timestampRepo.GetStaleOpenEntries(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale open entries: %w", err)
	}

	if len(stale) == 0 {
		slog.Info("Cron: No stale open entries found")
		return nil
	}

	closedCount := 0
	for _, entry := range stale {
		capacity := 8.0
		if u, err := j.userRepo.GetByEmail(ctx, entry.UserEmail); err == nil && u.WorkCapacity > 0 {
			capacity = u.WorkCapacity
		}

		punchOut := entry.PunchIn.Add(time.Duration(capacity * float64(time.Hour)))
		entry.PunchOut = &punchOut
		entry.TotalWorkSeconds = int64(punchOut.Sub(entry.PunchIn).Seconds())
		entry.Detail = "Auto-closed: no punch-out detected. Please correct the entry if this is wrong."
		entry.LastUpdate = time.Now().UTC()

		if err := j.timestampRepo.Update(ctx, entry); err != nil {
			slog.Error("Cron: Failed to auto-close entry",
				"timestamp_id", entry.ID,
				"user_email", entry.UserEmail,
				"error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Auto-closed stale entries", "count", closedCount)
	return nil
}
