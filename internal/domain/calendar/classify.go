package calendar

import (
	"time"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/timesheet"
)

// paidLeaveCreditSeconds is the fixed credit one paid-leave entry earns
// toward the daily total, regardless of the entry's own punch times.
const paidLeaveCreditSeconds = 8 * 3600

// Classify derives the status and total worked seconds of one day. A rest
// day keeps its entries but is always classified weekend; otherwise leave
// entries outrank work entries, paid before unpaid, and a day with no
// entries is unreported.
func Classify(weekday time.Weekday, entries []timesheet.TimeStamp, weekendChoice []string) (Classification, int64) {
	var (
		total                     int64
		hasWork, hasPaid, hasUnpaid bool
	)
	for _, e := range entries {
		switch e.ReportingType {
		case timesheet.ReportingPaidLeave:
			hasPaid = true
			total += paidLeaveCreditSeconds
		case timesheet.ReportingUnpaidLeave:
			hasUnpaid = true
		default:
			hasWork = true
			total += e.WorkSeconds()
		}
	}

	switch {
	case IsRestDay(weekday, weekendChoice):
		return ClassWeekend, total
	case hasPaid:
		return ClassPaidLeave, total
	case hasUnpaid:
		return ClassUnpaidLeave, total
	case hasWork:
		return ClassWork, total
	default:
		return ClassUnreported, 0
	}
}
