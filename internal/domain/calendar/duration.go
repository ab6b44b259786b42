package calendar

import (
	"fmt"
	"math"
)

// FormatDuration renders a second count as "HH:MM". Hours truncate while
// minutes round to nearest, each from the raw second count independently, so
// 3599 seconds renders as "00:60" rather than rolling into the hour.
func FormatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := int64(math.Round(float64(seconds%3600) / 60))
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
