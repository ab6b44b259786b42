package calendar

import (
	"strings"
	"time"
)

// IsRestDay reports whether weekday is one of the user's configured rest
// days. Matching is case-insensitive and tolerates surrounding whitespace;
// an empty choice list means no rest days.
func IsRestDay(weekday time.Weekday, weekendChoice []string) bool {
	name := weekday.String()
	for _, choice := range weekendChoice {
		if strings.EqualFold(strings.TrimSpace(choice), name) {
			return true
		}
	}
	return false
}
