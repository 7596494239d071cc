// Package streak derives the current consecutive-completion streak for a
// habit. The streak is a property of trailing consecutive completion: it is
// recomputed on every call, never persisted.
package streak

import (
	"time"

	"habitkeep/internal/dateutil"
)

// Current walks backward from an anchor day counting consecutive completed
// date keys. The anchor is today when today is completed, otherwise
// yesterday — a single grace day, so a streak is not broken merely because
// today is not yet done. A skipped day is absent from the set and ends the
// walk the same as a true miss. Future-dated completions sit beyond the
// anchor and never contribute.
func Current(completedDates []string, today time.Time) int {
	if len(completedDates) == 0 {
		return 0
	}

	completed := make(map[string]struct{}, len(completedDates))
	for _, d := range completedDates {
		completed[d] = struct{}{}
	}

	check := dateutil.Midnight(today)
	if _, ok := completed[dateutil.Key(check)]; !ok {
		check = check.AddDate(0, 0, -1)
	}

	count := 0
	for {
		if _, ok := completed[dateutil.Key(check)]; !ok {
			break
		}
		count++
		check = check.AddDate(0, 0, -1)
	}

	return count
}
