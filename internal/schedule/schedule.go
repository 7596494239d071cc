// Package schedule decides whether a habit is due on a given date. The
// predicate is advisory for rendering and filtering; it never gates whether
// a completion can be recorded on an off-schedule day.
package schedule

import (
	"time"

	"habitkeep/internal/dateutil"
	"habitkeep/internal/models"
)

// IsDue reports whether a habit with the given frequency configuration is
// due on date. Weekly is interpreted as "due every day, satisfied by any
// single completion in the week" — only frequency display restricts the day.
func IsDue(frequency models.Frequency, frequencyDays []int, date time.Time) bool {
	switch frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return true
	case models.FrequencyCustom:
		if len(frequencyDays) == 0 {
			return false
		}
		weekday := dateutil.DayOfWeek(date)
		for _, d := range frequencyDays {
			if d == weekday {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsDueForHabit is a convenience wrapper over the habit's own configuration.
func IsDueForHabit(h models.Habit, date time.Time) bool {
	return IsDue(h.Frequency, h.FrequencyDays, date)
}
