// Package dateutil provides calendar-day helpers for habit tracking.
// All date keys use the fixed-width "YYYY-MM-DD" format, derived from local
// calendar fields. Keys must never come from a UTC-normalized instant, or
// completions recorded near midnight would land on the wrong day.
package dateutil

import (
	"fmt"
	"time"

	"habitkeep/internal/constants"
)

// Key returns the canonical "YYYY-MM-DD" date key for t.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseKey parses a date key into local midnight of that calendar day.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q (expected YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// ValidKey reports whether key is a well-formed date key.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// Today returns local midnight of the current day.
func Today() time.Time {
	return Midnight(time.Now())
}

// Midnight truncates t to local midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayOfWeek returns 0 (Monday) through 6 (Sunday) for t. The platform's
// Sunday-first numbering is deliberately remapped so weeks start on Monday.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekOf returns the 7 days, Monday through Sunday, of the calendar week
// containing t.
func WeekOf(t time.Time) []time.Time {
	monday := Midnight(t).AddDate(0, 0, -DayOfWeek(t))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// GridWindow returns rows*7 consecutive days ending on the Sunday of the
// week containing ref. When ref falls mid-week the tail of the window is in
// the future relative to ref; those days render as not-yet-due, not missed.
func GridWindow(ref time.Time, rows int) []time.Time {
	total := rows * 7
	sunday := Midnight(ref).AddDate(0, 0, 6-DayOfWeek(ref))
	start := sunday.AddDate(0, 0, -total+1)

	days := make([]time.Time, total)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// IsToday reports whether t falls on the current calendar day.
func IsToday(t time.Time) bool {
	return Key(t) == Key(time.Now())
}

// IsPast reports whether t falls strictly before today.
func IsPast(t time.Time) bool {
	return Midnight(t).Before(Today())
}

// IsFuture reports whether t falls strictly after today.
func IsFuture(t time.Time) bool {
	return Midnight(t).After(Today())
}
