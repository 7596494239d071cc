// Package validation checks habit fields before they reach storage.
package validation

import (
	"time"

	"habitkeep/internal/constants"
	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

// Habit validates the writable fields of a habit definition. Category
// existence is checked separately by the repository, which owns the lookup.
func Habit(h models.Habit) error {
	if h.Name == "" {
		return apperr.Validationf("habit name must not be empty")
	}
	if h.CategoryID == "" {
		return apperr.Validationf("habit must reference a category")
	}
	if !h.Frequency.Valid() {
		return apperr.Validationf("unknown frequency %q", h.Frequency)
	}
	if h.Frequency.RequiresDays() {
		if err := FrequencyDays(h.FrequencyDays); err != nil {
			return err
		}
	}
	if h.ReminderEnabled && h.ReminderTime != "" {
		if err := ReminderTime(h.ReminderTime); err != nil {
			return err
		}
	}
	return nil
}

// FrequencyDays validates a custom-frequency weekday set: non-empty,
// Monday=0 through Sunday=6, no duplicates.
func FrequencyDays(days []int) error {
	if len(days) == 0 {
		return apperr.Validationf("custom frequency requires at least one weekday")
	}
	seen := make(map[int]bool)
	for _, d := range days {
		if d < 0 || d > 6 {
			return apperr.Validationf("weekday index %d out of range 0..6", d)
		}
		if seen[d] {
			return apperr.Validationf("duplicate weekday index %d", d)
		}
		seen[d] = true
	}
	return nil
}

// ReminderTime validates a reminder clock time (HH:MM).
func ReminderTime(s string) error {
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return apperr.Validationf("invalid reminder time %q (expected HH:MM)", s)
	}
	return nil
}

// DateKey validates a canonical YYYY-MM-DD date key.
func DateKey(s string) error {
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return apperr.Validationf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return nil
}
