package models

import "time"

type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusSkipped   CompletionStatus = "skipped"
)

// Valid reports whether s is one of the closed status variants.
func (s CompletionStatus) Valid() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// Completion is a single day's record for a habit. Date is the canonical
// YYYY-MM-DD key for the calendar day, not a timestamp. At most one
// completion exists per (habit, date) pair.
type Completion struct {
	ID        string           `json:"id"`
	HabitID   string           `json:"habit_id"`
	Date      string           `json:"date"` // YYYY-MM-DD format
	Status    CompletionStatus `json:"status"`
	Note      string           `json:"note,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
