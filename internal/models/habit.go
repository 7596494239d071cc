package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Valid reports whether f is one of the closed frequency variants.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	}
	return false
}

// RequiresDays reports whether the frequency needs an explicit weekday set.
func (f Frequency) RequiresDays() bool {
	return f == FrequencyCustom
}

// Habit represents a recurring practice to track. FrequencyDays holds weekday
// indices with Monday=0 through Sunday=6 and is only meaningful when
// Frequency is "custom".
type Habit struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
	Frequency       Frequency `json:"frequency"`
	FrequencyDays   []int     `json:"frequency_days,omitempty"`
	CategoryID      string    `json:"category_id"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time,omitempty"` // HH:MM format
	SortOrder       int       `json:"sort_order"`
	IsArchived      bool      `json:"is_archived"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HabitPatch carries partial updates for a habit. Nil fields are left
// untouched; ID and CreatedAt are immutable and have no patch field.
type HabitPatch struct {
	Name            *string
	Description     *string
	Icon            *string
	Color           *string
	Frequency       *Frequency
	FrequencyDays   *[]int
	CategoryID      *string
	ReminderEnabled *bool
	ReminderTime    *string
	SortOrder       *int
}

// EncodeFrequencyDays serializes a weekday set for the frequency_days column.
// An empty or nil set encodes as the empty string (stored as NULL).
func EncodeFrequencyDays(days []int) (string, error) {
	if len(days) == 0 {
		return "", nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frequency days: %w", err)
	}
	return string(b), nil
}

// DecodeFrequencyDays parses the frequency_days column value.
func DecodeFrequencyDays(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var days []int
	if err := json.Unmarshal([]byte(s), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frequency days: %w", err)
	}
	return days, nil
}
