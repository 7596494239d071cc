package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

const habitColumns = `id, name, description, icon, color, frequency, frequency_days,
	category_id, reminder_enabled, reminder_time, sort_order, is_archived, created_at, updated_at`

func scanHabit(row interface{ Scan(...interface{}) error }) (models.Habit, error) {
	var h models.Habit
	var description, frequencyDays, reminderTime sql.NullString
	var frequency string
	var reminderEnabled, isArchived int
	var createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.Name, &description, &h.Icon, &h.Color, &frequency, &frequencyDays,
		&h.CategoryID, &reminderEnabled, &reminderTime, &h.SortOrder, &isArchived, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	if !h.Frequency.Valid() {
		return models.Habit{}, fmt.Errorf("habit %s has unknown frequency %q", h.ID, frequency)
	}
	if description.Valid {
		h.Description = description.String
	}
	if reminderTime.Valid {
		h.ReminderTime = reminderTime.String
	}
	h.ReminderEnabled = reminderEnabled != 0
	h.IsArchived = isArchived != 0

	if frequencyDays.Valid {
		h.FrequencyDays, err = models.DecodeFrequencyDays(frequencyDays.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
		}
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}

	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, apperr.NotFoundf("habit %s", id)
		}
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE name = ?", name)

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, apperr.NotFoundf("habit %q", name)
		}
		return models.Habit{}, err
	}
	return h, nil
}

// ListHabits returns habits ordered by sort order. The default filter
// excludes archived habits; scheduling relevance is the caller's concern.
func (s *Store) ListHabits(filter HabitFilter) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE 1=1"
	var args []interface{}

	if !filter.IncludeArchived {
		query += " AND is_archived = 0"
	}
	if filter.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, filter.CategoryID)
	}
	query += " ORDER BY sort_order"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	frequencyDays, err := models.EncodeFrequencyDays(habit.FrequencyDays)
	if err != nil {
		return err
	}

	var description, reminderTime, days sql.NullString
	if habit.Description != "" {
		description = sql.NullString{String: habit.Description, Valid: true}
	}
	if habit.ReminderTime != "" {
		reminderTime = sql.NullString{String: habit.ReminderTime, Valid: true}
	}
	if frequencyDays != "" {
		days = sql.NullString{String: frequencyDays, Valid: true}
	}

	reminderEnabled := 0
	if habit.ReminderEnabled {
		reminderEnabled = 1
	}
	isArchived := 0
	if habit.IsArchived {
		isArchived = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, description, icon, color, frequency, frequency_days,
			category_id, reminder_enabled, reminder_time, sort_order, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			icon = excluded.icon,
			color = excluded.color,
			frequency = excluded.frequency,
			frequency_days = excluded.frequency_days,
			category_id = excluded.category_id,
			reminder_enabled = excluded.reminder_enabled,
			reminder_time = excluded.reminder_time,
			sort_order = excluded.sort_order,
			is_archived = excluded.is_archived,
			updated_at = excluded.updated_at`,
		habit.ID, habit.Name, description, habit.Icon, habit.Color, string(habit.Frequency), days,
		habit.CategoryID, reminderEnabled, reminderTime, habit.SortOrder, isArchived,
		habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339))

	return err
}

// SetHabitArchived flips the soft-delete flag. Completions are left intact.
func (s *Store) SetHabitArchived(id string, archived bool) error {
	flag := 0
	if archived {
		flag = 1
	}

	result, err := s.db.Exec(`
		UPDATE habits SET is_archived = ?, updated_at = ? WHERE id = ?`,
		flag, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFoundf("habit %s", id)
	}

	return nil
}

// DeleteHabit permanently removes a habit and all its completions. The
// completions delete is explicit in the same transaction rather than left to
// the foreign-key cascade, so the invariant holds even for databases created
// before the foreign_keys pragma applied.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", id); err != nil {
		return err
	}

	result, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFoundf("habit %s", id)
	}

	return tx.Commit()
}
