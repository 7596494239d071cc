package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

const completionColumns = "id, habit_id, date, status, note, created_at"

func scanCompletion(row interface{ Scan(...interface{}) error }) (models.Completion, error) {
	var c models.Completion
	var note sql.NullString
	var status, createdAt string

	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &status, &note, &createdAt)
	if err != nil {
		return models.Completion{}, err
	}

	c.Status = models.CompletionStatus(status)
	if !c.Status.Valid() {
		return models.Completion{}, fmt.Errorf("completion %s has unknown status %q", c.ID, status)
	}
	if note.Valid {
		c.Note = note.String
	}

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse created_at for completion %s: %w", c.ID, err)
	}

	return c, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Store) GetCompletion(habitID, date string) (models.Completion, error) {
	row := s.db.QueryRow(
		"SELECT "+completionColumns+" FROM completions WHERE habit_id = ? AND date = ?",
		habitID, date)

	c, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Completion{}, apperr.NotFoundf("completion for habit %s on %s", habitID, date)
		}
		return models.Completion{}, err
	}
	return c, nil
}

// AddCompletion inserts a completion row directly. Writers should prefer
// ToggleCompletion/SkipCompletion; a duplicate (habit, date) insert here is
// caught by the unique index and surfaced as a constraint violation.
func (s *Store) AddCompletion(completion models.Completion) error {
	if !completion.Status.Valid() {
		return fmt.Errorf("unknown completion status %q", completion.Status)
	}

	var note sql.NullString
	if completion.Note != "" {
		note = sql.NullString{String: completion.Note, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, date, status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		completion.ID, completion.HabitID, completion.Date, string(completion.Status),
		note, completion.CreatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return apperr.Conflictf("completion already exists for habit %s on %s", completion.HabitID, completion.Date)
	}
	return err
}

// ListCompletionsInRange returns completions with date keys between start
// and end inclusive. The comparison is lexicographic, which matches
// chronological order because keys are fixed-width zero-padded.
func (s *Store) ListCompletionsInRange(start, end string) ([]models.Completion, error) {
	rows, err := s.db.Query(
		"SELECT "+completionColumns+" FROM completions WHERE date >= ? AND date <= ? ORDER BY date",
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func (s *Store) ListCompletionsForHabit(habitID, start, end string) ([]models.Completion, error) {
	rows, err := s.db.Query(
		"SELECT "+completionColumns+" FROM completions WHERE habit_id = ? AND date >= ? AND date <= ? ORDER BY date",
		habitID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func collectCompletions(rows *sql.Rows) ([]models.Completion, error) {
	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// CompletedDates returns the date keys of all completed-status records for a
// habit. Skipped records are deliberately absent from the result.
func (s *Store) CompletedDates(habitID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT date FROM completions WHERE habit_id = ? AND status = ? ORDER BY date DESC",
		habitID, string(models.StatusCompleted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// ToggleCompletion runs the three-way toggle transition for (habitID, date)
// inside one transaction, closing the race window between the read and the
// write:
//
//	no record            -> insert completed
//	completed record     -> delete the record (back to unmarked)
//	skipped record       -> update to completed
func (s *Store) ToggleCompletion(habitID, date, note string) (ToggleOutcome, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var id string
	var status string
	err = tx.QueryRow(
		"SELECT id, status FROM completions WHERE habit_id = ? AND date = ?",
		habitID, date).Scan(&id, &status)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := insertCompletion(tx, habitID, date, models.StatusCompleted, note); err != nil {
			return "", err
		}
		return ToggleMarked, tx.Commit()

	case err != nil:
		return "", err

	case models.CompletionStatus(status) == models.StatusCompleted:
		if _, err := tx.Exec("DELETE FROM completions WHERE id = ?", id); err != nil {
			return "", err
		}
		return ToggleUnmarked, tx.Commit()

	default: // skipped
		if _, err := tx.Exec("UPDATE completions SET status = ? WHERE id = ?",
			string(models.StatusCompleted), id); err != nil {
			return "", err
		}
		return ToggleMarked, tx.Commit()
	}
}

// SkipCompletion marks (habitID, date) as skipped, inserting or overwriting
// in one transaction. Unlike toggle, repeating a skip is a no-op.
func (s *Store) SkipCompletion(habitID, date, note string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(
		"SELECT id FROM completions WHERE habit_id = ? AND date = ?",
		habitID, date).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := insertCompletion(tx, habitID, date, models.StatusSkipped, note); err != nil {
			return err
		}

	case err != nil:
		return err

	default:
		if _, err := tx.Exec("UPDATE completions SET status = ? WHERE id = ?",
			string(models.StatusSkipped), id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertCompletion(tx *sql.Tx, habitID, date string, status models.CompletionStatus, note string) error {
	var noteVal sql.NullString
	if note != "" {
		noteVal = sql.NullString{String: note, Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO completions (id, habit_id, date, status, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), habitID, date, string(status), noteVal,
		time.Now().Format(time.RFC3339))
	if isUniqueViolation(err) {
		return apperr.Conflictf("completion already exists for habit %s on %s", habitID, date)
	}
	return err
}
