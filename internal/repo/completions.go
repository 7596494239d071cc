package repo

import (
	"time"

	"habitkeep/internal/models"
	"habitkeep/internal/storage"
	"habitkeep/internal/streak"
	"habitkeep/internal/validation"
)

// Completions records per-day habit outcomes and derives streaks from them.
type Completions struct {
	store    storage.Provider
	notifier *Notifier
}

// ListInRange returns all completions between start and end inclusive, for
// rendering a calendar window across every habit.
func (c *Completions) ListInRange(start, end string) ([]models.Completion, error) {
	if err := validation.DateKey(start); err != nil {
		return nil, err
	}
	if err := validation.DateKey(end); err != nil {
		return nil, err
	}
	return c.store.ListCompletionsInRange(start, end)
}

func (c *Completions) ListForHabit(habitID, start, end string) ([]models.Completion, error) {
	if err := validation.DateKey(start); err != nil {
		return nil, err
	}
	if err := validation.DateKey(end); err != nil {
		return nil, err
	}
	if _, err := c.store.GetHabit(habitID); err != nil {
		return nil, err
	}
	return c.store.ListCompletionsForHabit(habitID, start, end)
}

func (c *Completions) Get(habitID, date string) (models.Completion, error) {
	if err := validation.DateKey(date); err != nil {
		return models.Completion{}, err
	}
	return c.store.GetCompletion(habitID, date)
}

// Toggle cycles the day's record: unmarked becomes completed, completed
// becomes unmarked, skipped becomes completed. The habit must exist; the
// date may be any valid key, including off-schedule days.
func (c *Completions) Toggle(habitID, date, note string) (storage.ToggleOutcome, error) {
	if err := validation.DateKey(date); err != nil {
		return "", err
	}
	if _, err := c.store.GetHabit(habitID); err != nil {
		return "", err
	}

	outcome, err := c.store.ToggleCompletion(habitID, date, note)
	if err != nil {
		return "", err
	}

	c.notifier.Broadcast()
	return outcome, nil
}

// Skip marks the day as deliberately not done. Repeating a skip is a no-op.
func (c *Completions) Skip(habitID, date, note string) error {
	if err := validation.DateKey(date); err != nil {
		return err
	}
	if _, err := c.store.GetHabit(habitID); err != nil {
		return err
	}

	if err := c.store.SkipCompletion(habitID, date, note); err != nil {
		return err
	}

	c.notifier.Broadcast()
	return nil
}

// CurrentStreak recomputes the habit's trailing consecutive-day streak as of
// now. Nothing is persisted.
func (c *Completions) CurrentStreak(habitID string) (int, error) {
	if _, err := c.store.GetHabit(habitID); err != nil {
		return 0, err
	}

	dates, err := c.store.CompletedDates(habitID)
	if err != nil {
		return 0, err
	}
	return streak.Current(dates, time.Now()), nil
}
