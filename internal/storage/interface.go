package storage

import "habitkeep/internal/models"

// HabitFilter narrows ListHabits. The zero value lists active habits in
// every category.
type HabitFilter struct {
	CategoryID      string
	IncludeArchived bool
}

// ToggleOutcome reports what a completion toggle did.
type ToggleOutcome string

const (
	// ToggleMarked means the day now holds a completed record.
	ToggleMarked ToggleOutcome = "marked"
	// ToggleUnmarked means the completed record was removed and the day is
	// back to the unmarked state.
	ToggleUnmarked ToggleOutcome = "unmarked"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Categories
	GetAllCategories() ([]models.Category, error)
	GetCategory(id string) (models.Category, error)
	AddCategory(models.Category) error
	UpdateCategory(models.Category) error
	CountCategories() (int, error)

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	ListHabits(HabitFilter) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	SetHabitArchived(id string, archived bool) error
	DeleteHabit(id string) error

	// Completions
	GetCompletion(habitID, date string) (models.Completion, error)
	AddCompletion(models.Completion) error
	ListCompletionsInRange(start, end string) ([]models.Completion, error)
	ListCompletionsForHabit(habitID, start, end string) ([]models.Completion, error)
	CompletedDates(habitID string) ([]string, error)
	ToggleCompletion(habitID, date, note string) (ToggleOutcome, error)
	SkipCompletion(habitID, date, note string) error

	// Utils
	GetConfigPath() string
}
