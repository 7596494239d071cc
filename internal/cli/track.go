package cli

import (
	"fmt"
	"time"

	"habitkeep/internal/constants"
	"habitkeep/internal/dateutil"
	"habitkeep/internal/models"
	"habitkeep/internal/schedule"
	"habitkeep/internal/storage"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note  string `help:"Optional note for this entry."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = dateutil.Key(dateutil.Today())
	}

	outcome, err := ctx.Repos.Completions.Toggle(habit.ID, date, c.Note)
	if err != nil {
		return err
	}

	switch outcome {
	case storage.ToggleMarked:
		fmt.Printf("Marked %q done for %s\n", habit.Name, date)
		n, err := ctx.Repos.Completions.CurrentStreak(habit.ID)
		if err == nil && n > 1 {
			fmt.Printf("🔥 %d day streak\n", n)
		}
	case storage.ToggleUnmarked:
		fmt.Printf("Unmarked %q for %s\n", habit.Name, date)
	}
	return nil
}

type SkipCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note  string `help:"Optional reason for skipping."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = dateutil.Key(dateutil.Today())
	}

	if err := ctx.Repos.Completions.Skip(habit.ID, date, c.Note); err != nil {
		return err
	}

	fmt.Printf("Skipped %q for %s\n", habit.Name, date)
	return nil
}

type StreakCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	n, err := ctx.Repos.Completions.CurrentStreak(habit.ID)
	if err != nil {
		return err
	}

	switch n {
	case 0:
		fmt.Printf("%s: no current streak\n", habit.Name)
	case 1:
		fmt.Printf("%s: 1 day streak\n", habit.Name)
	default:
		fmt.Printf("%s: %d day streak 🔥\n", habit.Name, n)
	}
	return nil
}

type TodayCmd struct {
	All bool `help:"Include habits not due today."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	habits, err := ctx.Repos.Habits.List(storage.HabitFilter{})
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := dateutil.Today()
	key := dateutil.Key(today)
	completions, err := ctx.Repos.Completions.ListInRange(key, key)
	if err != nil {
		return err
	}
	statusByHabit := make(map[string]models.CompletionStatus, len(completions))
	for _, comp := range completions {
		statusByHabit[comp.HabitID] = comp.Status
	}

	fmt.Printf("Habits for %s:\n\n", key)
	done, due := 0, 0
	for _, h := range habits {
		isDue := schedule.IsDueForHabit(h, today)
		if !isDue && !c.All {
			continue
		}

		marker := missedStyle.Render("[ ]")
		switch statusByHabit[h.ID] {
		case models.StatusCompleted:
			marker = completedStyle.Render("[✓]")
		case models.StatusSkipped:
			marker = skippedStyle.Render("[~]")
		}

		line := fmt.Sprintf("%s %s %s", marker, h.Icon, h.Name)
		if !isDue {
			line += missedStyle.Render("  (not due today)")
		}
		fmt.Println(line)

		if isDue {
			due++
			if statusByHabit[h.ID] == models.StatusCompleted {
				done++
			}
		}
	}

	fmt.Printf("\nCompleted: %d/%d due today\n", done, due)
	return nil
}

type LogCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Rows  int    `help:"Number of week rows to show, 0 for the default."`
}

// Run renders a calendar grid of the habit's recent history. Rows run Monday
// through Sunday and the window ends on the Sunday of the current week, so
// the bottom row always holds today.
func (c *LogCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	rows := c.Rows
	if rows <= 0 {
		rows = constants.DefaultGridRows
	}

	window := dateutil.GridWindow(dateutil.Today(), rows)
	start := dateutil.Key(window[0])
	end := dateutil.Key(window[len(window)-1])

	completions, err := ctx.Repos.Completions.ListForHabit(habit.ID, start, end)
	if err != nil {
		return err
	}
	statusByDate := make(map[string]models.CompletionStatus, len(completions))
	for _, comp := range completions {
		statusByDate[comp.Date] = comp.Status
	}

	fmt.Printf("%s %s  (%s)\n\n", habit.Icon, habit.Name, FormatFrequency(habit))

	header := "        "
	for _, label := range weekdayLabels {
		header += fmt.Sprintf(" %s", label)
	}
	fmt.Println(headerStyle.Render(header))

	for row := 0; row < rows; row++ {
		monday := window[row*7]
		line := monday.Format("Jan 02 ")
		for col := 0; col < 7; col++ {
			day := window[row*7+col]
			line += "  " + renderDayCell(habit, day, statusByDate) + " "
		}
		fmt.Println(line)
	}

	n, err := ctx.Repos.Completions.CurrentStreak(habit.ID)
	if err != nil {
		return err
	}
	fmt.Printf("\nCurrent streak: %d\n", n)
	return nil
}

func renderDayCell(habit models.Habit, day time.Time, statusByDate map[string]models.CompletionStatus) string {
	key := dateutil.Key(day)

	switch statusByDate[key] {
	case models.StatusCompleted:
		return completedStyle.Render("✓")
	case models.StatusSkipped:
		return skippedStyle.Render("~")
	}

	switch {
	case dateutil.IsFuture(day):
		return " "
	case dateutil.IsToday(day):
		return todayStyle.Render("◯")
	case !schedule.IsDueForHabit(habit, day):
		return missedStyle.Render(" ")
	default:
		return missedStyle.Render("·")
	}
}
