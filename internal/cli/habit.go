package cli

import (
	"fmt"
	"strings"

	"habitkeep/internal/models"
	"habitkeep/internal/storage"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit (keeps its history)."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name         string `arg:"" help:"Habit name."`
	Category     string `help:"Category id or name." required:""`
	Frequency    string `help:"Cadence: daily, weekly, or custom." default:"daily"`
	Days         string `help:"Weekdays for custom cadence, e.g. 'mon,wed,fri'."`
	Description  string `help:"Optional description."`
	Icon         string `help:"Display icon." default:"✔"`
	Color        string `help:"Display color (hex)." default:"#3B82F6"`
	ReminderTime string `help:"Daily reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if _, err := ctx.Store.GetHabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	category, err := resolveCategory(ctx, c.Category)
	if err != nil {
		return err
	}

	var days []int
	if c.Days != "" {
		days, err = ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	habit := models.Habit{
		Name:            c.Name,
		Description:     c.Description,
		Icon:            c.Icon,
		Color:           c.Color,
		Frequency:       models.Frequency(c.Frequency),
		FrequencyDays:   days,
		CategoryID:      category.ID,
		ReminderEnabled: c.ReminderTime != "",
		ReminderTime:    c.ReminderTime,
	}

	created, err := ctx.Repos.Habits.Create(habit)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", created.Name, FormatFrequency(created))
	return nil
}

type HabitListCmd struct {
	Archived bool   `help:"Include archived habits."`
	Category string `help:"Only habits in this category (id or name)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	filter := storage.HabitFilter{IncludeArchived: c.Archived}
	if c.Category != "" {
		category, err := resolveCategory(ctx, c.Category)
		if err != nil {
			return err
		}
		filter.CategoryID = category.ID
	}

	habits, err := ctx.Repos.Habits.List(filter)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	categories, err := ctx.Repos.Categories.List()
	if err != nil {
		return err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	for _, h := range habits {
		status := ""
		if h.IsArchived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s %s  (%s, %s)%s\n", h.Icon, h.Name, FormatFrequency(h), categoryNames[h.CategoryID], status)
	}
	return nil
}

type HabitEditCmd struct {
	Habit        string `arg:"" help:"Habit name or id."`
	Name         string `help:"New name."`
	Category     string `help:"New category (id or name)."`
	Frequency    string `help:"New cadence: daily, weekly, or custom."`
	Days         string `help:"New weekdays for custom cadence."`
	Description  string `help:"New description."`
	Icon         string `help:"New display icon."`
	Color        string `help:"New display color (hex)."`
	ReminderTime string `help:"New reminder time (HH:MM)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	var patch models.HabitPatch
	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Description != "" {
		patch.Description = &c.Description
	}
	if c.Icon != "" {
		patch.Icon = &c.Icon
	}
	if c.Color != "" {
		patch.Color = &c.Color
	}
	if c.Frequency != "" {
		freq := models.Frequency(c.Frequency)
		patch.Frequency = &freq
	}
	if c.Days != "" {
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		patch.FrequencyDays = &days
	}
	if c.Category != "" {
		category, err := resolveCategory(ctx, c.Category)
		if err != nil {
			return err
		}
		patch.CategoryID = &category.ID
	}
	if c.ReminderTime != "" {
		enabled := true
		patch.ReminderEnabled = &enabled
		patch.ReminderTime = &c.ReminderTime
	}

	updated, err := ctx.Repos.Habits.Update(habit.ID, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s (%s)\n", updated.Name, FormatFrequency(updated))
	return nil
}

type HabitArchiveCmd struct {
	Habit     string `arg:"" help:"Habit name or id."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if err := ctx.Repos.Habits.Unarchive(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", habit.Name)
		return nil
	}

	if err := ctx.Repos.Habits.Archive(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `help:"Skip the automatic pre-delete backup."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	// Deleting removes history too; keep a snapshot unless told otherwise
	if !c.Force {
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Repos.Habits.Delete(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s (including its completion history)\n", habit.Name)
	return nil
}

// resolveCategory looks up a category by id first, then by case-insensitive
// name.
func resolveCategory(ctx *Context, ref string) (models.Category, error) {
	category, err := ctx.Repos.Categories.Get(ref)
	if err == nil {
		return category, nil
	}

	categories, err := ctx.Repos.Categories.List()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, ref) {
			return cat, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q not found", ref)
}
