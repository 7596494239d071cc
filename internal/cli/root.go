package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitkeep/internal/backup"
	apperr "habitkeep/internal/errors"
	"habitkeep/internal/logger"
	"habitkeep/internal/models"
	"habitkeep/internal/repo"
	"habitkeep/internal/storage"
)

type Context struct {
	Store storage.Provider
	Repos *repo.Repos
}

var (
	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	missedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)
)

// PerformAutomaticBackup snapshots the database after a destructive command.
// Failures are logged, never surfaced; the user's operation already happened.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

// resolveHabit looks up a habit by id first, then by name.
func (c *Context) resolveHabit(ref string) (models.Habit, error) {
	habit, err := c.Store.GetHabit(ref)
	if err == nil {
		return habit, nil
	}
	habit, err = c.Store.GetHabitByName(ref)
	if err != nil {
		return models.Habit{}, apperr.NotFoundf("habit %q", ref)
	}
	return habit, nil
}

var weekdayNames = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseWeekdays parses a comma-separated weekday list into Monday=0 indices.
// Both names ("mon,wed,fri") and numbers ("0,2,4") are accepted.
func ParseWeekdays(s string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if d, ok := weekdayNames[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// FormatFrequency renders a habit's cadence for listings.
func FormatFrequency(h models.Habit) string {
	switch h.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return "weekly"
	case models.FrequencyCustom:
		var names []string
		for _, d := range h.FrequencyDays {
			if d >= 0 && d < len(weekdayLabels) {
				names = append(names, weekdayLabels[d])
			}
		}
		return strings.Join(names, ",")
	default:
		return "unknown"
	}
}
