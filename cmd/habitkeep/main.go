package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"habitkeep/internal/cli"
	"habitkeep/internal/constants"
	"habitkeep/internal/logger"
	"habitkeep/internal/repo"
	"habitkeep/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"string" default:"~/.config/habitkeep/habitkeep.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize habitkeep storage."`
	Migrate cli.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Today  cli.TodayCmd  `cmd:"" help:"Show today's habit status." default:"1"`
	Done   cli.DoneCmd   `cmd:"" help:"Toggle a habit done for a day."`
	Skip   cli.SkipCmd   `cmd:"" help:"Mark a habit as skipped for a day."`
	Streak cli.StreakCmd `cmd:"" help:"Show a habit's current streak."`
	Log    cli.LogCmd    `cmd:"" help:"Show a habit's history grid."`

	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Category cli.CategoryCmd `cmd:"" help:"Manage categories."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits, skips, and streaks from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dbPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(dbPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.NewStore(dbPath)
	appCtx := &cli.Context{
		Store: store,
		Repos: repo.New(store),
	}

	// Init and migrate open the database themselves
	if cmd := commandName(ctx); cmd != "init" && cmd != "migrate" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commandName(ctx *kong.Context) string {
	if ctx.Selected() == nil {
		return ""
	}
	return ctx.Selected().Name
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
