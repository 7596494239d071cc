package constants

const (
	AppName           = "habitkeep"
	DefaultConfigPath = "~/.config/habitkeep/habitkeep.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock format for reminder times (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitkeep-"
	BackupFileSuffix = ".db"

	// DefaultGridRows is the number of week rows shown by the history grid
	DefaultGridRows = 5
)
