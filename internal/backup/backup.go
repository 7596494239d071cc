// Package backup creates and restores point-in-time snapshots of the habit
// database. Snapshots are made with VACUUM INTO so a live database is copied
// consistently, and old snapshots are rotated out past a retention limit.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"habitkeep/internal/constants"
	apperr "habitkeep/internal/errors"
	"habitkeep/internal/logger"
)

const timestampFormat = "20060102-150405"

// Info describes one snapshot file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager owns the snapshot directory next to the database file.
type Manager struct {
	dbPath    string
	backupDir string
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
	}
}

// Dir returns the snapshot directory path.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the database and rotates old snapshots past the retention
// limit. It returns the path of the new snapshot.
func (m *Manager) Create() (string, error) {
	return m.create(true)
}

func (m *Manager) create(rotate bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", apperr.Storagef("failed to create backup directory: %v", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", apperr.Storagef("database does not exist: %s", m.dbPath)
	}

	path, err := m.nextBackupPath(time.Now())
	if err != nil {
		return "", err
	}

	if err := m.snapshot(path); err != nil {
		return "", apperr.Storagef("failed to snapshot database: %v", err)
	}

	if rotate {
		if err := m.rotate(); err != nil {
			// A full snapshot already exists, keep it even if rotation failed
			logger.Warn("failed to rotate old backups", "error", err)
		}
	}

	return path, nil
}

// nextBackupPath picks an unused snapshot filename for the given moment,
// appending a counter when several snapshots land in the same second.
func (m *Manager) nextBackupPath(now time.Time) (string, error) {
	stamp := now.Format(timestampFormat)
	for counter := 0; counter <= 100; counter++ {
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if counter > 0 {
			name = fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, constants.BackupFileSuffix)
		}
		path := filepath.Join(m.backupDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", apperr.Storagef("failed to generate unique backup filename")
}

// snapshot copies the database into destPath with VACUUM INTO, falling back
// to a plain file copy when the driver rejects the statement.
func (m *Manager) snapshot(destPath string) error {
	src, err := sql.Open("sqlite", "file:"+m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, apperr.Storagef("failed to read backup directory: %v", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
		// Strip a trailing "-N" uniqueness counter
		if idx := strings.LastIndex(stamp, "-"); idx > len(timestampFormat)-1 {
			stamp = stamp[:idx]
		}
		ts, err := time.Parse(timestampFormat, stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{Path: path, Timestamp: ts, Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the live database with the given snapshot. The current
// database is snapshotted first so a bad restore can itself be undone, and
// the swap happens through a temp file and rename. The store must be closed
// before calling this.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return apperr.Storagef("backup file does not exist: %s", backupPath)
	}
	if err := verifySnapshot(backupPath); err != nil {
		return apperr.Storagef("backup file is corrupted or invalid: %v", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		pre, err := m.create(false)
		if err != nil {
			return apperr.Storagef("failed to back up current database before restore: %v", err)
		}
		logger.Info("saved pre-restore snapshot", "path", pre)
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return apperr.Storagef("failed to copy backup file: %v", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		os.Remove(tempPath)
		return apperr.Storagef("failed to restore database: %v", err)
	}

	return nil
}

func verifySnapshot(path string) error {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dest.Close()

	if _, err := dest.ReadFrom(source); err != nil {
		return err
	}
	return dest.Sync()
}
