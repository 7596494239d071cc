package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"habitkeep/internal/constants"
	"habitkeep/internal/storage"
)

func setupTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "habitkeep.db")
	store := storage.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	store.Close()

	return path
}

func TestCreateSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		t.Errorf("unexpected backup filename %q", name)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}

	// Snapshot must itself be a loadable database
	restored := storage.NewStore(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("backup is not a loadable database: %v", err)
	}
	defer restored.Close()

	count, err := restored.CountCategories()
	if err != nil {
		t.Fatalf("failed to count categories in backup: %v", err)
	}
	if count == 0 {
		t.Error("backup is missing seeded categories")
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error backing up a missing database")
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	if err := os.MkdirAll(m.Dir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	for _, stamp := range []string{"20250101-120000", "20250301-120000", "20250201-120000"} {
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(m.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	// Files that don't match the naming scheme are ignored
	if err := os.WriteFile(filepath.Join(m.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Error("backups not sorted newest first")
		}
	}
}

func TestListWithoutBackupDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "habitkeep.db"))

	backups, err := m.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotateKeepsRetentionLimit(t *testing.T) {
	dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	if err := os.MkdirAll(m.Dir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	for i := 0; i < constants.MaxBackups+5; i++ {
		stamp := "20250101-120000"
		name := constants.BackupFilePrefix + stamp + constants.BackupFileSuffix
		if i > 0 {
			name = constants.BackupFilePrefix + stamp + "-" + string(rune('0'+i/10)) + string(rune('0'+i%10)) + constants.BackupFileSuffix
		}
		if err := os.WriteFile(filepath.Join(m.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	if err := m.rotate(); err != nil {
		t.Fatalf("failed to rotate: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	snapshot, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	// Rename a category after the snapshot, then restore; the rename must
	// be rolled back.
	store := storage.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	categories, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	original := categories[0].Name
	renamed := categories[0]
	renamed.Name = "Renamed after snapshot"
	if err := store.UpdateCategory(renamed); err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	store.Close()

	if err := m.Restore(snapshot); err != nil {
		t.Fatalf("failed to restore: %v", err)
	}

	restored := storage.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("restored database does not load: %v", err)
	}
	defer restored.Close()

	got, err := restored.GetCategory(renamed.ID)
	if err != nil {
		t.Fatalf("failed to get category: %v", err)
	}
	if got.Name != original {
		t.Errorf("expected restore to roll back rename, got %q", got.Name)
	}

	// Restore keeps a pre-restore snapshot of the replaced database
	backups, err := m.List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a pre-restore snapshot, found %d backups", len(backups))
	}
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	dbPath := setupTestDB(t)
	m := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := m.Restore(bogus); err == nil {
		t.Error("expected error restoring an invalid snapshot")
	}

	// Live database untouched
	store := storage.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("live database was damaged: %v", err)
	}
	store.Close()
}
