package storage

import (
	"time"

	"github.com/google/uuid"
)

type categorySeed struct {
	name      string
	color     string
	icon      string
	sortOrder int
}

// Starter categories inserted on first launch. User-editable afterwards;
// never re-seeded and never auto-deleted.
var defaultCategorySeeds = []categorySeed{
	{"Health", "#EF4444", "💪", 0},
	{"Personal Growth", "#22C55E", "🌱", 1},
	{"Study", "#3B82F6", "📚", 2},
	{"Work", "#F59E0B", "💼", 3},
	{"Finance", "#8B5CF6", "💰", 4},
	{"Social", "#EC4899", "👥", 5},
}

// seedDefaultCategories inserts the starter set only when the categories
// table is empty. The count-based guard means renamed or deleted seed rows
// are never resurrected on later startups.
func (s *Store) seedDefaultCategories() error {
	count, err := s.CountCategories()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO categories (id, name, color, icon, sort_order, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, seed := range defaultCategorySeeds {
		if _, err := stmt.Exec(uuid.New().String(), seed.name, seed.color, seed.icon, seed.sortOrder, now, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
