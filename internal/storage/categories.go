package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
)

func scanCategory(row interface{ Scan(...interface{}) error }) (models.Category, error) {
	var c models.Category
	var isDefault int
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.SortOrder, &isDefault, &createdAt, &updatedAt)
	if err != nil {
		return models.Category{}, err
	}

	c.IsDefault = isDefault != 0
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return c, nil
}

func (s *Store) CountCategories() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) GetCategory(id string) (models.Category, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, icon, sort_order, is_default, created_at, updated_at
		FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, apperr.NotFoundf("category %s", id)
		}
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, name, color, icon, sort_order, is_default, created_at, updated_at
		FROM categories ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) AddCategory(category models.Category) error {
	return s.UpdateCategory(category)
}

func (s *Store) UpdateCategory(category models.Category) error {
	isDefault := 0
	if category.IsDefault {
		isDefault = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO categories (id, name, color, icon, sort_order, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			icon = excluded.icon,
			sort_order = excluded.sort_order,
			is_default = excluded.is_default,
			updated_at = excluded.updated_at`,
		category.ID, category.Name, category.Color, category.Icon, category.SortOrder,
		isDefault, category.CreatedAt.Format(time.RFC3339), category.UpdatedAt.Format(time.RFC3339))

	return err
}
