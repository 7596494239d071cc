package repo

import (
	"time"

	"github.com/google/uuid"

	apperr "habitkeep/internal/errors"
	"habitkeep/internal/models"
	"habitkeep/internal/storage"
)

// Categories owns the category catalogue. Defaults are seeded at init;
// user-defined categories can be added alongside them.
type Categories struct {
	store    storage.Provider
	notifier *Notifier
}

func (c *Categories) List() ([]models.Category, error) {
	return c.store.GetAllCategories()
}

func (c *Categories) Get(id string) (models.Category, error) {
	return c.store.GetCategory(id)
}

// Create adds a user-defined category at the end of the sort order.
func (c *Categories) Create(category models.Category) (models.Category, error) {
	if category.Name == "" {
		return models.Category{}, apperr.Validationf("category name must not be empty")
	}

	count, err := c.store.CountCategories()
	if err != nil {
		return models.Category{}, err
	}

	now := time.Now()
	category.ID = uuid.New().String()
	category.SortOrder = count
	category.IsDefault = false
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := c.store.AddCategory(category); err != nil {
		return models.Category{}, err
	}

	c.notifier.Broadcast()
	return category, nil
}

// Update rewrites a category's display fields. Identity and the default
// marker are immutable.
func (c *Categories) Update(category models.Category) (models.Category, error) {
	if category.Name == "" {
		return models.Category{}, apperr.Validationf("category name must not be empty")
	}

	existing, err := c.store.GetCategory(category.ID)
	if err != nil {
		return models.Category{}, err
	}
	category.IsDefault = existing.IsDefault
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now()

	if err := c.store.UpdateCategory(category); err != nil {
		return models.Category{}, err
	}

	c.notifier.Broadcast()
	return category, nil
}
