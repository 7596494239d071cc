package cli

import (
	"fmt"

	"habitkeep/internal/storage"
)

type CategoryCmd struct {
	List CategoryListCmd `cmd:"" help:"List categories." default:"1"`
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	categories, err := ctx.Repos.Categories.List()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	for _, cat := range categories {
		habits, err := ctx.Repos.Habits.List(storage.HabitFilter{CategoryID: cat.ID})
		if err != nil {
			return err
		}
		fmt.Printf("%s %s  (%d active habits)  %s\n", cat.Icon, cat.Name, len(habits), cat.ID)
	}
	return nil
}
