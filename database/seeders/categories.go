package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
)

// DemoCategories is the starter menu created by SeedCategories.
var DemoCategories = []string{"Pizzas", "Bebidas", "Sobremesas"}

func init() {
	Register("categories", SeedCategories)
}

// SeedCategories creates DemoCategories, skipping names that already exist.
func SeedCategories(ctx context.Context, db *gorm.DB) error {
	for _, name := range DemoCategories {
		var c models.Category
		err := db.WithContext(ctx).
			Where(models.Category{Name: name}).
			FirstOrCreate(&c).Error
		if err != nil {
			return err
		}
	}
	return nil
}
