package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/orm"
)

const (
	categoriesKey = "categories:all"
	categoriesTTL = 5 * time.Minute
)

// Cache is the read-through cache used for listings. *cache.Store
// satisfies it, including when nil.
type Cache interface {
	orm.Cacher
	Forget(ctx context.Context, keys ...string) error
}

type CategoryRepository struct {
	q     *orm.Query
	cache Cache
}

// NewCategoryRepository builds the repository. cache may be nil.
func NewCategoryRepository(db *gorm.DB, cache Cache) *CategoryRepository {
	return &CategoryRepository{q: orm.New(db, cache), cache: cache}
}

// Create persists c and drops the cached listing.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if err := r.q.WithContext(ctx).Create(c); err != nil {
		return classify(err, "")
	}
	if r.cache != nil {
		if err := r.cache.Forget(ctx, categoriesKey); err != nil {
			logger.WithCtx(ctx).Warn("category cache invalidation failed", "error", err)
		}
	}
	return nil
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.q.WithContext(ctx).Where("id = ?", id).First(&c); err != nil {
		return nil, classify(err, "Category not found")
	}
	return &c, nil
}

// List returns every category ordered by name, read through the cache.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.q.WithContext(ctx).
		Model(&models.Category{}).
		Order("name asc").
		Cache(ctx, categoriesKey, categoriesTTL, &categories)
	if err != nil {
		return nil, classify(err, "")
	}
	return categories, nil
}
