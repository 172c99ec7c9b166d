package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/orm"
)

type ProductRepository struct {
	q *orm.Query
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{q: orm.New(db, nil)}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return classify(r.q.WithContext(ctx).Create(p), "")
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.q.WithContext(ctx).Where("id = ?", id).First(&p); err != nil {
		return nil, classify(err, "Product not found")
	}
	return &p, nil
}

// ListByCategory returns the products of one category, oldest first.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.q.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at asc").
		Get(&products)
	if err != nil {
		return nil, classify(err, "")
	}
	return products, nil
}
