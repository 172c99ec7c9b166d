package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/orm"
)

type ItemRepository struct {
	q *orm.Query
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{q: orm.New(db, nil)}
}

func (r *ItemRepository) Create(ctx context.Context, it *models.Item) error {
	return classify(r.q.WithContext(ctx).Create(it), "")
}

// Delete removes an item by id and returns it.
func (r *ItemRepository) Delete(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.q.WithContext(ctx).Where("id = ?", id).First(&it); err != nil {
		return nil, classify(err, "Item not found")
	}
	if err := r.q.WithContext(ctx).Delete(&it); err != nil {
		return nil, classify(err, "")
	}
	return &it, nil
}

// ListByOrder returns the items of an order with product and order loaded.
func (r *ItemRepository) ListByOrder(ctx context.Context, orderID string) ([]models.Item, error) {
	items := []models.Item{}
	err := r.q.WithContext(ctx).
		Where("order_id = ?", orderID).
		Preload("Product").
		Preload("Order").
		Order("created_at asc").
		Get(&items)
	if err != nil {
		return nil, classify(err, "")
	}
	return items, nil
}
