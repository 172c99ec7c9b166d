package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/orm"
)

const orderNotFound = "Order not found"

type OrderRepository struct {
	q *orm.Query
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{q: orm.New(db, nil)}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return classify(r.q.WithContext(ctx).Create(o), "")
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.q.WithContext(ctx).Where("id = ?", id).First(&o); err != nil {
		return nil, classify(err, orderNotFound)
	}
	return &o, nil
}

// SetDraft writes the draft flag and returns the updated order.
func (r *OrderRepository) SetDraft(ctx context.Context, id string, draft bool) (*models.Order, error) {
	return r.setFlag(ctx, id, "draft", draft, func(o *models.Order) { o.Draft = draft })
}

// SetStatus writes the status flag and returns the updated order.
func (r *OrderRepository) SetStatus(ctx context.Context, id string, status bool) (*models.Order, error) {
	return r.setFlag(ctx, id, "status", status, func(o *models.Order) { o.Status = status })
}

func (r *OrderRepository) setFlag(ctx context.Context, id, column string, value bool, apply func(*models.Order)) (*models.Order, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.q.WithContext(ctx).Model(o).Update(column, value); err != nil {
		return nil, classify(err, orderNotFound)
	}
	apply(o)
	return o, nil
}

// Delete removes the order and its items in one transaction and returns the
// deleted order.
func (r *OrderRepository) Delete(ctx context.Context, id string) (*models.Order, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.q.WithContext(ctx).Transaction(func(tx *orm.Query) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.Item{}); err != nil {
			return err
		}
		return tx.Delete(o)
	})
	if err != nil {
		return nil, classify(err, orderNotFound)
	}
	return o, nil
}

// ListActive returns orders that were sent and not finished, newest first.
func (r *OrderRepository) ListActive(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.q.WithContext(ctx).
		Where("draft = ? AND status = ?", false, false).
		Order("created_at desc").
		Get(&orders)
	if err != nil {
		return nil, classify(err, "")
	}
	return orders, nil
}
