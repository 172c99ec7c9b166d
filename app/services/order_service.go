package services

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
)

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	SetDraft(ctx context.Context, id string, draft bool) (*models.Order, error)
	SetStatus(ctx context.Context, id string, status bool) (*models.Order, error)
	Delete(ctx context.Context, id string) (*models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
}

type ItemStore interface {
	Create(ctx context.Context, it *models.Item) error
	Delete(ctx context.Context, id string) (*models.Item, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Item, error)
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

type Publisher interface {
	Publish(ctx context.Context, e event.Event)
}

// OrderService runs the order lifecycle. An order is created as a draft,
// sent to the kitchen by clearing draft and finished by setting status.
// Items can be added or removed in any state.
type OrderService struct {
	orders   OrderStore
	items    ItemStore
	products ProductFinder
	events   Publisher
}

// NewOrderService builds the service. events may be nil.
func NewOrderService(orders OrderStore, items ItemStore, products ProductFinder, events Publisher) *OrderService {
	return &OrderService{orders: orders, items: items, products: products, events: events}
}

func (s *OrderService) publish(ctx context.Context, name string, o *models.Order) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, event.Event{Name: name, OrderID: o.ID, Table: o.Table})
}

// CreateOrder opens a draft order for a table.
func (s *OrderService) CreateOrder(ctx context.Context, table int, name *string) (*models.Order, error) {
	if table <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "The table field is required.")
	}

	o := &models.Order{Table: table, Name: name, Draft: true, Status: false}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, event.OrderCreated, o)
	return o, nil
}

// AddItem appends a line to an existing order.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID string, amount int) (*models.Item, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "The amount must be at least 1.")
	}
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	it := &models.Item{OrderID: orderID, ProductID: productID, Amount: amount}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// RemoveItem deletes a line by id and returns it.
func (s *OrderService) RemoveItem(ctx context.Context, itemID string) (*models.Item, error) {
	return s.items.Delete(ctx, itemID)
}

// SendOrder clears the draft flag. Sending twice is harmless.
func (s *OrderService) SendOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.orders.SetDraft(ctx, orderID, false)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.OrderSent, o)
	return o, nil
}

// FinishOrder sets status. It does not require the order to be sent.
func (s *OrderService) FinishOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.orders.SetStatus(ctx, orderID, true)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.OrderFinished, o)
	return o, nil
}

// RemoveOrder deletes the order with its items and returns it.
func (s *OrderService) RemoveOrder(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.orders.Delete(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event.OrderRemoved, o)
	return o, nil
}

// ListOrders returns the kitchen queue: sent and unfinished, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListActive(ctx)
}

// DetailOrder returns the items of an order with product and order joined.
func (s *OrderService) DetailOrder(ctx context.Context, orderID string) ([]models.Item, error) {
	return s.items.ListByOrder(ctx, orderID)
}
