package controllers

import (
	"context"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/ctx"
)

type OrderService interface {
	CreateOrder(ctx context.Context, table int, name *string) (*models.Order, error)
	AddItem(ctx context.Context, orderID, productID string, amount int) (*models.Item, error)
	RemoveItem(ctx context.Context, itemID string) (*models.Item, error)
	SendOrder(ctx context.Context, orderID string) (*models.Order, error)
	FinishOrder(ctx context.Context, orderID string) (*models.Order, error)
	RemoveOrder(ctx context.Context, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	DetailOrder(ctx context.Context, orderID string) ([]models.Item, error)
}

type OrderController struct {
	orders OrderService
}

func NewOrderController(orders OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderInput struct {
	Table int     `json:"table" validate:"required,gte=1"`
	Name  *string `json:"name"  validate:"nullable,max=255"`
}

type orderIDInput struct {
	OrderID string `json:"order_id" validate:"required"`
}

type addItemInput struct {
	OrderID   string `json:"order_id"   validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Amount    int    `json:"amount"     validate:"required,gte=1"`
}

type itemIDInput struct {
	ItemID string `json:"item_id" validate:"required"`
}

// Create handles POST /order.
func (oc *OrderController) Create(c *ctx.Context) (any, error) {
	var in createOrderInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.CreateOrder(c.Context(), in.Table, in.Name)
}

// Remove handles DELETE /order.
func (oc *OrderController) Remove(c *ctx.Context) (any, error) {
	var in orderIDInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.RemoveOrder(c.Context(), in.OrderID)
}

// AddItem handles POST /order/add.
func (oc *OrderController) AddItem(c *ctx.Context) (any, error) {
	var in addItemInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.AddItem(c.Context(), in.OrderID, in.ProductID, in.Amount)
}

// RemoveItem handles DELETE /order/remove.
func (oc *OrderController) RemoveItem(c *ctx.Context) (any, error) {
	var in itemIDInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.RemoveItem(c.Context(), in.ItemID)
}

// Send handles PUT /order/send.
func (oc *OrderController) Send(c *ctx.Context) (any, error) {
	var in orderIDInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.SendOrder(c.Context(), in.OrderID)
}

// Finish handles PUT /order/finish.
func (oc *OrderController) Finish(c *ctx.Context) (any, error) {
	var in orderIDInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.FinishOrder(c.Context(), in.OrderID)
}

// List handles GET /orders.
func (oc *OrderController) List(c *ctx.Context) (any, error) {
	return oc.orders.ListOrders(c.Context())
}

// Detail handles GET /order/detail?order_id=.
func (oc *OrderController) Detail(c *ctx.Context) (any, error) {
	var in orderIDInput
	if err := c.Bind(&in); err != nil {
		return nil, err
	}
	return oc.orders.DetailOrder(c.Context(), in.OrderID)
}
