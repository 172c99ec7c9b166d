package models

// State is the lifecycle position derived from an order's flags.
type State string

const (
	StateDraft    State = "draft"
	StateSent     State = "sent"
	StateFinished State = "finished"
)

// Order is a table's order. Draft is true while items are still being added;
// Status becomes true once the order is finished. The two flags are
// independent.
type Order struct {
	Base
	Table  int     `gorm:"not null" json:"table"`
	Name   *string `gorm:"size:255" json:"name"`
	Draft  bool    `gorm:"not null;default:true;index:idx_orders_queue" json:"draft"`
	Status bool    `gorm:"not null;default:false;index:idx_orders_queue" json:"status"`
	Items  []Item  `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// Active reports whether the order belongs in the kitchen queue.
func (o Order) Active() bool {
	return !o.Draft && !o.Status
}

// State maps the flags to a single label. A finished order reports
// finished even if it was never sent.
func (o Order) State() State {
	switch {
	case o.Status:
		return StateFinished
	case o.Draft:
		return StateDraft
	default:
		return StateSent
	}
}

// Item is a line entry in an order.
type Item struct {
	Base
	Amount    int      `gorm:"not null" json:"amount"`
	OrderID   string   `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID string   `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Order     *Order   `json:"order,omitempty"`
	Product   *Product `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}
