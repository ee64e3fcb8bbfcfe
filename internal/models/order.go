package models

import "time"

// Order status values. Customers may only cancel an order while it is
// still pending; admins may move an order to any valid status.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderFailed     = "failed"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderFailed:
		return true
	}
	return false
}

// Order is a placed order: a snapshot of the cart lines at checkout time
// plus the chosen shipping address. Orders are mutated only by status
// transitions after creation.
type Order struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Items           []CartLine `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
	ShippingAddress Address    `json:"shipping_address"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
