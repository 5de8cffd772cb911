package model

import "time"

// Order status constants.
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// OrderItem is one purchased line inside an order.
type OrderItem struct {
	ID              string  `json:"id"`
	VendorProductID string  `json:"vendorProductId"`
	Title           string  `json:"title"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
}

// Order is a placed purchase with its line items.
type Order struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`

	// FetchedAt is client-side only, set when the order is cached locally.
	FetchedAt time.Time `json:"-"`
}
