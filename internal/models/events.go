package models

import "time"

// Event types
const (
	EventTypeOrderPlaced        = "ORDER_PLACED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeCartClearFailed    = "CART_CLEAR_FAILED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published when checkout creates an order
type OrderPlacedEvent struct {
	BaseEvent
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	TotalPrice    int64  `json:"total_price"`
	PaymentMethod string `json:"payment_method"`
}

// OrderStatusChangedEvent published when an admin updates an order's status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// CartClearFailedEvent published when checkout could not clear the cart after
// creating the order. The reconcile worker re-attempts the clear.
type CartClearFailedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}
