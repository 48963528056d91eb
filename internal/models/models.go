package models

import (
	"time"

	"github.com/lib/pq"
)

// Client represents a customer profile. The row id equals the principal id of
// the account it belongs to.
type Client struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PhoneNumber  string    `db:"phone_number" json:"phone_number"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	Address      string    `db:"address" json:"address"`
	AvatarURL    string    `db:"avatar_url" json:"avatar_url"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SparePart represents a catalog entry
type SparePart struct {
	ID                 string         `db:"id" json:"id"`
	Name               string         `db:"name" json:"name"`
	PartNumber         string         `db:"part_number" json:"part_number"`
	Category           string         `db:"category" json:"category"`
	Price              int64          `db:"price" json:"price"`
	StockAvailability  int            `db:"stock_availability" json:"stock_availability"`
	CompatibleVehicles pq.StringArray `db:"compatible_vehicles" json:"compatible_vehicles"`
	Description        string         `db:"description" json:"description"`
	Specifications     Specifications `db:"specifications" json:"specifications"`
	Image              string         `db:"image" json:"image"`
	AdditionalImages   pq.StringArray `db:"additional_images" json:"additional_images"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}

// CartItem represents a row in a customer's cart
type CartItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	PartID    string    `db:"part_id" json:"part_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartLine is a cart row joined with the part fields the cart view renders.
type CartLine struct {
	ID       string `db:"id" json:"id"`
	PartID   string `db:"part_id" json:"part_id"`
	Quantity int    `db:"quantity" json:"quantity"`
	Name     string `db:"name" json:"name"`
	Price    int64  `db:"price" json:"price"`
	Image    string `db:"image" json:"image"`
}

// Order represents a customer order. UserID and ClientID are written with the
// same principal id at checkout; they stay separate columns so an
// order-on-behalf-of flow only needs a new write path.
type Order struct {
	ID                   string    `db:"id" json:"id"`
	UserID               string    `db:"user_id" json:"user_id"`
	ClientID             string    `db:"client_id" json:"client_id"`
	TotalPrice           int64     `db:"total_price" json:"total_price"`
	Status               string    `db:"status" json:"status"`
	PaymentMethod        string    `db:"payment_method" json:"payment_method"`
	NeedsReconciliation  bool      `db:"needs_reconciliation" json:"-"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// AdminOrder is an order joined with the client fields the admin console shows.
type AdminOrder struct {
	Order
	ClientName    string `db:"client_name" json:"client_name"`
	ClientCompany string `db:"client_company" json:"client_company"`
}

// Notification represents a message to a principal
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Admin is an allow-list entry. Only allow-listed emails may attempt admin login.
type Admin struct {
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Order statuses
const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusRejected = "rejected"
)

// ValidOrderStatusUpdate reports whether an admin may move an order to status.
// Only pending orders transition, and only to accepted or rejected.
func ValidOrderStatusUpdate(status string) bool {
	return status == OrderStatusAccepted || status == OrderStatusRejected
}

// ProcessedEvent for worker idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
