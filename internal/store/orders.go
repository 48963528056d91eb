package store

import (
	"context"
	"database/sql"
	"fmt"

	"gemilang-store/internal/models"
)

// CreateOrder creates a new order
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, client_id, total_price, status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return s.db.GetContext(ctx, order, query,
		order.ID, order.UserID, order.ClientID, order.TotalPrice,
		order.Status, order.PaymentMethod)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUserID retrieves a principal's orders, newest first
func (s *Store) GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return orders, err
}

// GetAllOrders retrieves every order joined with client name and company,
// newest first, for the admin console
func (s *Store) GetAllOrders(ctx context.Context) ([]models.AdminOrder, error) {
	query := `
		SELECT o.*, COALESCE(c.name, '') AS client_name, COALESCE(c.company_name, '') AS client_company
		FROM orders o
		LEFT JOIN clients c ON c.id = o.client_id
		ORDER BY o.created_at DESC`

	var orders []models.AdminOrder
	err := s.db.SelectContext(ctx, &orders, query)
	return orders, err
}

// UpdateOrderStatus updates order status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	return nil
}

// MarkOrderForReconciliation flags an order whose cart clear failed at checkout
func (s *Store) MarkOrderForReconciliation(ctx context.Context, orderID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET needs_reconciliation = TRUE, updated_at = NOW() WHERE id = $1",
		orderID)
	return err
}

// ClearOrderReconciliation clears the reconciliation flag once the cart is clean
func (s *Store) ClearOrderReconciliation(ctx context.Context, orderID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET needs_reconciliation = FALSE, updated_at = NOW() WHERE id = $1",
		orderID)
	return err
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
