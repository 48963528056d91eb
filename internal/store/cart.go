package store

import (
	"context"
	"fmt"

	"gemilang-store/internal/models"
)

// AddCartItem inserts a cart row for a principal. The part must exist; the
// foreign key surfaces as an error otherwise.
func (s *Store) AddCartItem(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart (id, user_id, part_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return s.db.GetContext(ctx, &item.CreatedAt, query,
		item.ID, item.UserID, item.PartID, item.Quantity)
}

// GetCartLines retrieves a principal's cart joined with part name, price and image
func (s *Store) GetCartLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	query := `
		SELECT c.id, c.part_id, c.quantity, p.name, p.price, p.image
		FROM cart c
		JOIN spare_parts p ON p.id = c.part_id
		WHERE c.user_id = $1
		ORDER BY c.created_at`

	var lines []models.CartLine
	err := s.db.SelectContext(ctx, &lines, query, userID)
	return lines, err
}

// UpdateCartQuantity updates the quantity on a cart row owned by userID
func (s *Store) UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE cart SET quantity = $1 WHERE id = $2 AND user_id = $3",
		quantity, itemID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// RemoveCartItem deletes a cart row owned by userID
func (s *Store) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}

// ClearCart deletes every cart row for a principal
func (s *Store) ClearCart(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	return err
}
