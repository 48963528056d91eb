package service

import (
	"context"
	"fmt"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartStore is the cart access the service needs. Satisfied by store.Store.
type CartStore interface {
	AddCartItem(ctx context.Context, item *models.CartItem) error
	GetCartLines(ctx context.Context, userID string) ([]models.CartLine, error)
	UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID string) error
}

// CartService handles the customer cart
type CartService struct {
	store  CartStore
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store CartStore) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CartView is the cart as the customer sees it: the principal's lines plus
// the total, recomputed on every read.
type CartView struct {
	Items []models.CartLine `json:"items"`
	Total int64             `json:"total"`
}

// CartTotal sums quantity times unit price over the given lines
func CartTotal(lines []models.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// AddItem puts a part in the principal's cart
func (cs *CartService) AddItem(ctx context.Context, userID, partID string, quantity int) (*models.CartItem, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if partID == "" {
		return nil, fmt.Errorf("part_id is required: %w", models.ErrValidation)
	}
	if quantity < 1 {
		quantity = 1
	}

	item := &models.CartItem{
		ID:       uuid.New().String(),
		UserID:   userID,
		PartID:   partID,
		Quantity: quantity,
	}

	if err := cs.store.AddCartItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	util.CartItemsAddedTotal.Inc()
	cs.logger.Info("Item added to cart",
		zap.String("user_id", userID),
		zap.String("part_id", partID))

	return item, nil
}

// View retrieves the principal's cart with its current total
func (cs *CartService) View(ctx context.Context, userID string) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.View")
	defer span.End()

	lines, err := cs.store.GetCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	return &CartView{Items: lines, Total: CartTotal(lines)}, nil
}

// UpdateQuantity changes the quantity on a cart row and returns the refreshed
// view so the total reflects the change
func (cs *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.UpdateQuantity")
	defer span.End()

	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", models.ErrValidation)
	}

	if err := cs.store.UpdateCartQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	return cs.View(ctx, userID)
}

// RemoveItem deletes a cart row. An unknown id is an error and leaves the
// cart unchanged.
func (cs *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*CartView, error) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	if err := cs.store.RemoveCartItem(ctx, userID, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return cs.View(ctx, userID)
}
