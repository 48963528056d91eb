package service

import (
	"context"
	"fmt"
	"time"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutStore is the storage access checkout needs. Satisfied by store.Store.
type CheckoutStore interface {
	GetCartLines(ctx context.Context, userID string) ([]models.CartLine, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	ClearCart(ctx context.Context, userID string) error
	MarkOrderForReconciliation(ctx context.Context, orderID string) error
}

// CheckoutPublisher publishes checkout events. Satisfied by broker.EventPublisher.
type CheckoutPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishCartClearFailed(ctx context.Context, event *models.CartClearFailedEvent) error
}

// CheckoutService turns the current cart into an order. Order creation and
// cart clearing are two separate writes; the clear is retried once and a
// still-dirty cart marks the order for reconciliation instead of failing the
// checkout, so the order never silently coexists with a stale cart.
type CheckoutService struct {
	store  CheckoutStore
	events CheckoutPublisher
	logger *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(store CheckoutStore, events CheckoutPublisher) *CheckoutService {
	return &CheckoutService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// Summary returns the total the checkout page shows, computed from the
// current cart
func (cs *CheckoutService) Summary(ctx context.Context, userID string) (int64, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Summary")
	defer span.End()

	lines, err := cs.store.GetCartLines(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return CartTotal(lines), nil
}

// PlaceOrder creates an order from the cart's current contents and clears the
// cart. The total is frozen at this instant and never recomputed.
func (cs *CheckoutService) PlaceOrder(ctx context.Context, userID, paymentMethod string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	if paymentMethod == "" {
		return nil, fmt.Errorf("payment method is required: %w", models.ErrValidation)
	}

	lines, err := cs.store.GetCartLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", models.ErrValidation)
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		ClientID:      userID,
		TotalPrice:    CartTotal(lines),
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}

	if err := cs.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersPlacedTotal.Inc()
	cs.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Int64("total_price", order.TotalPrice))

	if err := cs.store.ClearCart(ctx, userID); err != nil {
		cs.logger.Warn("Cart clear failed, retrying once",
			zap.String("order_id", order.ID),
			zap.Error(err))

		if err := cs.store.ClearCart(ctx, userID); err != nil {
			cs.compensateCartClear(ctx, order)
		}
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:       order.ID,
		UserID:        userID,
		TotalPrice:    order.TotalPrice,
		PaymentMethod: paymentMethod,
	}

	if err := cs.events.PublishOrderPlaced(ctx, event); err != nil {
		cs.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}

	return order, nil
}

// compensateCartClear records that the order exists with a non-empty cart so
// the reconcile worker can finish the clear. The order itself survives.
func (cs *CheckoutService) compensateCartClear(ctx context.Context, order *models.Order) {
	util.CartClearFailuresTotal.Inc()
	cs.logger.Error("Cart clear failed after order creation, marking for reconciliation",
		zap.String("order_id", order.ID))

	if err := cs.store.MarkOrderForReconciliation(ctx, order.ID); err != nil {
		cs.logger.Error("Failed to mark order for reconciliation",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	event := &models.CartClearFailedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCartClearFailed,
			Timestamp: time.Now(),
		},
		OrderID: order.ID,
		UserID:  order.UserID,
	}

	if err := cs.events.PublishCartClearFailed(ctx, event); err != nil {
		cs.logger.Error("Failed to publish CartClearFailed event", zap.Error(err))
	}
}
