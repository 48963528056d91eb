package worker

import (
	"context"
	"fmt"
	"log"

	"gemilang-store/internal/broker"
	"gemilang-store/internal/models"
	"gemilang-store/internal/redisclient"
	"gemilang-store/internal/store"
	"gemilang-store/internal/util"

	"github.com/google/uuid"
)

// NotificationWorker writes a notification row for every order event, the
// server-side counterpart of the storefront's notifications view.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	cache        *redisclient.Client
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, st *store.Store, cache *redisclient.Client) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		store:    st,
		cache:    cache,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	return w.notify(ctx, event.EventID, event.EventType, event.UserID,
		OrderPlacedMessage(event.OrderID))
}

func (w *NotificationWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	return w.notify(ctx, event.EventID, event.EventType, event.UserID,
		OrderStatusMessage(event.OrderID, event.NewStatus))
}

// notify writes one notification per event, deduplicated by event id so a
// redelivered message never produces a second row.
func (w *NotificationWorker) notify(ctx context.Context, eventID, eventType, userID, message string) error {
	processed, err := w.store.IsEventProcessed(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to check event: %w", err)
	}
	if processed {
		return nil
	}

	notification := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Message: message,
	}

	if err := w.store.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	util.NotificationsCreatedTotal.Inc()

	if err := w.store.MarkEventProcessed(ctx, eventID, eventType); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}

	if err := w.cache.InvalidateUnreadCount(ctx, userID); err != nil {
		log.Printf("Failed to invalidate unread cache for %s: %v", userID, err)
	}

	return nil
}

// OrderPlacedMessage is the notification text for a freshly placed order
func OrderPlacedMessage(orderID string) string {
	return fmt.Sprintf("Your order %s has been received and is pending confirmation.", shortID(orderID))
}

// OrderStatusMessage is the notification text for an admin status update
func OrderStatusMessage(orderID, status string) string {
	return fmt.Sprintf("Your order %s has been %s.", shortID(orderID), status)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ReconcileWorker finishes checkouts whose cart clear failed: it re-attempts
// the clear and drops the order's reconciliation flag once the cart is empty.
type ReconcileWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
}

// NewReconcileWorker creates a new reconcile worker
func NewReconcileWorker(consumer *broker.Consumer, st *store.Store) *ReconcileWorker {
	w := &ReconcileWorker{
		consumer: consumer,
		store:    st,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnCartClearFailed(w.handleCartClearFailed)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *ReconcileWorker) Start(ctx context.Context) error {
	log.Println("Starting reconcile worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *ReconcileWorker) Stop() error {
	log.Println("Stopping reconcile worker...")
	return w.consumer.Close()
}

// handleCartClearFailed re-attempts the clear. Returning the error leaves the
// message uncommitted, so a still-failing clear is retried on redelivery.
func (w *ReconcileWorker) handleCartClearFailed(ctx context.Context, event *models.CartClearFailedEvent) error {
	if err := w.store.ClearCart(ctx, event.UserID); err != nil {
		return fmt.Errorf("reconcile clear failed for order %s: %w", event.OrderID, err)
	}

	if err := w.store.ClearOrderReconciliation(ctx, event.OrderID); err != nil {
		return fmt.Errorf("failed to clear reconciliation flag: %w", err)
	}

	log.Printf("Reconciled cart for order %s", event.OrderID)
	return nil
}
