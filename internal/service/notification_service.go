package service

import (
	"context"
	"fmt"
	"time"

	"gemilang-store/internal/models"
	"gemilang-store/internal/util"

	"go.uber.org/zap"
)

// NotificationStore is the notification access the service needs. Satisfied
// by store.Store.
type NotificationStore interface {
	GetNotificationsByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	GetNotificationByID(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}

// UnreadCache caches per-principal unread counts. Satisfied by
// redisclient.Client.
type UnreadCache interface {
	GetUnreadCount(ctx context.Context, userID string) (int, bool, error)
	SetUnreadCount(ctx context.Context, userID string, count int, ttl time.Duration) error
	InvalidateUnreadCount(ctx context.Context, userID string) error
}

const unreadCacheTTL = time.Minute

// NotificationService handles the notifications view and the header badge
type NotificationService struct {
	store  NotificationStore
	cache  UnreadCache
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store NotificationStore, cache UnreadCache) *NotificationService {
	return &NotificationService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// List retrieves the principal's notifications, newest first
func (ns *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	ctx, span := util.StartSpan(ctx, "NotificationService.List")
	defer span.End()

	return ns.store.GetNotificationsByUserID(ctx, userID)
}

// MarkRead sets the read flag on a notification. Marking an already-read
// notification is a no-op, not an error; no write is issued.
func (ns *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	ctx, span := util.StartSpan(ctx, "NotificationService.MarkRead")
	defer span.End()

	notification, err := ns.store.GetNotificationByID(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to load notification: %w", err)
	}
	if notification.Read {
		return nil
	}

	if err := ns.store.MarkNotificationRead(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if err := ns.cache.InvalidateUnreadCount(ctx, userID); err != nil {
		ns.logger.Warn("Failed to invalidate unread cache",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	return nil
}

// UnreadCount returns the number of unread notifications, cached briefly for
// the header badge
func (ns *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	ctx, span := util.StartSpan(ctx, "NotificationService.UnreadCount")
	defer span.End()

	if count, hit, err := ns.cache.GetUnreadCount(ctx, userID); err == nil && hit {
		return count, nil
	}

	count, err := ns.store.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if err := ns.cache.SetUnreadCount(ctx, userID, count, unreadCacheTTL); err != nil {
		ns.logger.Warn("Failed to cache unread count",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	return count, nil
}
