package service

import (
	"context"
	"testing"
	"time"

	"gemilang-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationStore struct {
	notifications map[string]*models.Notification
	markCalls     int
	countCalls    int
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[string]*models.Notification)}
}

func (f *fakeNotificationStore) GetNotificationsByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) GetNotificationByID(ctx context.Context, userID, id string) (*models.Notification, error) {
	if n, ok := f.notifications[id]; ok && n.UserID == userID {
		copied := *n
		return &copied, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeNotificationStore) MarkNotificationRead(ctx context.Context, userID, id string) error {
	f.markCalls++
	if n, ok := f.notifications[id]; ok && n.UserID == userID {
		n.Read = true
	}
	return nil
}

func (f *fakeNotificationStore) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	f.countCalls++
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

type fakeUnreadCache struct {
	counts map[string]int
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{counts: make(map[string]int)}
}

func (f *fakeUnreadCache) GetUnreadCount(ctx context.Context, userID string) (int, bool, error) {
	count, ok := f.counts[userID]
	return count, ok, nil
}

func (f *fakeUnreadCache) SetUnreadCount(ctx context.Context, userID string, count int, ttl time.Duration) error {
	f.counts[userID] = count
	return nil
}

func (f *fakeUnreadCache) InvalidateUnreadCount(ctx context.Context, userID string) error {
	delete(f.counts, userID)
	return nil
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications["n-1"] = &models.Notification{ID: "n-1", UserID: "user-1"}

	ns := NewNotificationService(store, newFakeUnreadCache())
	ctx := context.Background()

	require.NoError(t, ns.MarkRead(ctx, "user-1", "n-1"))
	assert.Equal(t, 1, store.markCalls)

	// A second mark on an already-read notification issues no write and no error.
	require.NoError(t, ns.MarkRead(ctx, "user-1", "n-1"))
	assert.Equal(t, 1, store.markCalls)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	ns := NewNotificationService(newFakeNotificationStore(), newFakeUnreadCache())

	err := ns.MarkRead(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications["n-1"] = &models.Notification{ID: "n-1", UserID: "user-1"}

	ns := NewNotificationService(store, newFakeUnreadCache())

	err := ns.MarkRead(context.Background(), "user-2", "n-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUnreadCountUsesCache(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications["n-1"] = &models.Notification{ID: "n-1", UserID: "user-1"}
	store.notifications["n-2"] = &models.Notification{ID: "n-2", UserID: "user-1", Read: true}

	cache := newFakeUnreadCache()
	ns := NewNotificationService(store, cache)
	ctx := context.Background()

	count, err := ns.UnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.countCalls)

	count, err = ns.UnreadCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, store.countCalls)
}

func TestMarkReadInvalidatesUnreadCache(t *testing.T) {
	store := newFakeNotificationStore()
	store.notifications["n-1"] = &models.Notification{ID: "n-1", UserID: "user-1"}

	cache := newFakeUnreadCache()
	cache.counts["user-1"] = 1

	ns := NewNotificationService(store, cache)
	require.NoError(t, ns.MarkRead(context.Background(), "user-1", "n-1"))

	_, hit, _ := cache.GetUnreadCount(context.Background(), "user-1")
	assert.False(t, hit)
}
