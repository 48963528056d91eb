package service

import (
	"context"
	"errors"
	"testing"

	"gemilang-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartStore struct {
	lines   map[string][]models.CartLine
	addErr  error
	failOps bool
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: make(map[string][]models.CartLine)}
}

func (f *fakeCartStore) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.lines[item.UserID] = append(f.lines[item.UserID], models.CartLine{
		ID:       item.ID,
		PartID:   item.PartID,
		Quantity: item.Quantity,
	})
	return nil
}

func (f *fakeCartStore) GetCartLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	if f.failOps {
		return nil, errors.New("backend unavailable")
	}
	return f.lines[userID], nil
}

func (f *fakeCartStore) UpdateCartQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	for i, line := range f.lines[userID] {
		if line.ID == itemID {
			f.lines[userID][i].Quantity = quantity
			return nil
		}
	}
	return models.ErrNotFound
}

func (f *fakeCartStore) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	for i, line := range f.lines[userID] {
		if line.ID == itemID {
			f.lines[userID] = append(f.lines[userID][:i], f.lines[userID][i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func TestCartTotal(t *testing.T) {
	lines := []models.CartLine{
		{ID: "a", Price: 2999000, Quantity: 1},
		{ID: "b", Price: 749000, Quantity: 2},
	}

	assert.Equal(t, int64(4497000), CartTotal(lines))
}

func TestCartTotalEmpty(t *testing.T) {
	assert.Equal(t, int64(0), CartTotal(nil))
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	store := newFakeCartStore()
	store.lines["user-1"] = []models.CartLine{
		{ID: "item-1", Price: 2999000, Quantity: 1},
		{ID: "item-2", Price: 749000, Quantity: 1},
	}

	cs := NewCartService(store)

	view, err := cs.UpdateQuantity(context.Background(), "user-1", "item-2", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4497000), view.Total)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	cs := NewCartService(newFakeCartStore())

	_, err := cs.UpdateQuantity(context.Background(), "user-1", "item-1", 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRemoveUnknownItemLeavesCartUnchanged(t *testing.T) {
	store := newFakeCartStore()
	store.lines["user-1"] = []models.CartLine{
		{ID: "item-1", Price: 1000, Quantity: 1},
	}

	cs := NewCartService(store)

	_, err := cs.RemoveItem(context.Background(), "user-1", "no-such-item")
	assert.Error(t, err)

	view, err := cs.View(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	store := newFakeCartStore()
	cs := NewCartService(store)

	item, err := cs.AddItem(context.Background(), "user-1", "part-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddItemRequiresPart(t *testing.T) {
	cs := NewCartService(newFakeCartStore())

	_, err := cs.AddItem(context.Background(), "user-1", "", 1)
	assert.ErrorIs(t, err, models.ErrValidation)
}
