package kv

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	"github.com/Samod99/NourishFoods-sub000/internal/order/domain"
	"github.com/Samod99/NourishFoods-sub000/pkg/logging"
)

func TestSaveIsMostRecentFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(logging.New("error"), kvstore.NewMemory())

	for i := 0; i < HistoryCap+3; i++ {
		o := domain.Order{ID: fmt.Sprintf("o%d", i), UserID: "u1", Status: domain.StatusPending}
		require.NoError(t, h.Save(ctx, "u1", o))
	}

	orders, err := h.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, HistoryCap)
	// Newest first; the oldest three were evicted.
	assert.Equal(t, fmt.Sprintf("o%d", HistoryCap+2), orders[0].ID)
	assert.Equal(t, "o3", orders[len(orders)-1].ID)
}

func TestUpdateReplacesStoredOrder(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(logging.New("error"), kvstore.NewMemory())

	o := domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending}
	require.NoError(t, h.Save(ctx, "u1", o))

	o.Status = domain.StatusConfirmed
	require.NoError(t, h.Update(ctx, "u1", o))

	orders, err := h.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, orders[0].Status)
}

func TestUpdateUnknownOrder(t *testing.T) {
	h := NewHistory(logging.New("error"), kvstore.NewMemory())
	err := h.Update(context.Background(), "u1", domain.Order{ID: "ghost"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestHistoriesAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(logging.New("error"), kvstore.NewMemory())

	require.NoError(t, h.Save(ctx, "u1", domain.Order{ID: "a", UserID: "u1"}))
	require.NoError(t, h.Save(ctx, "u2", domain.Order{ID: "b", UserID: "u2"}))

	orders, err := h.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "a", orders[0].ID)
}
