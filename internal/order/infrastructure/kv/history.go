// Package kv stores each user's recent orders in the key-value boundary,
// bounded to the most recent entries.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	"github.com/Samod99/NourishFoods-sub000/internal/order/domain"
)

// HistoryCap bounds the stored order history per user; the oldest order is
// evicted beyond it.
const HistoryCap = 10

type History struct {
	log   *slog.Logger
	store kvstore.Store
}

func NewHistory(log *slog.Logger, store kvstore.Store) *History {
	return &History{log: log, store: store}
}

func key(userID string) string { return "orders:" + userID }

func (h *History) load(ctx context.Context, userID string) ([]domain.Order, error) {
	raw, ok, err := h.store.Load(ctx, key(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: load orders for %s: %v", core.ErrPersistence, userID, err)
	}
	if !ok {
		return nil, nil
	}
	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("%w: decode orders for %s: %v", core.ErrPersistence, userID, err)
	}
	return orders, nil
}

func (h *History) persist(ctx context.Context, userID string, orders []domain.Order) error {
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%w: encode orders for %s: %v", core.ErrPersistence, userID, err)
	}
	if err := h.store.Save(ctx, key(userID), payload); err != nil {
		return fmt.Errorf("%w: save orders for %s: %v", core.ErrPersistence, userID, err)
	}
	return nil
}

// Save prepends the order and evicts beyond the cap.
func (h *History) Save(ctx context.Context, userID string, o domain.Order) error {
	orders, err := h.load(ctx, userID)
	if err != nil {
		return err
	}
	orders = append([]domain.Order{o}, orders...)
	if len(orders) > HistoryCap {
		orders = orders[:HistoryCap]
	}
	return h.persist(ctx, userID, orders)
}

func (h *History) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return h.load(ctx, userID)
}

func (h *History) Update(ctx context.Context, userID string, o domain.Order) error {
	orders, err := h.load(ctx, userID)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == o.ID {
			orders[i] = o
			return h.persist(ctx, userID, orders)
		}
	}
	return fmt.Errorf("order %s: %w", o.ID, core.ErrNotFound)
}
