// Package doc adapts the document persistence boundary to the order store
// port for the authenticated path.
package doc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/docstore"
	"github.com/Samod99/NourishFoods-sub000/internal/order/domain"
)

const collection = "orders"

type Store struct {
	log  *slog.Logger
	docs docstore.Store
}

func NewStore(log *slog.Logger, docs docstore.Store) *Store {
	return &Store{log: log, docs: docs}
}

func toFields(o domain.Order) (map[string]any, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func fromFields(d docstore.Document) (domain.Order, error) {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return domain.Order{}, err
	}
	var o domain.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *Store) Save(ctx context.Context, userID string, o domain.Order) error {
	fields, err := toFields(o)
	if err != nil {
		return fmt.Errorf("%w: encode order %s: %v", core.ErrPersistence, o.ID, err)
	}
	if _, err := s.docs.Save(ctx, collection, o.ID, fields); err != nil {
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context, userID string) ([]domain.Order, error) {
	docs, err := s.docs.List(ctx, collection, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		o, err := fromFields(d)
		if err != nil {
			return nil, fmt.Errorf("%w: decode order %s: %v", core.ErrPersistence, d.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) Update(ctx context.Context, userID string, o domain.Order) error {
	return s.Save(ctx, userID, o)
}
