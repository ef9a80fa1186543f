package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/cart/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/identity"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	"github.com/Samod99/NourishFoods-sub000/internal/notify"
)

const anonymousSlot = "anonymous"

// savedLine is the persisted cart record.
type savedLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	VendorID    string          `json:"vendorId"`
	Quantity    int             `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Service owns the cart and persists it after every mutation, keyed by the
// signed-in user when there is one and by the anonymous slot otherwise.
type Service struct {
	log      *slog.Logger
	cart     *domain.Cart
	store    kvstore.Store
	identity identity.Provider
	notifier notify.Sink
}

func NewService(log *slog.Logger, store kvstore.Store, id identity.Provider, notifier notify.Sink) *Service {
	return &Service{
		log:      log,
		cart:     domain.New(),
		store:    store,
		identity: id,
		notifier: notifier,
	}
}

// Cart exposes the underlying cart for derived getters and change
// subscriptions. Mutations must go through the service so they persist.
func (s *Service) Cart() *domain.Cart { return s.cart }

func (s *Service) storageKey() string {
	if userID, ok := s.identity.CurrentUserID(); ok {
		return "cart:" + userID
	}
	return "cart:" + anonymousSlot
}

// Reload replaces the cart contents with the snapshot stored under the
// current identity's key. Called at startup and after every identity
// transition. Contents are not merged across identities: signing in loads the
// user's server cart, whatever the anonymous cart held.
func (s *Service) Reload(ctx context.Context) error {
	key := s.storageKey()
	raw, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: load cart %s: %v", core.ErrPersistence, key, err)
	}
	if !ok {
		s.cart.Restore(nil)
		return nil
	}
	var saved []savedLine
	if err := json.Unmarshal(raw, &saved); err != nil {
		return fmt.Errorf("%w: decode cart %s: %v", core.ErrPersistence, key, err)
	}
	lines := make([]domain.Line, 0, len(saved))
	for _, l := range saved {
		lines = append(lines, domain.Line{
			Product: catalog.Product{
				ID:       l.ProductID,
				Name:     l.ProductName,
				Price:    l.Price,
				VendorID: l.VendorID,
			},
			Quantity: l.Quantity,
		})
	}
	s.cart.Restore(lines)
	s.log.Info("cart reloaded", "key", key, "lines", len(lines))
	return nil
}

func (s *Service) save(ctx context.Context) error {
	lines := s.cart.Lines()
	saved := make([]savedLine, 0, len(lines))
	now := time.Now().UTC()
	for _, l := range lines {
		saved = append(saved, savedLine{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Price:       l.Product.Price,
			VendorID:    l.Product.VendorID,
			Quantity:    l.Quantity,
			Timestamp:   now,
		})
	}
	payload, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %v", core.ErrPersistence, err)
	}
	key := s.storageKey()
	if err := s.store.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("%w: save cart %s: %v", core.ErrPersistence, key, err)
	}
	return nil
}

func (s *Service) Add(ctx context.Context, p catalog.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", core.ErrValidation)
	}
	s.cart.Add(p, qty)
	if err := s.save(ctx); err != nil {
		return err
	}
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, "Added to cart", fmt.Sprintf("%s x%d", p.Name, qty))
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	s.cart.Remove(productID)
	return s.save(ctx)
}

func (s *Service) SetQuantity(ctx context.Context, productID string, qty int) error {
	s.cart.SetQuantity(productID, qty)
	return s.save(ctx)
}

func (s *Service) Increment(ctx context.Context, productID string) error {
	s.cart.Increment(productID)
	return s.save(ctx)
}

func (s *Service) Decrement(ctx context.Context, productID string) error {
	s.cart.Decrement(productID)
	return s.save(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	s.cart.Clear()
	return s.save(ctx)
}
