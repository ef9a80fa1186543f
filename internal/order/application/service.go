package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cartapp "github.com/Samod99/NourishFoods-sub000/internal/cart/application"
	catalogapp "github.com/Samod99/NourishFoods-sub000/internal/catalog/application"
	"github.com/Samod99/NourishFoods-sub000/internal/core"
	"github.com/Samod99/NourishFoods-sub000/internal/identity"
	"github.com/Samod99/NourishFoods-sub000/internal/notify"
	"github.com/Samod99/NourishFoods-sub000/internal/order/domain"
)

// estimatedDeliveryInterval is the fixed checkout ETA unless an external ETA
// source overrides it.
const estimatedDeliveryInterval = 30 * time.Minute

const anonymousUser = "anonymous"

var ErrEmptyCart = errors.New("cart is empty")

// Assembler converts a cart snapshot into an immutable order record and owns
// the order lifecycle.
type Assembler struct {
	log       *slog.Logger
	cart      *cartapp.Service
	catalog   catalogapp.Store
	store     Store
	identity  identity.Provider
	notifier  notify.Sink
	consumers []PurchaseConsumer
	now       func() time.Time
}

func NewAssembler(log *slog.Logger, cart *cartapp.Service, catalog catalogapp.Store, store Store, id identity.Provider, notifier notify.Sink) *Assembler {
	return &Assembler{
		log:      log,
		cart:     cart,
		catalog:  catalog,
		store:    store,
		identity: id,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock overrides the time source; tests use a fixed clock.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Subscribe registers a consumer for post-checkout purchase events.
func (a *Assembler) Subscribe(c PurchaseConsumer) {
	a.consumers = append(a.consumers, c)
}

func (a *Assembler) userID() string {
	if id, ok := a.identity.CurrentUserID(); ok {
		return id
	}
	return anonymousUser
}

// Checkout snapshots the cart into an order, persists it, then clears the
// cart. If persistence fails the cart is left untouched and the error is
// surfaced; either the order is durably recorded and the cart cleared, or
// neither happens.
func (a *Assembler) Checkout(ctx context.Context, deliveryAddress, paymentMethod string) (domain.Order, error) {
	cart := a.cart.Cart()
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("%w: %v", core.ErrValidation, ErrEmptyCart)
	}

	now := a.now()
	eta := now.Add(estimatedDeliveryInterval)
	o := domain.Order{
		ID:                    uuid.NewString(),
		UserID:                a.userID(),
		Items:                 make([]domain.Line, 0, len(lines)),
		Total:                 cart.Total(),
		DeliveryFee:           cart.DeliveryFee(),
		Status:                domain.StatusPending,
		Date:                  now,
		DeliveryAddress:       deliveryAddress,
		PaymentMethod:         paymentMethod,
		EstimatedDeliveryTime: &eta,
	}

	event := domain.PurchasePlaced{OrderID: o.ID, UserID: o.UserID, At: now}
	vendorNames := map[string]string{}
	for _, l := range lines {
		name, ok := vendorNames[l.Product.VendorID]
		if !ok {
			if v, err := a.catalog.Vendor(ctx, l.Product.VendorID); err == nil {
				name = v.Name
			}
			vendorNames[l.Product.VendorID] = name
		}
		o.Items = append(o.Items, domain.Line{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
			VendorName:  name,
		})
		event.Lines = append(event.Lines, domain.PurchaseLine{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Category:    string(l.Product.Category),
			Calories:    l.Product.Calories,
			Quantity:    l.Quantity,
		})
	}

	if err := a.store.Save(ctx, o.UserID, o); err != nil {
		a.log.Error("order save failed, cart preserved", "order", o.ID, "err", err)
		return domain.Order{}, fmt.Errorf("%w: save order: %v", core.ErrPersistence, err)
	}

	if err := a.cart.Clear(ctx); err != nil {
		// The order stands; an unsaved empty cart only risks resurrecting
		// old lines on next reload.
		a.log.Warn("cart clear failed after checkout", "order", o.ID, "err", err)
	}

	for _, c := range a.consumers {
		c.ConsumePurchase(ctx, event)
	}
	if a.notifier != nil {
		_ = a.notifier.Notify(ctx, "Order placed", fmt.Sprintf("Order %s is being prepared", o.ID))
	}
	a.log.Info("order placed", "order", o.ID, "user", o.UserID, "total", o.Total.String())
	return o, nil
}

// History returns the current user's orders, most recent first.
func (a *Assembler) History(ctx context.Context) ([]domain.Order, error) {
	return a.store.List(ctx, a.userID())
}

// UpdateStatus applies a lifecycle transition to a stored order.
func (a *Assembler) UpdateStatus(ctx context.Context, orderID string, to domain.Status) (domain.Order, error) {
	userID := a.userID()
	orders, err := a.store.List(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range orders {
		if o.ID != orderID {
			continue
		}
		if err := o.Transition(to, a.now()); err != nil {
			return domain.Order{}, fmt.Errorf("%w: %v", core.ErrValidation, err)
		}
		if err := a.store.Update(ctx, userID, o); err != nil {
			return domain.Order{}, fmt.Errorf("%w: update order: %v", core.ErrPersistence, err)
		}
		return o, nil
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", orderID, core.ErrNotFound)
}

// Cancel marks a non-terminal order cancelled.
func (a *Assembler) Cancel(ctx context.Context, orderID string) (domain.Order, error) {
	return a.UpdateStatus(ctx, orderID, domain.StatusCancelled)
}
