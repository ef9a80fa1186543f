package application

import (
	"context"

	"github.com/Samod99/NourishFoods-sub000/internal/order/domain"
)

// Store persists a user's order history, most-recent-first.
type Store interface {
	// Save durably records a new order. Checkout clears the cart only
	// after Save returns nil.
	Save(ctx context.Context, userID string, o domain.Order) error
	// List returns the user's orders, most recent first.
	List(ctx context.Context, userID string) ([]domain.Order, error)
	// Update replaces a stored order after a status transition.
	Update(ctx context.Context, userID string, o domain.Order) error
}

// PurchaseConsumer receives the post-checkout event.
type PurchaseConsumer interface {
	ConsumePurchase(ctx context.Context, p domain.PurchasePlaced)
}
