package application

import (
	"context"

	"github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

// Store is the catalog collaborator. Reads cover the browse surface; the one
// write path folds a review value into the vendor's rating aggregate. The
// admin/seed path writes through the concrete implementation, not through the
// core.
type Store interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Vendors(ctx context.Context) ([]domain.Vendor, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Vendor(ctx context.Context, id string) (domain.Vendor, error)
	ProductsByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
	ProductsByCategory(ctx context.Context, c domain.Category) ([]domain.Product, error)
	RateVendor(ctx context.Context, id string, value float64) (domain.Vendor, error)
}
