package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/core"
)

// Store is an in-memory catalog keyed by product and vendor id. It stands in
// for the remote catalog collaborator and doubles as the test fixture.
type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	vendors  map[string]domain.Vendor
	order    []string
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		vendors:  make(map[string]domain.Vendor),
	}
}

func (s *Store) SeedProduct(p domain.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) SeedVendor(v domain.Vendor) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors[v.ID] = v
	return nil
}

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *Store) Vendors(ctx context.Context) ([]domain.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) Product(ctx context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, core.ErrNotFound)
	}
	return p, nil
}

func (s *Store) Vendor(ctx context.Context, id string) (domain.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vendors[id]
	if !ok {
		return domain.Vendor{}, fmt.Errorf("vendor %s: %w", id, core.ErrNotFound)
	}
	return v, nil
}

// RateVendor folds one review value into the vendor's rating aggregate and
// returns the updated record.
func (s *Store) RateVendor(ctx context.Context, id string, value float64) (domain.Vendor, error) {
	if value < 0 || value > 5 {
		return domain.Vendor{}, fmt.Errorf("%w: rating must be between 0 and 5", core.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vendors[id]
	if !ok {
		return domain.Vendor{}, fmt.Errorf("vendor %s: %w", id, core.ErrNotFound)
	}
	v.AddRating(value)
	s.vendors[id] = v
	return v, nil
}

func (s *Store) ProductsByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, id := range s.order {
		if p := s.products[id]; p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ProductsByCategory(ctx context.Context, c domain.Category) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, id := range s.order {
		if p := s.products[id]; p.Category == c {
			out = append(out, p)
		}
	}
	return out, nil
}
