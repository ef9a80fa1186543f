package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	VendorID        string          `json:"vendorId"`
	Price           decimal.Decimal `json:"price"`
	Category        Category        `json:"category"`
	Calories        int             `json:"calories"`
	PrepTimeMinutes int             `json:"prepTimeMinutes"`
	Available       bool            `json:"available"`
	Allergens       []string        `json:"allergens"`
	Ingredients     []string        `json:"ingredients"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (p Product) Validate() error {
	if p.ID == "" {
		return errors.New("product id required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if p.Calories < 0 {
		return errors.New("calories must not be negative")
	}
	return nil
}

// ContainsAllergen reports whether any of the given allergens appears in the
// product's allergen set.
func (p Product) ContainsAllergen(allergens []string) bool {
	for _, a := range allergens {
		for _, pa := range p.Allergens {
			if a == pa {
				return true
			}
		}
	}
	return false
}
