package memory

import (
	"github.com/shopspring/decimal"

	"github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
	"github.com/Samod99/NourishFoods-sub000/internal/geo"
)

// SeedSample fills the store with a small demo catalog so the service is
// browsable without an upstream feed.
func SeedSample(s *Store) error {
	vendors := []domain.Vendor{
		{
			ID:                 "green-bowl",
			Name:               "Green Bowl Kitchen",
			Location:           geo.Point{Lat: 6.9271, Lng: 79.8612},
			Address:            "24 Galle Rd, Colombo",
			Open:               true,
			AvgDeliveryMinutes: 15,
			Rating:             4.6,
			RatingCount:        212,
		},
		{
			ID:                 "spice-route",
			Name:               "Spice Route",
			Location:           geo.Point{Lat: 6.9344, Lng: 79.8500},
			Address:            "8 Marine Dr, Colombo",
			Open:               true,
			AvgDeliveryMinutes: 25,
			Rating:             4.2,
			RatingCount:        87,
		},
	}
	products := []domain.Product{
		{
			ID:              "garden-salad",
			Name:            "Garden Salad",
			Description:     "Mixed leaves, cherry tomato, vinaigrette",
			VendorID:        "green-bowl",
			Price:           decimal.NewFromFloat(6.50),
			Category:        domain.CategorySalads,
			Calories:        320,
			PrepTimeMinutes: 10,
			Available:       true,
		},
		{
			ID:              "fruit-cup",
			Name:            "Fruit Cup",
			Description:     "Seasonal fruit, no added sugar",
			VendorID:        "green-bowl",
			Price:           decimal.NewFromFloat(3.99),
			Category:        domain.CategoryFruits,
			Calories:        120,
			PrepTimeMinutes: 5,
			Available:       true,
		},
		{
			ID:              "green-juice",
			Name:            "Green Juice",
			Description:     "Kale, apple, ginger",
			VendorID:        "green-bowl",
			Price:           decimal.NewFromFloat(4.25),
			Category:        domain.CategoryJuices,
			Calories:        95,
			PrepTimeMinutes: 5,
			Available:       true,
		},
		{
			ID:              "grilled-fish",
			Name:            "Grilled Fish Plate",
			Description:     "Catch of the day with steamed greens",
			VendorID:        "green-bowl",
			Price:           decimal.NewFromFloat(11.90),
			Category:        domain.CategorySeafood,
			Calories:        480,
			PrepTimeMinutes: 20,
			Available:       true,
			Allergens:       []string{"fish"},
		},
		{
			ID:              "chicken-kottu",
			Name:            "Chicken Kottu",
			Description:     "Chopped roti, chicken, egg",
			VendorID:        "spice-route",
			Price:           decimal.NewFromFloat(8.75),
			Category:        domain.CategoryAsian,
			Calories:        820,
			PrepTimeMinutes: 18,
			Available:       true,
			Allergens:       []string{"egg", "gluten"},
		},
		{
			ID:              "beef-burger",
			Name:            "Smash Burger",
			Description:     "Double patty, cheddar, house sauce",
			VendorID:        "spice-route",
			Price:           decimal.NewFromFloat(9.50),
			Category:        domain.CategoryBurgers,
			Calories:        950,
			PrepTimeMinutes: 15,
			Available:       true,
			Allergens:       []string{"gluten", "dairy"},
		},
		{
			ID:              "veg-curry",
			Name:            "Vegetable Curry Bowl",
			Description:     "Dhal, pumpkin, rice",
			VendorID:        "spice-route",
			Price:           decimal.NewFromFloat(7.20),
			Category:        domain.CategoryVegetarian,
			Calories:        390,
			PrepTimeMinutes: 15,
			Available:       true,
		},
		{
			ID:              "chocolate-cake",
			Name:            "Chocolate Fudge Cake",
			Description:     "Warm slice with ganache",
			VendorID:        "spice-route",
			Price:           decimal.NewFromFloat(5.40),
			Category:        domain.CategoryDesserts,
			Calories:        610,
			PrepTimeMinutes: 5,
			Available:       true,
			Allergens:       []string{"gluten", "dairy", "egg"},
		},
	}

	for _, v := range vendors {
		if err := s.SeedVendor(v); err != nil {
			return err
		}
	}
	for _, p := range products {
		if err := s.SeedProduct(p); err != nil {
			return err
		}
	}
	return nil
}
