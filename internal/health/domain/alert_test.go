package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

func TestEvaluateAlertThresholds(t *testing.T) {
	a := EvaluateAlert(2100, 2000)
	require.NotNil(t, a)
	assert.Equal(t, AlertExceeded, a.Kind)
	assert.Equal(t, 100, a.Excess)

	// 1700 > 0.8 * 2000
	a = EvaluateAlert(1700, 2000)
	require.NotNil(t, a)
	assert.Equal(t, AlertWarning, a.Kind)
	assert.Zero(t, a.Excess)

	assert.Nil(t, EvaluateAlert(1500, 2000))
	assert.Nil(t, EvaluateAlert(0, 2000))

	// No profile target means no alert.
	assert.Nil(t, EvaluateAlert(5000, 0))
}

func TestSuggestAlternativesHealthyRule(t *testing.T) {
	products := []catalog.Product{
		{ID: "salad", Category: catalog.CategorySalads, Calories: 350, Available: true},
		{ID: "heavy-salad", Category: catalog.CategorySalads, Calories: 450, Available: true},
		{ID: "burger", Category: catalog.CategoryBurgers, Calories: 350, Available: true},
		{ID: "closed", Category: catalog.CategoryFruits, Calories: 100, Available: false},
	}

	got := SuggestAlternatives(products, nil, false)
	require.Len(t, got, 1)
	assert.Equal(t, "salad", got[0].ID)
}

func TestSuggestAlternativesOverBudgetRule(t *testing.T) {
	products := []catalog.Product{
		{ID: "light", Category: catalog.CategorySoups, Calories: 150, Available: true},
		{ID: "nutty", Category: catalog.CategorySoups, Calories: 150, Available: true, Allergens: []string{"peanuts"}},
		{ID: "rich", Category: catalog.CategorySoups, Calories: 250, Available: true},
	}

	// Under budget, non-healthy categories never qualify.
	assert.Empty(t, SuggestAlternatives(products, nil, false))

	// Over budget, light allergen-free products qualify.
	got := SuggestAlternatives(products, []string{"peanuts"}, true)
	require.Len(t, got, 1)
	assert.Equal(t, "light", got[0].ID)
}

func TestSuggestAlternativesCap(t *testing.T) {
	var products []catalog.Product
	for i := 0; i < 10; i++ {
		products = append(products, catalog.Product{
			ID:        string(rune('a' + i)),
			Category:  catalog.CategoryFruits,
			Calories:  100,
			Available: true,
		})
	}
	assert.Len(t, SuggestAlternatives(products, nil, false), 5)
}
