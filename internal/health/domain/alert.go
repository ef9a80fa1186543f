package domain

import (
	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

type AlertKind string

const (
	AlertWarning  AlertKind = "warning"
	AlertExceeded AlertKind = "exceeded"
)

const (
	// warningFraction of the daily target triggers the early warning.
	warningFraction = 0.8

	maxSuggestions        = 5
	lightMealCalories     = 400
	overBudgetMaxCalories = 200
)

type Alert struct {
	Kind        AlertKind         `json:"kind"`
	Excess      int               `json:"excess"`
	Suggestions []catalog.Product `json:"suggestions"`
}

// EvaluateAlert compares today's total against the daily target. It returns
// nil when the total is under the warning threshold, which also clears any
// existing alert at the caller.
func EvaluateAlert(todayTotal, target int) *Alert {
	if target <= 0 {
		return nil
	}
	if todayTotal > target {
		return &Alert{Kind: AlertExceeded, Excess: todayTotal - target}
	}
	if float64(todayTotal) > warningFraction*float64(target) {
		return &Alert{Kind: AlertWarning}
	}
	return nil
}

// SuggestAlternatives picks up to five lighter products. A product qualifies
// when it is from a healthy category under 400 calories, or, once the budget
// is exceeded, when it stays under 200 calories and carries none of the
// user's allergens.
func SuggestAlternatives(products []catalog.Product, allergies []string, overBudget bool) []catalog.Product {
	var out []catalog.Product
	for _, p := range products {
		if !p.Available {
			continue
		}
		healthyPick := catalog.HealthyCategories[p.Category] && p.Calories < lightMealCalories
		lightPick := overBudget && p.Calories <= overBudgetMaxCalories && !p.ContainsAllergen(allergies)
		if !healthyPick && !lightPick {
			continue
		}
		out = append(out, p)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
