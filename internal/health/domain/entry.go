package domain

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Entry is one logged consumption. The product fields are a snapshot taken
// at log time, not a live catalog reference.
type Entry struct {
	Date        time.Time `json:"date"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Category    string    `json:"category"`
	Calories    int       `json:"calories"`
	Quantity    int       `json:"quantity"`
	MealType    MealType  `json:"mealType"`
	Timestamp   time.Time `json:"timestamp"`
}

// TotalCalories is the entry's contribution to the daily total.
func (e Entry) TotalCalories() int {
	return e.Calories * e.Quantity
}

// SameCalendarDay reports whether a and b fall on the same calendar date in
// the given timezone. Entries are scoped by calendar-day boundary, not by a
// rolling 24h window.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
