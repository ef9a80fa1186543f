package domain

import "time"

// PurchasePlaced is emitted after a successful checkout. The health engine
// consumes it to log each ordered line; the notifier announces it.
type PurchasePlaced struct {
	OrderID string
	UserID  string
	Lines   []PurchaseLine
	At      time.Time
}

// PurchaseLine carries the nutrition snapshot the health engine needs.
type PurchaseLine struct {
	ProductID   string
	ProductName string
	Category    string
	Calories    int
	Quantity    int
}
