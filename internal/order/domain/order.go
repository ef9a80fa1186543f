package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// next maps each status to its forward successor in the lifecycle.
var next = map[Status]Status{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition permits the single forward step, or cancellation from any
// non-terminal status.
func (s Status) CanTransition(to Status) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[s] == to
}

// Line is an immutable snapshot of one cart line taken at checkout. It is
// decoupled from the live catalog so historical orders stay stable when the
// catalog changes.
type Line struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VendorName  string          `json:"vendorName"`
}

type Order struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"userId"`
	Items                 []Line          `json:"items"`
	Total                 decimal.Decimal `json:"total"`
	DeliveryFee           decimal.Decimal `json:"deliveryFee"`
	Status                Status          `json:"status"`
	Date                  time.Time       `json:"date"`
	DeliveryAddress       string          `json:"deliveryAddress,omitempty"`
	PaymentMethod         string          `json:"paymentMethod,omitempty"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty"`
}

// Transition advances the lifecycle status. Delivered records the actual
// delivery time.
func (o *Order) Transition(to Status, at time.Time) error {
	if !o.Status.CanTransition(to) {
		return fmt.Errorf("cannot transition order %s from %s to %s", o.ID, o.Status, to)
	}
	o.Status = to
	if to == StatusDelivered {
		t := at
		o.ActualDeliveryTime = &t
	}
	return nil
}
