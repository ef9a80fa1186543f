package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

// FlatDeliveryFee is charged whenever the cart is non-empty.
var FlatDeliveryFee = decimal.RequireFromString("2.99")

// Line is one (product, quantity) pair. A cart holds at most one line per
// distinct product id.
type Line struct {
	Product  catalog.Product
	Quantity int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the mutable in-memory cart. Insertion order is preserved for
// display. Quantity integrity (> 0) is validated by the caller; see the
// application service.
type Cart struct {
	lines     []Line
	listeners []func()
}

func New() *Cart { return &Cart{} }

// OnChange registers a callback invoked after every mutation.
func (c *Cart) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Cart) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add appends a new line, or increments the quantity of an existing line for
// the same product.
func (c *Cart) Add(p catalog.Product, qty int) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
	} else {
		c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	}
	c.changed()
}

// Remove deletes the line for the product; no-op if absent.
func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.changed()
}

// SetQuantity overwrites the quantity of an existing line. A quantity of zero
// or less removes the line. No line is created for an unknown product.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.lines[i].Quantity = qty
	c.changed()
}

func (c *Cart) Increment(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.lines[i].Quantity++
	c.changed()
}

// Decrement lowers the quantity by one; a line at quantity one is removed.
func (c *Cart) Decrement(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].Quantity--
	}
	c.changed()
}

func (c *Cart) Clear() {
	c.lines = nil
	c.changed()
}

// Restore replaces the cart contents without notifying listeners of each
// individual line; used when loading a persisted snapshot.
func (c *Cart) Restore(lines []Line) {
	c.lines = append([]Line(nil), lines...)
	c.changed()
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// DeliveryFee is zero exactly when the cart is empty.
func (c *Cart) DeliveryFee() decimal.Decimal {
	if len(c.lines) == 0 {
		return decimal.Zero
	}
	return FlatDeliveryFee
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.DeliveryFee())
}

// MultiVendor reports whether lines reference more than one distinct vendor.
// The checkout policy layer uses it to warn or disallow mixed-vendor orders.
func (c *Cart) MultiVendor() bool {
	seen := ""
	for _, l := range c.lines {
		if seen == "" {
			seen = l.Product.VendorID
			continue
		}
		if l.Product.VendorID != seen {
			return true
		}
	}
	return false
}
