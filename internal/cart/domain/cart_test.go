package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/Samod99/NourishFoods-sub000/internal/catalog/domain"
)

func product(id, vendorID, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "product " + id,
		VendorID: vendorID,
		Price:    decimal.RequireFromString(price),
	}
}

func TestAddKeepsOneLinePerProduct(t *testing.T) {
	c := New()
	p := product("p1", "v1", "4.50")

	c.Add(p, 1)
	c.Add(p, 2)
	c.Add(p, 3)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 6, lines[0].Quantity)
	assert.Equal(t, 6, c.ItemCount())
}

func TestAddDistinctProducts(t *testing.T) {
	c := New()
	c.Add(product("p1", "v1", "4.50"), 1)
	c.Add(product("p2", "v1", "3.00"), 2)

	require.Len(t, c.Lines(), 2)
	assert.Equal(t, 3, c.ItemCount())
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	c := New()
	c.Add(product("p1", "v1", "4.50"), 1)

	c.Remove("missing")
	require.Len(t, c.Lines(), 1)

	c.Remove("p1")
	assert.True(t, c.Empty())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(product("p1", "v1", "4.50"), 1)

	c.SetQuantity("p1", 5)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	// Zero or negative removes the line.
	c.SetQuantity("p1", 0)
	assert.True(t, c.Empty())

	// No line is created for an unknown product.
	c.SetQuantity("ghost", 3)
	assert.True(t, c.Empty())
}

func TestDecrementFloor(t *testing.T) {
	c := New()
	c.Add(product("p1", "v1", "4.50"), 2)

	c.Decrement("p1")
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	// A line at quantity one is removed, never reaching zero.
	c.Decrement("p1")
	assert.True(t, c.Empty())
}

func TestIncrement(t *testing.T) {
	c := New()
	c.Add(product("p1", "v1", "4.50"), 1)
	c.Increment("p1")
	c.Increment("missing")
	assert.Equal(t, 2, c.ItemCount())
}

func TestTotals(t *testing.T) {
	c := New()
	assert.True(t, c.DeliveryFee().IsZero())
	assert.True(t, c.Total().IsZero())

	c.Add(product("p1", "v1", "4.50"), 2)
	c.Add(product("p2", "v1", "3.25"), 1)

	require.Equal(t, "12.25", c.Subtotal().StringFixed(2))
	assert.True(t, c.DeliveryFee().Equal(FlatDeliveryFee))
	assert.Equal(t, "15.24", c.Total().StringFixed(2))

	c.Clear()
	assert.True(t, c.DeliveryFee().IsZero())
	assert.True(t, c.Total().IsZero())
}

func TestMultiVendor(t *testing.T) {
	c := New()
	assert.False(t, c.MultiVendor())

	c.Add(product("p1", "v1", "4.50"), 1)
	c.Add(product("p2", "v1", "3.00"), 1)
	assert.False(t, c.MultiVendor())

	c.Add(product("p3", "v2", "2.00"), 1)
	assert.True(t, c.MultiVendor())
}

func TestOnChangeFires(t *testing.T) {
	c := New()
	fired := 0
	c.OnChange(func() { fired++ })

	c.Add(product("p1", "v1", "4.50"), 1)
	c.Increment("p1")
	c.Clear()

	assert.Equal(t, 3, fired)
}
