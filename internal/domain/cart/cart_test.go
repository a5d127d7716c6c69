package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func summary(id, name string, price float64) ProductSummary {
	return ProductSummary{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromFloat(price),
	}
}

func TestCart_AddOrIncrement_NewItem(t *testing.T) {
	c := Empty().AddOrIncrement(summary("p-1", "Desk Lamp", 1000))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p-1", c.Items[0].ProductID)
	assert.Equal(t, "Desk Lamp", c.Items[0].Name)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
}

func TestCart_AddOrIncrement_SameProductNeverDuplicates(t *testing.T) {
	c := Empty()
	for i := 0; i < 5; i++ {
		c = c.AddOrIncrement(summary("p-1", "Desk Lamp", 1000))
	}

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestCart_AddOrIncrement_FirstSnapshotWins(t *testing.T) {
	c := Empty().
		AddOrIncrement(summary("p-7", "Mug", 200)).
		AddOrIncrement(summary("p-7", "Mug (new label)", 250))

	require.Len(t, c.Items, 1)
	assert.True(t, c.Items[0].UnitPrice.Equal(decimal.NewFromInt(200)),
		"price must stay at the first-add snapshot")
	assert.Equal(t, "Mug", c.Items[0].Name)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCart_AddOrIncrement_IsPure(t *testing.T) {
	original := Empty().AddOrIncrement(summary("p-1", "Desk Lamp", 1000))
	_ = original.AddOrIncrement(summary("p-1", "Desk Lamp", 1000))

	assert.Equal(t, 1, original.Items[0].Quantity, "receiver must not be mutated")
}

func TestCart_SetQuantity(t *testing.T) {
	base := Empty().AddOrIncrement(summary("p-1", "Desk Lamp", 1000))

	tests := []struct {
		name      string
		productID string
		quantity  int
		wantItems int
		wantQty   int
	}{
		{"set to positive", "p-1", 4, 1, 4},
		{"zero behaves as remove", "p-1", 0, 0, 0},
		{"negative behaves as remove", "p-1", -3, 0, 0},
		{"unknown id is a no-op", "p-404", 4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base.SetQuantity(tt.productID, tt.quantity)
			require.Len(t, c.Items, tt.wantItems)
			if tt.wantItems > 0 {
				assert.Equal(t, tt.wantQty, c.Items[0].Quantity)
			}
		})
	}
}

func TestCart_SetQuantityZero_EqualsRemove(t *testing.T) {
	base := Empty().
		AddOrIncrement(summary("p-1", "Desk Lamp", 1000)).
		AddOrIncrement(summary("p-2", "Mug", 500))

	viaSetQuantity := base.SetQuantity("p-1", 0)
	viaRemove := base.Remove("p-1")

	assert.Equal(t, viaRemove, viaSetQuantity)
}

func TestCart_Remove(t *testing.T) {
	c := Empty().
		AddOrIncrement(summary("p-1", "Desk Lamp", 1000)).
		AddOrIncrement(summary("p-2", "Mug", 500)).
		Remove("p-1")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p-2", c.Items[0].ProductID)

	// Removing an absent id is not an error
	c = c.Remove("p-404")
	assert.Len(t, c.Items, 1)
}

func TestCart_Find(t *testing.T) {
	c := Empty().AddOrIncrement(summary("p-1", "Desk Lamp", 1000))

	item, ok := c.Find("p-1")
	require.True(t, ok)
	assert.Equal(t, "Desk Lamp", item.Name)

	_, ok = c.Find("p-404")
	assert.False(t, ok)
}

func TestLineItem_EffectiveUnitPrice(t *testing.T) {
	discount := decimal.NewFromInt(800)
	tests := []struct {
		name string
		item LineItem
		want decimal.Decimal
	}{
		{
			"no discount uses unit price",
			LineItem{UnitPrice: decimal.NewFromInt(1000), Quantity: 1},
			decimal.NewFromInt(1000),
		},
		{
			"discount price wins when set",
			LineItem{UnitPrice: decimal.NewFromInt(1000), DiscountPrice: &discount, Quantity: 1},
			decimal.NewFromInt(800),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.item.EffectiveUnitPrice()))
		})
	}
}

func TestCart_Empty(t *testing.T) {
	c := Empty()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.ItemCount())
}
