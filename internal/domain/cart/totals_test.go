package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  DeliveryMethod
		isValid bool
	}{
		{DeliveryStandard, true},
		{DeliveryExpress, true},
		{DeliverySameDay, true},
		{DeliveryMethod("drone"), false},
		{DeliveryMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestDeliveryMethod_Fee(t *testing.T) {
	assert.True(t, DeliveryStandard.Fee().Equal(decimal.NewFromInt(1500)))
	assert.True(t, DeliveryExpress.Fee().Equal(decimal.NewFromInt(3500)))
	assert.True(t, DeliverySameDay.Fee().Equal(decimal.NewFromInt(6000)))

	// Unknown methods fall back to the standard fee
	assert.True(t, DeliveryMethod("drone").Fee().Equal(decimal.NewFromInt(1500)))
}

func TestComputeTotals(t *testing.T) {
	// cart = [{id:1, price:1000, qty:2}, {id:2, price:500, qty:1}]
	c := Empty().
		AddOrIncrement(summary("1", "Desk Lamp", 1000)).
		AddOrIncrement(summary("1", "Desk Lamp", 1000)).
		AddOrIncrement(summary("2", "Mug", 500))

	totals := ComputeTotals(c, DeliveryStandard)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(187.5)), "tax: %s", totals.Tax)
	assert.True(t, totals.DeliveryFee.Equal(decimal.NewFromInt(1500)), "fee: %s", totals.DeliveryFee)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(4187.5)), "total: %s", totals.Total)
}

func TestComputeTotals_IsPure(t *testing.T) {
	c := Empty().AddOrIncrement(summary("1", "Desk Lamp", 999.99))

	first := ComputeTotals(c, DeliveryExpress)
	second := ComputeTotals(c, DeliveryExpress)

	assert.Equal(t, first, second)
}

func TestComputeTotals_TotalIsAlwaysSumOfParts(t *testing.T) {
	c := Empty().
		AddOrIncrement(summary("1", "Desk Lamp", 1234.56)).
		AddOrIncrement(summary("2", "Mug", 78.9))

	for _, method := range []DeliveryMethod{DeliveryStandard, DeliveryExpress, DeliverySameDay} {
		t.Run(string(method), func(t *testing.T) {
			totals := ComputeTotals(c, method)
			sum := totals.Subtotal.Add(totals.Tax).Add(totals.DeliveryFee)
			assert.True(t, totals.Total.Equal(sum))
		})
	}
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(Empty(), DeliverySameDay)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(6000)))
}

func TestComputeTotals_DiscountPriceCharged(t *testing.T) {
	discount := decimal.NewFromInt(800)
	c := Empty().AddOrIncrement(ProductSummary{
		ID:            "p-1",
		Name:          "Desk Lamp",
		Price:         decimal.NewFromInt(1000),
		DiscountPrice: &discount,
	})

	totals := ComputeTotals(c, DeliveryStandard)
	require.True(t, totals.Subtotal.Equal(decimal.NewFromInt(800)))
}

func TestTotals_MoneyAccessors(t *testing.T) {
	c := Empty().AddOrIncrement(summary("1", "Desk Lamp", 1000))
	totals := ComputeTotals(c, DeliveryStandard)

	assert.Equal(t, "2575.00", totals.TotalMoney().StringFixed(2))
	assert.Equal(t, "1000.00", totals.SubtotalMoney().StringFixed(2))
}
