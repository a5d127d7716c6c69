package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/shared/valueobject"
)

// DeliveryMethod selects the flat delivery fee applied at checkout
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
	DeliverySameDay  DeliveryMethod = "same-day"
)

// IsValid checks if the method is a known DeliveryMethod
func (d DeliveryMethod) IsValid() bool {
	switch d {
	case DeliveryStandard, DeliveryExpress, DeliverySameDay:
		return true
	}
	return false
}

// String returns the string representation of DeliveryMethod
func (d DeliveryMethod) String() string {
	return string(d)
}

// VATRate is the fixed value-added tax rate applied to the cart subtotal
var VATRate = decimal.NewFromFloat(0.075)

// deliveryFees is the fixed fee table, in naira
var deliveryFees = map[DeliveryMethod]decimal.Decimal{
	DeliveryStandard: decimal.NewFromInt(1500),
	DeliveryExpress:  decimal.NewFromInt(3500),
	DeliverySameDay:  decimal.NewFromInt(6000),
}

// Fee returns the flat delivery fee for the method. Unknown methods fall
// back to the standard fee so a totals computation is always possible.
func (d DeliveryMethod) Fee() decimal.Decimal {
	if fee, ok := deliveryFees[d]; ok {
		return fee
	}
	return deliveryFees[DeliveryStandard]
}

// Totals holds the derived monetary values of a cart. They are never
// stored, always recomputed, and kept unrounded; rounding happens only at
// the display boundary.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax, delivery fee and total for the cart
// under the given delivery method. Pure: same inputs, same outputs.
func ComputeTotals(c Cart, method DeliveryMethod) Totals {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(VATRate)
	fee := method.Fee()

	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
	}
}

// TotalMoney returns the grand total as a Money value object
func (t Totals) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(t.Total)
}

// SubtotalMoney returns the subtotal as a Money value object
func (t Totals) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyNGN(t.Subtotal)
}
