package cart

import (
	"github.com/shopspring/decimal"
)

// ProductSummary carries the primitive fields captured from a product view
// when it is added to the cart. Only plain values cross this boundary, never
// a reference to a live catalog record.
type ProductSummary struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	ImageRef      string
	Rating        float64
}

// LineItem is one product entry in a cart, carrying its own quantity.
// Price and name are snapshotted at first add and never updated afterwards,
// so a mid-session catalog price change cannot drift an existing cart line.
type LineItem struct {
	ProductID     string           `json:"product_id"`
	Name          string           `json:"name"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Quantity      int              `json:"quantity"`
	ImageRef      string           `json:"image_ref,omitempty"`
	Rating        float64          `json:"rating,omitempty"`
}

// EffectiveUnitPrice returns the price actually charged for one unit:
// the discount price when one was snapshotted, otherwise the unit price.
func (i LineItem) EffectiveUnitPrice() decimal.Decimal {
	if i.DiscountPrice != nil && i.DiscountPrice.IsPositive() {
		return *i.DiscountPrice
	}
	return i.UnitPrice
}

// LineTotal returns EffectiveUnitPrice * Quantity
func (i LineItem) LineTotal() decimal.Decimal {
	return i.EffectiveUnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered sequence of line items with at most one line per
// product id. All operations are pure: they return a new Cart and leave the
// receiver untouched. A line item with quantity < 1 never exists; removal is
// the only representation of zero.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Empty returns an empty cart
func Empty() Cart {
	return Cart{Items: []LineItem{}}
}

// clone returns a deep copy of the item slice
func (c Cart) clone() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// IsEmpty returns true when the cart holds no line items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the total quantity across all line items
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Find returns the line item for productID, if present
func (c Cart) Find(productID string) (LineItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// AddOrIncrement adds product as a new line item with quantity 1, or
// increments the existing line's quantity by 1. On increment every other
// field of the incoming summary is ignored: the first-add snapshot of
// price, name and image stays authoritative.
func (c Cart) AddOrIncrement(product ProductSummary) Cart {
	items := c.clone()
	for idx, item := range items {
		if item.ProductID == product.ID {
			items[idx].Quantity++
			return Cart{Items: items}
		}
	}

	line := LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  1,
		ImageRef:  product.ImageRef,
		Rating:    product.Rating,
	}
	if product.DiscountPrice != nil {
		dp := *product.DiscountPrice
		line.DiscountPrice = &dp
	}
	return Cart{Items: append(items, line)}
}

// SetQuantity sets the quantity of the line item for productID. A quantity
// below 1 behaves as Remove. An unknown productID is a silent no-op.
func (c Cart) SetQuantity(productID string, quantity int) Cart {
	if quantity < 1 {
		return c.Remove(productID)
	}
	items := c.clone()
	for idx, item := range items {
		if item.ProductID == productID {
			items[idx].Quantity = quantity
			break
		}
	}
	return Cart{Items: items}
}

// Remove filters out the line item for productID; absent ids are ignored
func (c Cart) Remove(productID string) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}
