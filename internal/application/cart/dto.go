package cart

import (
	"github.com/shop/storefront/internal/domain/cart"
)

// LineItemView is the display shape of a cart line. Monetary values are
// rounded to two decimal places here and nowhere earlier.
type LineItemView struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	UnitPrice     string  `json:"unit_price"`
	DiscountPrice *string `json:"discount_price,omitempty"`
	LineTotal     string  `json:"line_total"`
	Quantity      int     `json:"quantity"`
	ImageRef      string  `json:"image_ref,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
}

// TotalsView is the display shape of the derived totals
type TotalsView struct {
	Subtotal       string `json:"subtotal"`
	Tax            string `json:"tax"`
	DeliveryFee    string `json:"delivery_fee"`
	Total          string `json:"total"`
	DeliveryMethod string `json:"delivery_method"`
}

// CartView is the full cart as presented to the client
type CartView struct {
	Items     []LineItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    TotalsView     `json:"totals"`
}

// ToLineItemView converts a domain line item to its display shape
func ToLineItemView(item cart.LineItem) LineItemView {
	view := LineItemView{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice.StringFixed(2),
		LineTotal: item.LineTotal().StringFixed(2),
		Quantity:  item.Quantity,
		ImageRef:  item.ImageRef,
		Rating:    item.Rating,
	}
	if item.DiscountPrice != nil {
		dp := item.DiscountPrice.StringFixed(2)
		view.DiscountPrice = &dp
	}
	return view
}

// ToTotalsView converts derived totals to their display shape
func ToTotalsView(t cart.Totals, method cart.DeliveryMethod) TotalsView {
	return TotalsView{
		Subtotal:       t.Subtotal.StringFixed(2),
		Tax:            t.Tax.StringFixed(2),
		DeliveryFee:    t.DeliveryFee.StringFixed(2),
		Total:          t.Total.StringFixed(2),
		DeliveryMethod: method.String(),
	}
}

// ToCartView converts a cart and its delivery method to the full view
func ToCartView(c cart.Cart, method cart.DeliveryMethod) CartView {
	items := make([]LineItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ToLineItemView(item))
	}
	return CartView{
		Items:     items,
		ItemCount: c.ItemCount(),
		Totals:    ToTotalsView(cart.ComputeTotals(c, method), method),
	}
}
