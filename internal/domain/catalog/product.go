package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/shared"
)

// Product is a validated catalog record. The remote API serves duck-typed
// JSON; records are decoded and validated at the API boundary so nothing
// malformed reaches the cart engine or the views.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Category      string           `json:"category,omitempty"`
	Rating        float64          `json:"rating"`
	ImageURL      string           `json:"main_image_url,omitempty"`
	Featured      bool             `json:"featured,omitempty"`
	Popular       bool             `json:"popular,omitempty"`
	SalesCount    int              `json:"sales_count,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Validate rejects records that cannot be displayed or priced. Soft fields
// (rating, sales count) are normalized instead of rejected.
func (p *Product) Validate() error {
	if p.ID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product record has no id")
	}
	if p.Name == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product record has no name")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}
	if p.DiscountPrice != nil && !p.DiscountPrice.IsPositive() {
		p.DiscountPrice = nil
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.SalesCount < 0 {
		p.SalesCount = 0
	}
	return nil
}

// Summary captures the primitive fields the cart snapshots at add time
func (p Product) Summary() cart.ProductSummary {
	s := cart.ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageRef: p.ImageURL,
		Rating:   p.Rating,
	}
	if p.DiscountPrice != nil {
		dp := *p.DiscountPrice
		s.DiscountPrice = &dp
	}
	return s
}
