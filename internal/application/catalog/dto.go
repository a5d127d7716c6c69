package catalog

import (
	"github.com/shop/storefront/internal/domain/catalog"
)

// ProductView is the display shape of a catalog product
type ProductView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price,omitempty"`
	Category      string  `json:"category,omitempty"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"main_image_url,omitempty"`
	SalesCount    int     `json:"sales_count,omitempty"`
}

// SectionsView groups the landing page shelves
type SectionsView struct {
	Featured []ProductView `json:"featured"`
	Popular  []ProductView `json:"popular"`
	Latest   []ProductView `json:"latest"`
}

// ToProductView converts a product to its display shape
func ToProductView(p catalog.Product) ProductView {
	view := ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price.StringFixed(2),
		Category:   p.Category,
		Rating:     p.Rating,
		ImageURL:   p.ImageURL,
		SalesCount: p.SalesCount,
	}
	if p.DiscountPrice != nil {
		dp := p.DiscountPrice.StringFixed(2)
		view.DiscountPrice = &dp
	}
	return view
}

// ToProductViews converts a product slice to display shapes
func ToProductViews(products []catalog.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ToProductView(p))
	}
	return views
}
