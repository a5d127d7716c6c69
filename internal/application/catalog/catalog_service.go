package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/shared"
)

// shelfSize caps each landing page shelf
const shelfSize = 8

// CatalogService serves the browsing views. It is a thin read layer over
// the remote product API; nothing here is persisted locally.
type CatalogService struct {
	products catalog.Repository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products catalog.Repository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns all products, optionally filtered by category
func (s *CatalogService) List(ctx context.Context, category string) ([]ProductView, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return ToProductViews(products), nil
}

// GetByID returns one product
func (s *CatalogService) GetByID(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	view := ToProductView(*p)
	return &view, nil
}

// Sections builds the landing page shelves from a single catalog fetch:
// flagged products for featured and popular, newest first for latest
func (s *CatalogService) Sections(ctx context.Context) (*SectionsView, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	var featured, popular []catalog.Product
	for _, p := range products {
		if p.Featured && len(featured) < shelfSize {
			featured = append(featured, p)
		}
		if p.Popular && len(popular) < shelfSize {
			popular = append(popular, p)
		}
	}

	latest := make([]catalog.Product, len(products))
	copy(latest, products)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].CreatedAt.After(latest[j].CreatedAt)
	})
	if len(latest) > shelfSize {
		latest = latest[:shelfSize]
	}

	return &SectionsView{
		Featured: ToProductViews(featured),
		Popular:  ToProductViews(popular),
		Latest:   ToProductViews(latest),
	}, nil
}
