package favorites

import (
	"context"

	catalogapp "github.com/shop/storefront/internal/application/catalog"
	"github.com/shop/storefront/internal/domain/catalog"
)

// FavoritesService is a thin pass-through to the remote favorites API.
// Favorites are server-owned; nothing is cached locally.
type FavoritesService struct {
	favorites catalog.FavoritesRepository
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(favorites catalog.FavoritesRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// List returns the favorited products
func (s *FavoritesService) List(ctx context.Context) ([]catalogapp.ProductView, error) {
	products, err := s.favorites.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}
	return catalogapp.ToProductViews(products), nil
}

// Add favorites a product
func (s *FavoritesService) Add(ctx context.Context, productID string) error {
	return s.favorites.AddFavorite(ctx, productID)
}

// Remove unfavorites a product; removing an absent favorite is not an error
func (s *FavoritesService) Remove(ctx context.Context, productID string) error {
	return s.favorites.RemoveFavorite(ctx, productID)
}
