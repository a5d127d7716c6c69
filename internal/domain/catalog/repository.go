package catalog

import "context"

// Repository is the port to the remote product API
type Repository interface {
	// List returns all valid product records; malformed records are
	// dropped at the boundary, not surfaced as errors
	List(ctx context.Context) ([]Product, error)
	// GetByID returns shared.ErrNotFound (wrapped) when the product does not exist
	GetByID(ctx context.Context, id string) (*Product, error)
}

// FavoritesRepository is the port to the remote favorites API
type FavoritesRepository interface {
	ListFavorites(ctx context.Context) ([]Product, error)
	AddFavorite(ctx context.Context, productID string) error
	RemoveFavorite(ctx context.Context, productID string) error
}
