package commerce

import (
	"context"

	"github.com/shop/storefront/internal/domain/account"
)

// TokenSource supplies the customer's bearer token, when one exists.
// Requests go out anonymously when no token is available; the server
// decides which endpoints require one.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// AccountTokenSource reads the bearer token from the local account store
type AccountTokenSource struct {
	store account.Store
}

// NewAccountTokenSource creates a token source backed by the account store
func NewAccountTokenSource(store account.Store) *AccountTokenSource {
	return &AccountTokenSource{store: store}
}

// Token returns the cached credential token, if any
func (s *AccountTokenSource) Token(ctx context.Context) (string, bool) {
	cred, err := s.store.LoadCredential(ctx)
	if err != nil || cred.Token == "" {
		return "", false
	}
	return cred.Token, true
}

var _ TokenSource = (*AccountTokenSource)(nil)
