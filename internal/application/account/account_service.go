package account

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/account"
	"github.com/shop/storefront/internal/domain/shared"
)

// AccountService owns the local session: the cached credential and the
// cached profile. The credential's signature is never verified here; the
// server does that on every call. This side only peeks at the expiry claim
// to decide whether a session is worth presenting at all.
type AccountService struct {
	remote account.Remote
	store  account.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewAccountService creates a new AccountService
func NewAccountService(remote account.Remote, store account.Store, logger *zap.Logger) *AccountService {
	return &AccountService{
		remote: remote,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SignedIn reports whether a usable credential is cached: present, parseable
// and not past its expiry claim. A token without an expiry claim is treated
// as usable and left for the server to reject.
func (s *AccountService) SignedIn(ctx context.Context) bool {
	cred, err := s.store.LoadCredential(ctx)
	if err != nil {
		return false
	}
	exp, err := tokenExpiry(cred.Token)
	if err != nil {
		return false
	}
	return exp == nil || exp.After(s.now())
}

// SaveCredential caches a session token after checking it parses as a JWT
func (s *AccountService) SaveCredential(ctx context.Context, token string) error {
	if _, err := tokenExpiry(token); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Credential is not a well-formed token")
	}
	return s.store.SaveCredential(ctx, account.Credential{Token: token})
}

// Profile returns the account profile: fresh from the server when
// reachable, otherwise the cached copy
func (s *AccountService) Profile(ctx context.Context) (*account.Profile, error) {
	if !s.SignedIn(ctx) {
		return nil, shared.ErrUnauthorized
	}

	profile, err := s.remote.FetchProfile(ctx)
	if err == nil {
		if serr := s.store.SaveProfile(ctx, *profile); serr != nil {
			s.logger.Warn("failed to cache profile", zap.Error(serr))
		}
		return profile, nil
	}
	if !errors.Is(err, shared.ErrNetwork) {
		return nil, err
	}

	s.logger.Warn("profile unavailable, serving cached copy", zap.Error(err))
	cached, cerr := s.store.LoadProfile(ctx)
	if cerr != nil {
		return nil, err
	}
	return cached, nil
}

// Logout drops the credential and the cached profile together
func (s *AccountService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// tokenExpiry parses the token without verifying its signature and returns
// its expiry claim, nil when the token carries none
func tokenExpiry(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, nil
	}
	return &exp.Time, nil
}
