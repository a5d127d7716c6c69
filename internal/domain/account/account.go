package account

import "context"

// Profile is the signed-in customer's account summary
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Credential is the locally cached session token. The client never verifies
// the signature; it only peeks at the expiry claim to decide whether the
// session is worth presenting to the server at all.
type Credential struct {
	Token string `json:"token"`
}

// Remote is the port to the account endpoints of the remote API
type Remote interface {
	// FetchProfile returns the profile for the current credential
	FetchProfile(ctx context.Context) (*Profile, error)
}

// Store is the local persistence port for the credential and the cached
// profile. Load methods return shared.ErrKeyNotFound (wrapped) when the
// value has never been stored.
type Store interface {
	LoadCredential(ctx context.Context) (*Credential, error)
	SaveCredential(ctx context.Context, c Credential) error
	LoadProfile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
	// Clear removes the credential and the cached profile together
	Clear(ctx context.Context) error
}
