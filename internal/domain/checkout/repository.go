package checkout

import "context"

// DraftRepository persists the checkout draft under a single stable key,
// independently of the cart, so an interrupted checkout can resume with the
// form intact. Load returns NewDraft() when nothing has been stored yet.
type DraftRepository interface {
	Load(ctx context.Context) (Draft, error)
	Save(ctx context.Context, d Draft) error
	Clear(ctx context.Context) error
}
