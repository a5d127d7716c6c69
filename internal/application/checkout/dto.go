package checkout

import (
	cartapp "github.com/shop/storefront/internal/application/cart"
	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/checkout"
)

// UpdateDraftRequest patches the checkout draft; nil fields are untouched
type UpdateDraftRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	State          *string `json:"state,omitempty"`
	City           *string `json:"city,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	AdditionalInfo *string `json:"additional_info,omitempty"`
}

// DraftView is the checkout form as presented to the client, together with
// the location choices valid for its current state selection
type DraftView struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	State          string `json:"state"`
	City           string `json:"city"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	AdditionalInfo string `json:"additional_info,omitempty"`

	PaymentMethod  string `json:"payment_method"`
	DeliveryMethod string `json:"delivery_method"`

	States []string `json:"states"`
	Cities []string `json:"cities,omitempty"`
}

// SummaryView is the review step: the cart priced under the draft's
// delivery method, alongside the draft itself
type SummaryView struct {
	Cart  cartapp.CartView `json:"cart"`
	Draft DraftView        `json:"draft"`
}

// SubmitResult reports the outcome of a checkout submission
type SubmitResult struct {
	State            checkout.State `json:"state"`
	OrderID          string         `json:"order_id,omitempty"`
	OrderNumber      string         `json:"order_number,omitempty"`
	PaymentReference string         `json:"payment_reference,omitempty"`

	// Dismissed marks a gateway submission the customer abandoned at the
	// external payment step; the draft and cart remain intact for a retry
	Dismissed bool `json:"dismissed,omitempty"`
}

// ToDraftView converts a draft to its display shape
func ToDraftView(d checkout.Draft) DraftView {
	return DraftView{
		Name:           d.Name,
		Email:          d.Email,
		State:          d.State,
		City:           d.City,
		Address:        d.Address,
		Phone:          d.Phone,
		AdditionalInfo: d.AdditionalInfo,
		PaymentMethod:  d.PaymentMethod.String(),
		DeliveryMethod: d.DeliveryMethod.String(),
		States:         checkout.States(),
		Cities:         checkout.CitiesForState(d.State),
	}
}

// ToTotalsView exposes the cart totals shape under this package's name so
// handlers need a single import
func ToTotalsView(t cart.Totals, method cart.DeliveryMethod) cartapp.TotalsView {
	return cartapp.ToTotalsView(t, method)
}
