package checkout

import (
	"fmt"
	"strings"

	"github.com/shop/storefront/internal/domain/cart"
)

// PaymentMethod selects how an order is paid for
type PaymentMethod string

const (
	// PaymentGatewayCard is the Paystack-style external capture flow
	PaymentGatewayCard    PaymentMethod = "gateway"
	PaymentBankTransfer   PaymentMethod = "bank-transfer"
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// IsValid checks if the method is a known PaymentMethod
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentGatewayCard, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (p PaymentMethod) String() string {
	return string(p)
}

// ValidationError reports the required shipping fields missing from a draft
type ValidationError struct {
	Fields []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required shipping fields: %s", strings.Join(e.Fields, ", "))
}

// Draft is the in-progress checkout form. It is persisted on every change
// so it survives navigation and restarts, independently of the cart.
type Draft struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	State          string `json:"state"`
	City           string `json:"city"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	AdditionalInfo string `json:"additional_info,omitempty"`

	PaymentMethod  PaymentMethod       `json:"payment_method"`
	DeliveryMethod cart.DeliveryMethod `json:"delivery_method"`

	// PaymentReference is generated once per checkout session and reused
	// across create-order and verify-payment so retries cannot create
	// duplicate orders.
	PaymentReference string `json:"payment_reference,omitempty"`
}

// NewDraft returns a draft with the default method selections
func NewDraft() Draft {
	return Draft{
		PaymentMethod:  PaymentGatewayCard,
		DeliveryMethod: cart.DeliveryStandard,
	}
}

// Validate checks that every required shipping field is present.
// AdditionalInfo is the only optional field at submission time.
func (d Draft) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"email", d.Email},
		{"state", d.State},
		{"city", d.City},
		{"address", d.Address},
		{"phone", d.Phone},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if d.State != "" && d.City != "" && !IsValidCity(d.State, d.City) {
		return &ValidationError{Fields: []string{"city"}}
	}
	return nil
}

// SetState changes the delivery state. The valid city set depends on the
// state, so a city that no longer fits is reset.
func (d *Draft) SetState(state string) {
	d.State = state
	if !IsValidCity(state, d.City) {
		d.City = ""
	}
}

// SetDeliveryMethod switches the delivery method. Callers must recompute
// totals synchronously with this change; a stale total must never reach a
// submit call.
func (d *Draft) SetDeliveryMethod(method cart.DeliveryMethod) error {
	if !method.IsValid() {
		return fmt.Errorf("unknown delivery method %q", method)
	}
	d.DeliveryMethod = method
	return nil
}

// SetPaymentMethod switches the payment method
func (d *Draft) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return fmt.Errorf("unknown payment method %q", method)
	}
	d.PaymentMethod = method
	return nil
}
