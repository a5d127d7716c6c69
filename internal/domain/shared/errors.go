package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrValidation    = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrNetwork       = NewDomainError("NETWORK_ERROR", "Upstream request failed")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")

	// ErrPaymentReconciliation signals that the external gateway reported a
	// successful capture but server-side verification failed. Funds may have
	// moved without a confirmed order; callers must not clear local state.
	ErrPaymentReconciliation = NewDomainError("PAYMENT_RECONCILIATION", "Payment captured but confirmation failed, contact support")
)
