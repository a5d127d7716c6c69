package commerce

import "fmt"

// errorBody is the error payload the commerce API attaches to non-2xx responses
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// remoteError carries a non-2xx commerce API response before it is mapped
// to a domain error kind
type remoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *remoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("commerce api: unexpected status %d", e.StatusCode)
}

// statusUpdateRequest asks the server to transition an order
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// verifyPaymentRequest asks the server to confirm a gateway capture
type verifyPaymentRequest struct {
	Reference string `json:"reference"`
}

// favoriteRequest marks a product as a favorite
type favoriteRequest struct {
	ProductID string `json:"product_id"`
}
