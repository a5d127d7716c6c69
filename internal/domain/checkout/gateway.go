package checkout

import (
	"context"
	"errors"
)

// CaptureStatus is the outcome the external payment step reports
type CaptureStatus string

const (
	// CaptureSucceeded means the gateway confirmed the charge for the reference
	CaptureSucceeded CaptureStatus = "success"
	// CaptureDismissed means the customer abandoned the payment step;
	// no payload accompanies a dismissal
	CaptureDismissed CaptureStatus = "dismissed"
)

// CaptureRequest configures the opaque external payment capture
type CaptureRequest struct {
	Reference   string
	AmountMinor int64 // amount in the currency's minor unit (kobo)
	Currency    string
	Email       string
	Name        string
	Metadata    map[string]string
}

// Validate checks the request before it is handed to the gateway
func (r CaptureRequest) Validate() error {
	if r.Reference == "" {
		return errors.New("capture request requires a payment reference")
	}
	if r.AmountMinor <= 0 {
		return errors.New("capture amount must be positive")
	}
	if r.Email == "" {
		return errors.New("capture request requires a customer email")
	}
	return nil
}

// Gateway is the port to the external payment capture service. A non-error
// result is either a success carrying the same reference, or a dismissal.
// Transport failures are returned as errors and treated like dismissals by
// the orchestrator: the order stays pending server-side.
type Gateway interface {
	Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}

// CaptureResult is the gateway's answer to a capture attempt
type CaptureResult struct {
	Status    CaptureStatus
	Reference string
}
