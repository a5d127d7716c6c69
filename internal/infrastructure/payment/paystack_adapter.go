package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shop/storefront/internal/domain/checkout"
	"github.com/shop/storefront/internal/domain/shared"
)

// paystackMaxResponseSize is the maximum allowed response size from the Paystack API (1MB)
const paystackMaxResponseSize = 1 * 1024 * 1024

// PaystackAdapter implements the payment gateway port for Paystack.
// A capture is one charge call, plus a single verify round trip when the
// gateway reports the charge as still pending.
type PaystackAdapter struct {
	config     *PaystackConfig
	httpClient *http.Client
}

// NewPaystackAdapter creates a new Paystack adapter
func NewPaystackAdapter(config *PaystackConfig) (*PaystackAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PaystackAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Capture charges the customer for the given reference. An abandoned charge
// comes back as a dismissal, not an error; transport failures and declined
// charges come back as errors so the caller keeps the reference and retries.
func (a *PaystackAdapter) Capture(ctx context.Context, req checkout.CaptureRequest) (*checkout.CaptureResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	charge := paystackChargeRequest{
		Email:     req.Email,
		Amount:    req.AmountMinor,
		Currency:  req.Currency,
		Reference: req.Reference,
		Metadata:  req.Metadata,
	}

	data, err := a.post(ctx, "/charge", charge)
	if err != nil {
		return nil, err
	}
	if data.Status == paystackChargePending {
		// Give the gateway one settlement round trip before reporting back
		data, err = a.verify(ctx, req.Reference)
		if err != nil {
			return nil, err
		}
	}

	reference := data.Reference
	if reference == "" {
		reference = req.Reference
	}

	switch data.Status {
	case paystackChargeSuccess:
		return &checkout.CaptureResult{Status: checkout.CaptureSucceeded, Reference: reference}, nil
	case paystackChargeAbandoned:
		return &checkout.CaptureResult{Status: checkout.CaptureDismissed, Reference: reference}, nil
	case paystackChargeFailed:
		return nil, fmt.Errorf("paystack: charge declined: %s", data.GatewayMessage)
	default:
		return nil, fmt.Errorf("paystack: unexpected charge state %q", data.Status)
	}
}

// verify fetches the current state of a charge by reference
func (a *PaystackAdapter) verify(ctx context.Context, reference string) (*paystackChargeData, error) {
	return a.request(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
}

func (a *PaystackAdapter) post(ctx context.Context, path string, body any) (*paystackChargeData, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("paystack: encoding request: %w", err)
	}
	return a.request(ctx, http.MethodPost, path, payload)
}

func (a *PaystackAdapter) request(ctx context.Context, method, path string, payload []byte) (*paystackChargeData, error) {
	endpoint := strings.TrimSuffix(a.config.BaseURL, "/") + path
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("paystack: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.SecretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: paystack: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, paystackMaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: paystack: reading response: %v", shared.ErrNetwork, err)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("paystack: decoding response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !envelope.Status {
		return nil, fmt.Errorf("paystack: api error (%d): %s", resp.StatusCode, envelope.Message)
	}

	var data paystackChargeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("paystack: decoding charge data: %w", err)
	}
	return &data, nil
}

var _ checkout.Gateway = (*PaystackAdapter)(nil)
