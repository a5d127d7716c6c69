package payment

import "encoding/json"

// Charge states reported by the Paystack API
const (
	paystackChargeSuccess   = "success"
	paystackChargePending   = "pending"
	paystackChargeAbandoned = "abandoned"
	paystackChargeFailed    = "failed"
)

// paystackEnvelope is the common response wrapper for all Paystack endpoints
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// paystackChargeRequest is the payload for POST /charge
type paystackChargeRequest struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"` // minor units (kobo)
	Currency  string            `json:"currency,omitempty"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// paystackChargeData is the charge state inside a charge or verify response
type paystackChargeData struct {
	Status         string `json:"status"`
	Reference      string `json:"reference"`
	GatewayMessage string `json:"gateway_response,omitempty"`
}
