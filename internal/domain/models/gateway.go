package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ChargeStatusRefunded is the gateway status of a fully refunded charge
const ChargeStatusRefunded = "refunded"

// GatewayCharge is the raw charge record as the payment gateway returns it.
// The gateway exposes the same fact under several keys depending on acquirer and API
// version, so most fields are optional and resolved through fallback chains.
type GatewayCharge struct {
	PaymentMethod     *string             `json:"payment_method"`
	AmountCents       *int64              `json:"amount"` // minor units, as the gateway reports it
	CreatedAt         *string             `json:"created_at"`
	UpdatedAt         *string             `json:"updated_at"`
	LastTransaction   *GatewayTransaction `json:"last_transaction"`
	AntifraudResponse *AntifraudResponse  `json:"antifraud_response"`
	Card              *CardDetails        `json:"card"`
	ID                string              `json:"id"`
	Status            string              `json:"status"`
}

// Amount converts the gateway's minor-unit amount to major units
func (c *GatewayCharge) Amount() decimal.Decimal {
	if c == nil || c.AmountCents == nil {
		return decimal.Zero
	}
	return decimal.New(*c.AmountCents, -2)
}

// GatewayTransaction is the last acquirer transaction attached to a charge
type GatewayTransaction struct {
	ThreeDSecure       *ThreeDSecure      `json:"threed_secure"`
	ThreeDSecureStatus *string            `json:"three_d_secure_status"`
	CVVResult          *string            `json:"cvv_result"`
	AVSResult          *string            `json:"avs_result"`
	AuthorizationCode  *string            `json:"authorization_code"`
	AcquirerAuthCode   *string            `json:"acquirer_auth_code"`
	NSU                *string            `json:"nsu"`
	AcquirerNSU        *string            `json:"acquirer_nsu"`
	GatewayResponse    *GatewayResponse   `json:"gateway_response"`
	AntifraudResponse  *AntifraudResponse `json:"antifraud_response"`
	Card               *CardDetails       `json:"card"`
}

// ThreeDSecure is the nested 3-D Secure block some acquirers return
type ThreeDSecure struct {
	Status *string `json:"status"`
}

// GatewayResponse is the acquirer's raw response echoed by the gateway
type GatewayResponse struct {
	CVVResult         *string `json:"cvv_result"`
	AVSResult         *string `json:"avs_result"`
	AuthorizationCode *string `json:"authorization_code"`
	NSU               *string `json:"nsu"`
}

// AntifraudResponse is the anti-fraud provider's verdict.
// Score arrives as a number or a numeric string depending on the provider.
type AntifraudResponse struct {
	Score  *json.Number `json:"score"`
	Status *string      `json:"status"`
}

// CardDetails describes the card used for the charge
type CardDetails struct {
	Brand          *string `json:"brand"`
	LastFourDigits *string `json:"last_four_digits"`
	LastDigits     *string `json:"last_digits"`
}
