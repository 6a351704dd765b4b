package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TrackingEvent is one carrier scan as the tracking provider reports it
type TrackingEvent struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// IsBlank returns true if every field is blank
func (e TrackingEvent) IsBlank() bool {
	return strings.TrimSpace(e.Date) == "" && strings.TrimSpace(e.Description) == ""
}

// EvidenceBundle is everything the surrounding system fetched about one dispute.
// Reason, dispute date and amount are always set by the caller; every raw source is
// optional and its absence degrades the matching projection instead of failing.
type EvidenceBundle struct {
	GatewayCharge        *GatewayCharge   `json:"gateway_charge"`
	EcommerceOrder       *EcommerceOrder  `json:"ecommerce_order"`
	BillingAddress       *string          `json:"billing_address_text"`
	ShippingAddress      *string          `json:"shipping_address_text"`
	RefundPolicyURL      *string          `json:"refund_policy_url"`
	CustomerEmail        string           `json:"customer_email"`
	Reason               string           `json:"reason"`
	DisputeOpenedDate    string           `json:"dispute_opened_date"`
	Amount               decimal.Decimal  `json:"amount"`
	CustomerOrderHistory []EcommerceOrder `json:"customer_order_history"`
	TrackingEvents       []TrackingEvent  `json:"tracking_events"`
}
