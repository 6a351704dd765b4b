package models

import (
	"strings"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// CaseForm is the partially filled rebuttal form the merchant edits.
// Monetary fields stay as typed text because the merchant enters them by hand.
type CaseForm struct {
	// Dispute
	Gateway     string             `json:"gateway"`
	DisputeID   string             `json:"dispute_id"`
	DisputeDate string             `json:"dispute_date"`
	DisputeType domain.DisputeType `json:"dispute_type"`

	// Transaction
	TransactionAmount string `json:"transaction_amount"`
	CardBrand         string `json:"card_brand"`
	CardLastFour      string `json:"card_last_four"`
	TransactionDate   string `json:"transaction_date"`

	// Order
	OrderNumber      string      `json:"order_number"`
	OrderItems       []OrderItem `json:"order_items"`
	ConfirmationCode string      `json:"confirmation_code"`

	// Customer
	CustomerName     string `json:"customer_name"`
	CustomerDocument string `json:"customer_document"`
	CustomerEmail    string `json:"customer_email"`
	ShippingAddress  string `json:"shipping_address"`
	BillingAddress   string `json:"billing_address"`
	BuyerIP          string `json:"buyer_ip"`

	// Delivery
	Carrier        string          `json:"carrier"`
	TrackingCode   string          `json:"tracking_code"`
	TrackingEvents []TrackingEvent `json:"tracking_events"`

	Communications []Communication `json:"communications"`

	// Merchant
	CompanyName     string `json:"company_name"`
	CompanyDocument string `json:"company_document"`
	CompanyEmail    string `json:"company_email"`
	CompanyPhone    string `json:"company_phone"`
	CompanyAddress  string `json:"company_address"`
	RefundPolicyURL string `json:"refund_policy_url"`
}

// OrderItem is one line of the order as shown in the form
type OrderItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// IsBlank returns true if every field is blank
func (i OrderItem) IsBlank() bool {
	return strings.TrimSpace(i.Description) == "" && strings.TrimSpace(i.Amount) == ""
}

// Communication is a logged contact with the customer (email, chat, phone)
type Communication struct {
	Date        string `json:"date"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
}

// IsBlank returns true if every field is blank
func (c Communication) IsBlank() bool {
	return strings.TrimSpace(c.Date) == "" &&
		strings.TrimSpace(c.Channel) == "" &&
		strings.TrimSpace(c.Description) == ""
}
