package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FulfillmentStatusDelivered is the e-commerce status of a delivered shipment
const FulfillmentStatusDelivered = "delivered"

// EcommerceOrder is the raw order record from the e-commerce platform.
// Prices are decimal strings in major units.
type EcommerceOrder struct {
	CreatedAt         *string            `json:"created_at"`
	UpdatedAt         *string            `json:"updated_at"`
	FulfillmentStatus *string            `json:"fulfillment_status"`
	Note              *string            `json:"note"`
	Customer          *EcommerceCustomer `json:"customer"`
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Currency          string             `json:"currency"`
	FinancialStatus   string             `json:"financial_status"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	LineItems         []LineItem         `json:"line_items"`
	Fulfillments      []Fulfillment      `json:"fulfillments"`
	Refunds           []OrderRefund      `json:"refunds"`
	CustomAttributes  []CustomAttribute  `json:"custom_attributes"`
}

// EcommerceCustomer is the customer nested in an order
type EcommerceCustomer struct {
	Phone          *string  `json:"phone"`
	DefaultAddress *Address `json:"default_address"`
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
}

// FullName joins first and last name, skipping blanks
func (c *EcommerceCustomer) FullName() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Address is a postal address as the platform stores it
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Format renders the address as one comma-separated line, skipping blank parts
func (a *Address) Format() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Address1, a.Address2, a.City, a.Province, a.Zip, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// LineItem is one product line of an order
type LineItem struct {
	SKU      *string         `json:"sku"`
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Fulfillment is a shipment covering part or all of an order
type Fulfillment struct {
	CreatedAt    *string       `json:"created_at"`
	UpdatedAt    *string       `json:"updated_at"`
	TrackingInfo *TrackingInfo `json:"tracking_info"`
	ID           string        `json:"id"`
	Status       string        `json:"status"`
}

// TrackingInfo is the carrier reference attached to a fulfillment
type TrackingInfo struct {
	Number  *string `json:"number"`
	Company *string `json:"company"`
	URL     *string `json:"url"`
}

// OrderRefund is a refund recorded against an order, in major units
type OrderRefund struct {
	CreatedAt *string         `json:"created_at"`
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
}

// CustomAttribute is a key/value pair captured at checkout
type CustomAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
