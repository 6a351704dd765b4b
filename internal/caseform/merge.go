package caseform

import (
	"strings"

	"github.com/kevin07696/dispute-evidence/internal/domain/models"
)

// fill copies src into dst only when dst is empty and src is not
func fill[T any](dst *T, src T) {
	if IsEmpty(*dst) && !IsEmpty(src) {
		*dst = src
	}
}

// Merge overlays auto-filled data onto the merchant's form. A field is taken from
// incoming only when the current value is empty; user input is never overwritten.
func Merge(current, incoming models.CaseForm) models.CaseForm {
	merged := current

	fill(&merged.Gateway, incoming.Gateway)
	fill(&merged.DisputeID, incoming.DisputeID)
	fill(&merged.DisputeDate, incoming.DisputeDate)
	fill(&merged.DisputeType, incoming.DisputeType)

	fill(&merged.TransactionAmount, incoming.TransactionAmount)
	fill(&merged.CardBrand, incoming.CardBrand)
	fill(&merged.CardLastFour, incoming.CardLastFour)
	fill(&merged.TransactionDate, incoming.TransactionDate)

	fill(&merged.OrderNumber, incoming.OrderNumber)
	fill(&merged.OrderItems, incoming.OrderItems)
	fill(&merged.ConfirmationCode, incoming.ConfirmationCode)

	fill(&merged.CustomerName, incoming.CustomerName)
	fill(&merged.CustomerDocument, incoming.CustomerDocument)
	fill(&merged.CustomerEmail, incoming.CustomerEmail)
	fill(&merged.ShippingAddress, incoming.ShippingAddress)
	fill(&merged.BillingAddress, incoming.BillingAddress)
	fill(&merged.BuyerIP, incoming.BuyerIP)

	fill(&merged.Carrier, incoming.Carrier)
	fill(&merged.TrackingCode, incoming.TrackingCode)
	fill(&merged.TrackingEvents, incoming.TrackingEvents)

	fill(&merged.Communications, incoming.Communications)

	fill(&merged.CompanyName, incoming.CompanyName)
	fill(&merged.CompanyDocument, incoming.CompanyDocument)
	fill(&merged.CompanyEmail, incoming.CompanyEmail)
	fill(&merged.CompanyPhone, incoming.CompanyPhone)
	fill(&merged.CompanyAddress, incoming.CompanyAddress)
	fill(&merged.RefundPolicyURL, incoming.RefundPolicyURL)

	return merged
}

// PatchFromSources builds the auto-fill patch from the raw gateway charge, the matched
// e-commerce order and the carrier scans. Order data wins over charge data for the
// fields both provide, mirroring which source the merchant trusts more.
func PatchFromSources(charge *models.GatewayCharge, order *models.EcommerceOrder, tracking []models.TrackingEvent) models.CaseForm {
	var patch models.CaseForm

	if charge != nil {
		var card *models.CardDetails
		if charge.LastTransaction != nil && charge.LastTransaction.Card != nil {
			card = charge.LastTransaction.Card
		} else {
			card = charge.Card
		}
		if card != nil {
			patch.CardBrand = deref(card.Brand)
			patch.CardLastFour = deref(card.LastFourDigits)
			if patch.CardLastFour == "" {
				patch.CardLastFour = deref(card.LastDigits)
			}
		}
		if created := deref(charge.CreatedAt); created != "" {
			patch.TransactionDate, _, _ = strings.Cut(created, "T")
		}
		if charge.AmountCents != nil {
			patch.TransactionAmount = charge.Amount().StringFixed(2)
		}
		patch.ConfirmationCode = charge.ID
	}

	if order != nil {
		patch.OrderNumber = order.Name
		patch.TransactionAmount = order.TotalPrice.StringFixed(2)
		patch.CustomerEmail = order.Email
		if order.Customer != nil {
			if order.Customer.Email != "" {
				patch.CustomerEmail = order.Customer.Email
			}
			patch.CustomerName = order.Customer.FullName()
			patch.ShippingAddress = order.Customer.DefaultAddress.Format()
		}
		for _, li := range order.LineItems {
			patch.OrderItems = append(patch.OrderItems, models.OrderItem{
				Description: li.Title,
				Amount:      li.Price.StringFixed(2),
			})
		}
		if len(order.Fulfillments) > 0 && order.Fulfillments[0].TrackingInfo != nil {
			info := order.Fulfillments[0].TrackingInfo
			patch.Carrier = deref(info.Company)
			patch.TrackingCode = deref(info.Number)
		}
	}

	if len(tracking) > 0 {
		patch.TrackingEvents = append([]models.TrackingEvent(nil), tracking...)
	}

	return patch
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
