// Package checklist builds the per-dispute-type evidence checklist of a rebuttal
// package: which items the type needs, how much each one matters, and whether the
// evidence behind it is already on hand.
package checklist

import (
	"fmt"
	"regexp"

	"github.com/kevin07696/dispute-evidence/internal/caseform"
	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// ItemID identifies a checklist item
type ItemID string

const (
	ItemTransaction     ItemID = "transaction"
	ItemInvoice         ItemID = "invoice"
	ItemDeliveryProof   ItemID = "delivery_tracking"
	ItemFulfillment     ItemID = "fulfillment_history"
	ItemCommunications  ItemID = "communications"
	ItemRefundPolicy    ItemID = "refund_policy"
	ItemTermsAcceptance ItemID = "terms_acceptance"
	ItemAntifraud       ItemID = "antifraud"
	ItemRefundReceipt   ItemID = "refund_receipt"
	ItemPurchaseHistory ItemID = "purchase_history"
	ItemTimeline        ItemID = "evidence_timeline"
)

// itemOrder is the subset and order of items each dispute type presents
var itemOrder = map[domain.DisputeType][]ItemID{
	domain.DisputeTypeCommercialDisagreement: {
		ItemTransaction, ItemInvoice, ItemRefundPolicy, ItemDeliveryProof, ItemTimeline,
		ItemPurchaseHistory, ItemCommunications, ItemTermsAcceptance, ItemFulfillment, ItemAntifraud,
	},
	domain.DisputeTypeProductNotReceived: {
		ItemTransaction, ItemInvoice, ItemDeliveryProof, ItemFulfillment, ItemTimeline,
		ItemCommunications, ItemPurchaseHistory, ItemTermsAcceptance, ItemAntifraud,
	},
	domain.DisputeTypeFraud: {
		ItemTransaction, ItemAntifraud, ItemPurchaseHistory, ItemTermsAcceptance, ItemInvoice,
		ItemTimeline, ItemFulfillment, ItemDeliveryProof, ItemCommunications,
	},
	domain.DisputeTypeCreditNotProcessed: {
		ItemTransaction, ItemRefundReceipt, ItemInvoice, ItemFulfillment, ItemTimeline,
		ItemCommunications, ItemPurchaseHistory, ItemRefundPolicy,
	},
}

// levelRule is an item's default requirement level plus per-type overrides
type levelRule struct {
	byType   map[domain.DisputeType]domain.RequirementLevel
	fallback domain.RequirementLevel
}

func (r levelRule) For(t domain.DisputeType) domain.RequirementLevel {
	if level, ok := r.byType[t]; ok {
		return level
	}
	return r.fallback
}

var requirementLevels = map[ItemID]levelRule{
	ItemTransaction: {fallback: domain.RequirementMandatory},
	ItemInvoice:     {fallback: domain.RequirementMandatory},
	ItemDeliveryProof: {
		byType:   map[domain.DisputeType]domain.RequirementLevel{domain.DisputeTypeProductNotReceived: domain.RequirementMandatory},
		fallback: domain.RequirementRecommended,
	},
	ItemFulfillment: {
		byType:   map[domain.DisputeType]domain.RequirementLevel{domain.DisputeTypeProductNotReceived: domain.RequirementMandatory},
		fallback: domain.RequirementRecommended,
	},
	ItemCommunications: {fallback: domain.RequirementRecommended},
	ItemRefundPolicy: {
		byType:   map[domain.DisputeType]domain.RequirementLevel{domain.DisputeTypeCommercialDisagreement: domain.RequirementMandatory},
		fallback: domain.RequirementRecommended,
	},
	ItemTermsAcceptance: {
		byType:   map[domain.DisputeType]domain.RequirementLevel{domain.DisputeTypeFraud: domain.RequirementMandatory},
		fallback: domain.RequirementRecommended,
	},
	ItemAntifraud: {
		byType: map[domain.DisputeType]domain.RequirementLevel{
			domain.DisputeTypeFraud:                  domain.RequirementMandatory,
			domain.DisputeTypeCommercialDisagreement: domain.RequirementRecommended,
		},
		fallback: domain.RequirementOptional,
	},
	ItemRefundReceipt: {
		byType:   map[domain.DisputeType]domain.RequirementLevel{domain.DisputeTypeCreditNotProcessed: domain.RequirementMandatory},
		fallback: domain.RequirementOptional,
	},
	ItemPurchaseHistory: {fallback: domain.RequirementRecommended},
	ItemTimeline:        {fallback: domain.RequirementRecommended},
}

// ItemsFor returns the ordered item identifiers of a dispute type
func ItemsFor(t domain.DisputeType) ([]ItemID, error) {
	ids, ok := itemOrder[t]
	if !ok {
		return nil, domain.NewInvalidDisputeTypeError(string(t))
	}
	return append([]ItemID(nil), ids...), nil
}

// LevelFor returns how much an item matters for a dispute type
func LevelFor(id ItemID, t domain.DisputeType) domain.RequirementLevel {
	return requirementLevels[id].For(t)
}

var shippedPattern = regexp.MustCompile(`(?i)expedi|fulfil|enviado|shipped`)

// facts are the availability inputs derived once from the form and enriched context
type facts struct {
	form     models.CaseForm
	enriched domain.EnrichedContext

	hasDeliveryProof  bool
	hasItems          bool
	hasBuyerIP        bool
	hasCommunications bool
	has3DS            bool
	hasHistory        bool
	isNewCustomer     bool
	hasTimeline       bool
	orderLinked       bool
	orderShipped      bool
	hasPolicyURL      bool
	policyAutoFilled  bool
}

func deriveFacts(form *models.CaseForm, enriched *domain.EnrichedContext) facts {
	var f facts
	if form != nil {
		f.form = *form
	}
	if enriched != nil {
		f.enriched = *enriched
	}
	ctx := f.enriched

	f.hasDeliveryProof = !caseform.IsEmpty(f.form.TrackingCode) ||
		!caseform.IsEmpty(f.form.TrackingEvents) ||
		ctx.WithdrawalWindow.DeliveryDate != nil
	f.hasItems = !caseform.IsEmpty(f.form.OrderItems)
	f.hasBuyerIP = !caseform.IsEmpty(f.form.BuyerIP)
	f.hasCommunications = !caseform.IsEmpty(f.form.Communications)
	f.has3DS = ctx.TransactionAuth != nil && !caseform.IsEmpty(ctx.TransactionAuth.ThreeDSecureStatus)

	if h := ctx.CustomerHistory; h != nil {
		f.hasHistory = h.TotalOrders > 1
		f.isNewCustomer = h.TotalOrders <= 1
	}

	f.hasTimeline = len(ctx.Timeline) > 2
	f.orderLinked = ctx.OrderLinked
	if f.orderLinked {
		for _, e := range ctx.Timeline {
			if shippedPattern.MatchString(e.Event) {
				f.orderShipped = true
				break
			}
		}
	}

	f.hasPolicyURL = !caseform.IsEmpty(f.form.RefundPolicyURL)
	f.policyAutoFilled = f.hasPolicyURL && ctx.RefundPolicyURL != nil
	return f
}

func text(s string) *string { return &s }

// pick returns a when cond holds, b otherwise
func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Build assembles the checklist of a dispute type. form and enriched may be nil;
// every item then degrades to missing or needs-verification. An unknown dispute type
// is a configuration error.
func Build(t domain.DisputeType, form *models.CaseForm, enriched *domain.EnrichedContext) ([]domain.ChecklistItem, error) {
	ids, err := ItemsFor(t)
	if err != nil {
		return nil, err
	}

	f := deriveFacts(form, enriched)
	items := make([]domain.ChecklistItem, 0, len(ids))
	for _, id := range ids {
		item := builders[id](t, f)
		item.ID = string(id)
		item.Level = LevelFor(id, t)
		items = append(items, item)
	}
	return items, nil
}

type itemBuilder func(t domain.DisputeType, f facts) domain.ChecklistItem

var builders = map[ItemID]itemBuilder{
	ItemTransaction: func(_ domain.DisputeType, _ facts) domain.ChecklistItem {
		return domain.ChecklistItem{
			Label:        "Proof of transaction",
			Description:  "NSU, authorization code, gateway data and the charge's unique identifier.",
			Availability: domain.AvailabilityAvailable,
			Source:       text("Gateway: charge id and last transaction"),
		}
	},
	ItemInvoice: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:        "Invoice / proof of sale",
			Description:  "Electronic invoice or receipt for the order; proves a legitimate sale.",
			Availability: pick(f.hasItems, domain.AvailabilityAvailable, domain.AvailabilityNeedsVerification),
			Source:       text(pick(f.hasItems, "E-commerce: order line items", "Form: order items")),
		}
		if !f.hasItems {
			item.Tip = text("Add the order items to the form to strengthen this point.")
		}
		return item
	},
	ItemDeliveryProof: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:        "Proof of delivery and tracking",
			Description:  "Tracking code, carrier scan history and the carrier's proof of delivery.",
			Availability: pick(f.hasDeliveryProof, domain.AvailabilityAvailable, domain.AvailabilityMissing),
			Source:       text(pick(f.hasDeliveryProof, "E-commerce fulfillment tracking and carrier scans", "Form: tracking code")),
		}
		if !f.hasDeliveryProof {
			item.Tip = text("Fill in the carrier and tracking code on the form.")
		}
		return item
	},
	ItemFulfillment: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:  "Order and fulfillment history",
			Source: text("E-commerce: order fulfillments"),
		}
		switch {
		case f.orderLinked && f.orderShipped:
			item.Description = "Full order history from the store: creation, picking, shipment and delivery."
			item.Availability = domain.AvailabilityAvailable
		case f.orderLinked:
			item.Description = "Order found in the store, but no fulfillment is recorded yet (order in preparation or digital)."
			item.Availability = domain.AvailabilityMissing
			item.Tip = text("The order exists but has no shipment record. Confirm whether it is a digital product or was shipped outside the platform.")
		default:
			item.Description = "Full order history: creation, picking, shipment and delivery."
			item.Availability = domain.AvailabilityNeedsVerification
			item.Tip = text("Link the e-commerce order to retrieve the history automatically.")
		}
		return item
	},
	ItemCommunications: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:        "Customer communication logs",
			Description:  "Emails, support tickets and chats showing the commercial relationship and the service provided.",
			Availability: pick(f.hasCommunications, domain.AvailabilityAvailable, domain.AvailabilityMissing),
			Source:       text("Form: communications"),
		}
		if !f.hasCommunications {
			item.Tip = text("Record the relevant communications on the form.")
		}
		return item
	},
	ItemRefundPolicy: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:        "Exchange and refund policy in force at purchase",
			Description:  "Capture of the policy published on the site at the purchase date; shows the customer was informed.",
			Availability: pick(f.hasPolicyURL, domain.AvailabilityAvailable, domain.AvailabilityNeedsVerification),
			Source:       text(pick(f.policyAutoFilled, "E-commerce: store refund policy URL", "Form: refund policy URL")),
		}
		if !f.hasPolicyURL {
			item.Tip = text("Enter the refund policy URL on the form.")
		}
		return item
	},
	ItemTermsAcceptance: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		accepted := f.enriched.TermsAccepted
		item := domain.ChecklistItem{
			Label:  "Customer acceptance of terms",
			Source: text("E-commerce: checkout custom attributes"),
		}
		switch {
		case accepted != nil && *accepted:
			item.Description = "Terms acceptance found in the checkout attributes."
			item.Availability = domain.AvailabilityAvailable
		case accepted != nil:
			item.Description = "No acceptance record in the checkout attributes. Check for manual evidence."
			item.Availability = domain.AvailabilityMissing
			item.Tip = text("Keep evidence of terms acceptance at checkout.")
		default:
			item.Description = "Checkout screenshot with the acceptance checkbox, or the electronic acceptance record of the terms of service."
			item.Availability = domain.AvailabilityNeedsVerification
			item.Tip = text("Keep evidence of terms acceptance at checkout.")
		}
		return item
	},
	ItemAntifraud: func(t domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:       "Anti-fraud evidence (IP, 3DS and device)",
			Description: "Buyer IP, device fingerprint and the transaction's anti-fraud score.",
			Source:      text("Gateway: last transaction (3DS, CVV, AVS) and form buyer IP"),
		}
		if f.has3DS {
			item.Description = fmt.Sprintf("3-D Secure: %s. Buyer IP, fingerprint and anti-fraud score.", *f.enriched.TransactionAuth.ThreeDSecureStatus)
		}
		switch {
		case f.hasBuyerIP || f.has3DS:
			item.Availability = domain.AvailabilityAvailable
		case t == domain.DisputeTypeFraud:
			item.Availability = domain.AvailabilityMissing
		default:
			item.Availability = domain.AvailabilityNeedsVerification
		}
		if item.Availability != domain.AvailabilityAvailable {
			item.Tip = text("Fill in the buyer IP on the form.")
		}
		return item
	},
	ItemRefundReceipt: func(t domain.DisputeType, f facts) domain.ChecklistItem {
		refund := f.enriched.Refund
		item := domain.ChecklistItem{
			Label:  "Refund receipt (if applicable)",
			Source: text("E-commerce: order refunds and gateway charge status"),
		}
		if refund != nil && refund.Processed {
			date := "unknown date"
			if refund.Date != nil {
				date = timeutil.FormatDate(*refund.Date)
			}
			item.Description = fmt.Sprintf("Refund of %s processed on %s (%s).", refund.Amount.StringFixed(2), date, refund.Source)
			item.Availability = domain.AvailabilityAvailable
			return item
		}
		item.Description = "Protocol and receipt of the return or credit to the customer, when the merchant already refunded."
		item.Availability = pick(t == domain.DisputeTypeCreditNotProcessed, domain.AvailabilityNeedsVerification, domain.AvailabilityMissing)
		item.Tip = text("Only applies when the store has already processed the refund.")
		return item
	},
	ItemPurchaseHistory: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		item := domain.ChecklistItem{
			Label:  "Customer purchase history",
			Source: text("E-commerce: every order placed with the customer's email"),
		}
		switch {
		case f.hasHistory:
			h := f.enriched.CustomerHistory
			item.Description = fmt.Sprintf("Repeat customer: %d orders, %s total.", h.TotalOrders, h.TotalSpent.StringFixed(2))
			item.Availability = domain.AvailabilityAvailable
		case f.isNewCustomer:
			item.Description = "New customer: this is the first and only recorded order, so there is no prior history to present."
			item.Availability = domain.AvailabilityMissing
			item.Tip = text("A new customer does not weaken the defense by itself. Reinforce it with anti-fraud data (IP, 3DS) and terms acceptance.")
		default:
			item.Description = "Previous orders by the same customer; shows a legitimate commercial relationship."
			item.Availability = domain.AvailabilityNeedsVerification
			item.Tip = text("Fetched automatically from the store when available.")
		}
		return item
	},
	ItemTimeline: func(_ domain.DisputeType, f facts) domain.ChecklistItem {
		return domain.ChecklistItem{
			Label:        "Chronological evidence timeline",
			Description:  "Automatic chronology: order, payment, shipment, delivery, chargeback.",
			Availability: pick(f.hasTimeline, domain.AvailabilityAvailable, domain.AvailabilityNeedsVerification),
			Source:       text("E-commerce fulfillments, gateway charge and carrier scans"),
		}
	},
}

// Summary is the soft completeness gate over a checklist
type Summary struct {
	MissingMandatory   []string `json:"missing_mandatory"`
	Available          int      `json:"available"`
	Total              int      `json:"total"`
	MandatorySatisfied bool     `json:"mandatory_satisfied"`
}

// Summarize counts available items and lists mandatory items not yet available.
// An unsatisfied summary warns the merchant; it never blocks submission.
func Summarize(items []domain.ChecklistItem) Summary {
	s := Summary{Total: len(items), MissingMandatory: []string{}}
	for _, item := range items {
		if item.Availability == domain.AvailabilityAvailable {
			s.Available++
		}
		if !item.IsSatisfied() {
			s.MissingMandatory = append(s.MissingMandatory, item.ID)
		}
	}
	s.MandatorySatisfied = len(s.MissingMandatory) == 0
	return s
}
