package caseform

import (
	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
)

// Field names a case form field
type Field string

const (
	FieldDisputeID         Field = "dispute_id"
	FieldCustomerName      Field = "customer_name"
	FieldCustomerEmail     Field = "customer_email"
	FieldCustomerDocument  Field = "customer_document"
	FieldTransactionAmount Field = "transaction_amount"
	FieldCardBrand         Field = "card_brand"
	FieldOrderItems        Field = "order_items"
	FieldConfirmationCode  Field = "confirmation_code"
	FieldCommunications    Field = "communications"
	FieldRefundPolicyURL   Field = "refund_policy_url"
	FieldShippingAddress   Field = "shipping_address"
	FieldBillingAddress    Field = "billing_address"
	FieldBuyerIP           Field = "buyer_ip"
	FieldTrackingCode      Field = "tracking_code"
	FieldTrackingEvents    Field = "tracking_events"
	FieldCarrier           Field = "carrier"
)

// Value returns the form's value for the field, or nil for an unknown field
func (f Field) Value(form *models.CaseForm) any {
	if form == nil {
		return nil
	}
	switch f {
	case FieldDisputeID:
		return form.DisputeID
	case FieldCustomerName:
		return form.CustomerName
	case FieldCustomerEmail:
		return form.CustomerEmail
	case FieldCustomerDocument:
		return form.CustomerDocument
	case FieldTransactionAmount:
		return form.TransactionAmount
	case FieldCardBrand:
		return form.CardBrand
	case FieldOrderItems:
		return form.OrderItems
	case FieldConfirmationCode:
		return form.ConfirmationCode
	case FieldCommunications:
		return form.Communications
	case FieldRefundPolicyURL:
		return form.RefundPolicyURL
	case FieldShippingAddress:
		return form.ShippingAddress
	case FieldBillingAddress:
		return form.BillingAddress
	case FieldBuyerIP:
		return form.BuyerIP
	case FieldTrackingCode:
		return form.TrackingCode
	case FieldTrackingEvents:
		return form.TrackingEvents
	case FieldCarrier:
		return form.Carrier
	default:
		return nil
	}
}

// Requirement is one form field a dispute type needs, and where it usually comes from
type Requirement struct {
	Field  Field                   `json:"field"`
	Label  string                  `json:"label"`
	Source string                  `json:"source"`
	Level  domain.RequirementLevel `json:"level"`
}

func mandatory(f Field, label, source string) Requirement {
	return Requirement{Field: f, Label: label, Source: source, Level: domain.RequirementMandatory}
}

func recommended(f Field, label, source string) Requirement {
	return Requirement{Field: f, Label: label, Source: source, Level: domain.RequirementRecommended}
}

const (
	sourceGateway   = "Gateway"
	sourceEcommerce = "E-commerce"
	sourceTracking  = "Tracking provider"
	sourceManual    = "Manual"
)

// requirements lists, per dispute type, the form fields in display order
var requirements = map[domain.DisputeType][]Requirement{
	domain.DisputeTypeCommercialDisagreement: {
		mandatory(FieldDisputeID, "Dispute ID", sourceGateway),
		mandatory(FieldCustomerName, "Customer name", sourceEcommerce+" / "+sourceManual),
		mandatory(FieldCustomerEmail, "Customer email", sourceGateway),
		mandatory(FieldTransactionAmount, "Transaction amount", sourceGateway),
		mandatory(FieldOrderItems, "Order items", sourceEcommerce),
		mandatory(FieldCommunications, "Customer communications", sourceManual),
		recommended(FieldConfirmationCode, "Confirmation code", sourceManual),
		recommended(FieldRefundPolicyURL, "Refund policy", sourceManual),
		recommended(FieldShippingAddress, "Shipping address", sourceEcommerce),
	},
	domain.DisputeTypeProductNotReceived: {
		mandatory(FieldDisputeID, "Dispute ID", sourceGateway),
		mandatory(FieldCustomerName, "Customer name", sourceEcommerce+" / "+sourceManual),
		mandatory(FieldCustomerEmail, "Customer email", sourceGateway),
		mandatory(FieldTransactionAmount, "Transaction amount", sourceGateway),
		mandatory(FieldTrackingCode, "Tracking code", sourceEcommerce),
		mandatory(FieldTrackingEvents, "Tracking events", sourceTracking),
		recommended(FieldCarrier, "Carrier", sourceEcommerce),
		recommended(FieldShippingAddress, "Shipping address", sourceEcommerce),
		recommended(FieldOrderItems, "Order items", sourceEcommerce),
	},
	domain.DisputeTypeFraud: {
		mandatory(FieldDisputeID, "Dispute ID", sourceGateway),
		mandatory(FieldCustomerName, "Customer name", sourceEcommerce+" / "+sourceManual),
		mandatory(FieldCustomerEmail, "Customer email", sourceGateway),
		mandatory(FieldTransactionAmount, "Transaction amount", sourceGateway),
		mandatory(FieldCustomerDocument, "Customer tax ID", sourceManual),
		mandatory(FieldBuyerIP, "Buyer IP", sourceManual),
		mandatory(FieldCardBrand, "Card brand", sourceGateway),
		recommended(FieldShippingAddress, "Shipping address", sourceEcommerce),
		recommended(FieldBillingAddress, "Billing address", sourceManual),
		recommended(FieldOrderItems, "Order items", sourceEcommerce),
	},
	domain.DisputeTypeCreditNotProcessed: {
		mandatory(FieldDisputeID, "Dispute ID", sourceGateway),
		mandatory(FieldCustomerName, "Customer name", sourceEcommerce+" / "+sourceManual),
		mandatory(FieldCustomerEmail, "Customer email", sourceGateway),
		mandatory(FieldTransactionAmount, "Transaction amount", sourceGateway),
		mandatory(FieldConfirmationCode, "Confirmation code", sourceManual),
		recommended(FieldOrderItems, "Order items", sourceEcommerce),
		recommended(FieldCommunications, "Customer communications", sourceManual),
	},
}

// Requirements returns the ordered form requirements of a dispute type
func Requirements(t domain.DisputeType) ([]Requirement, error) {
	reqs, ok := requirements[t]
	if !ok {
		return nil, domain.NewInvalidDisputeTypeError(string(t))
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out, nil
}

// FieldStatus is a requirement together with whether the form fills it
type FieldStatus struct {
	Requirement
	Filled bool `json:"filled"`
}

// Verification summarises how complete a form is for its dispute type.
// It informs the merchant; an incomplete form is never an error.
type Verification struct {
	DisputeType       domain.DisputeType `json:"dispute_type"`
	Fields            []FieldStatus      `json:"fields"`
	MandatoryFilled   int                `json:"mandatory_filled"`
	MandatoryTotal    int                `json:"mandatory_total"`
	RecommendedFilled int                `json:"recommended_filled"`
	RecommendedTotal  int                `json:"recommended_total"`
}

// Complete returns true if every mandatory field is filled
func (v Verification) Complete() bool {
	return v.MandatoryFilled == v.MandatoryTotal
}

// MissingMandatory lists the mandatory fields still empty, in display order
func (v Verification) MissingMandatory() []Field {
	var missing []Field
	for _, f := range v.Fields {
		if f.Level == domain.RequirementMandatory && !f.Filled {
			missing = append(missing, f.Field)
		}
	}
	return missing
}

// Verify checks the form against the requirements of its own dispute type
func Verify(form *models.CaseForm) (Verification, error) {
	if form == nil {
		return Verification{}, domain.ErrNilForm
	}

	reqs, err := Requirements(form.DisputeType)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{
		DisputeType: form.DisputeType,
		Fields:      make([]FieldStatus, 0, len(reqs)),
	}
	for _, r := range reqs {
		filled := !IsEmpty(r.Field.Value(form))
		v.Fields = append(v.Fields, FieldStatus{Requirement: r, Filled: filled})

		switch r.Level {
		case domain.RequirementMandatory:
			v.MandatoryTotal++
			if filled {
				v.MandatoryFilled++
			}
		case domain.RequirementRecommended:
			v.RecommendedTotal++
			if filled {
				v.RecommendedFilled++
			}
		}
	}
	return v, nil
}
