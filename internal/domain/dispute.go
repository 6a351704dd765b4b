package domain

import "strings"

// DisputeType selects which evidence a rebuttal package must lead with.
// The checklist order and requirement levels are keyed by it.
type DisputeType string

const (
	DisputeTypeCommercialDisagreement DisputeType = "commercial_disagreement"
	DisputeTypeProductNotReceived     DisputeType = "product_not_received"
	DisputeTypeFraud                  DisputeType = "fraud"
	DisputeTypeCreditNotProcessed     DisputeType = "credit_not_processed"
)

// DisputeTypes lists every selector in display order
var DisputeTypes = []DisputeType{
	DisputeTypeCommercialDisagreement,
	DisputeTypeProductNotReceived,
	DisputeTypeFraud,
	DisputeTypeCreditNotProcessed,
}

var disputeTypeLabels = map[DisputeType]string{
	DisputeTypeCommercialDisagreement: "Commercial disagreement",
	DisputeTypeProductNotReceived:     "Product not received",
	DisputeTypeFraud:                  "Fraud",
	DisputeTypeCreditNotProcessed:     "Credit not processed",
}

// IsValid returns true if t is one of the four known selectors
func (t DisputeType) IsValid() bool {
	_, ok := disputeTypeLabels[t]
	return ok
}

// Label returns the human-readable name of the dispute type
func (t DisputeType) Label() string {
	if label, ok := disputeTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseDisputeType validates a selector supplied by a caller.
// An unknown value is a configuration fault, not missing evidence.
func ParseDisputeType(value string) (DisputeType, error) {
	t := DisputeType(strings.TrimSpace(value))
	if !t.IsValid() {
		return "", NewInvalidDisputeTypeError(value)
	}
	return t, nil
}

// InferDisputeType suggests a selector from the gateway's free-text dispute reason.
// Anything not recognised is treated as a commercial disagreement.
func InferDisputeType(reason string) DisputeType {
	r := strings.ToLower(reason)
	switch {
	case containsAny(r, "não recebido", "nao recebido", "not received"):
		return DisputeTypeProductNotReceived
	case containsAny(r, "fraude", "fraud", "unauthorized", "não autorizad", "nao autorizad"):
		return DisputeTypeFraud
	case containsAny(r, "crédito", "credito", "credit", "reembolso", "refund", "estorno"):
		return DisputeTypeCreditNotProcessed
	default:
		return DisputeTypeCommercialDisagreement
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
