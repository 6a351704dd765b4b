package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evidence records are produced fresh by a single enrichment pass and never mutated
// afterwards. Optional facts are pointers; nil means "insufficient data", not "false".

// Provenance tags where a timeline event came from
type Provenance string

const (
	ProvenanceGateway   Provenance = "gateway"
	ProvenanceEcommerce Provenance = "ecommerce"
	ProvenanceTracking  Provenance = "tracking"
	ProvenanceComputed  Provenance = "computed"
)

// TimelineEvent is one dated fact in the evidentiary timeline
type TimelineEvent struct {
	Date   time.Time  `json:"date"`
	Detail *string    `json:"detail,omitempty"`
	Event  string     `json:"event"`
	Source Provenance `json:"source"`
}

// PastOrder is one entry of the customer's purchase history
type PastOrder struct {
	Date              time.Time       `json:"date"`
	FulfillmentStatus *string         `json:"fulfillment_status"`
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
}

// CustomerHistory summarises every order placed with the disputing customer's email
type CustomerHistory struct {
	FirstOrderDate   *time.Time      `json:"first_order_date"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	Orders           []PastOrder     `json:"orders"`
	TotalOrders      int             `json:"total_orders"`
	UndisputedOrders int             `json:"undisputed_orders"`
	RepeatBuyer      bool            `json:"repeat_buyer"`
}

// TransactionAuthentication holds the authentication facts reported by the gateway.
// Every field is independently optional.
type TransactionAuthentication struct {
	ThreeDSecureStatus *string `json:"three_d_secure_status"`
	CVVResult          *string `json:"cvv_result"`
	AVSResult          *string `json:"avs_result"`
	AuthorizationCode  *string `json:"authorization_code"`
	NSU                *string `json:"nsu"`
	AntifraudScore     *string `json:"antifraud_score"`
	AntifraudStatus    *string `json:"antifraud_status"`
	CardBrand          *string `json:"card_brand"`
	CardLastFour       *string `json:"card_last_four"`
}

// WindowStatus classifies the dispute date against the statutory withdrawal window
type WindowStatus string

const (
	WindowStatusWithin           WindowStatus = "within_window"
	WindowStatusExpired          WindowStatus = "expired"
	WindowStatusBeforeDelivery   WindowStatus = "before_delivery"
	WindowStatusInsufficientData WindowStatus = "insufficient_data"
)

// WithdrawalWindowAnalysis evaluates the 7-calendar-day withdrawal right (CDC Art. 49).
// It is always present; an unknown delivery date yields WindowStatusInsufficientData.
type WithdrawalWindowAnalysis struct {
	DisputeDate       time.Time    `json:"dispute_date"`
	DeliveryDate      *time.Time   `json:"delivery_date"`
	Deadline          *time.Time   `json:"deadline"`
	DaysAfterDelivery *int         `json:"days_after_delivery"`
	Status            WindowStatus `json:"status"`
	Narrative         string       `json:"narrative"`
	WithinWindow      bool         `json:"within_window"`
}

// Expired returns true only when a delivery date is known and the window has closed
func (w WithdrawalWindowAnalysis) Expired() bool {
	return w.Status == WindowStatusExpired
}

// SimilarityBand classifies an address similarity score
type SimilarityBand string

const (
	SimilarityNearIdentical          SimilarityBand = "near_identical"
	SimilarityCompatible             SimilarityBand = "compatible"
	SimilarityPartiallyDifferent     SimilarityBand = "partially_different"
	SimilaritySignificantlyDifferent SimilarityBand = "significantly_different"
	SimilarityInsufficientData       SimilarityBand = "insufficient_data"
)

// AddressConsistency compares billing and shipping addresses
type AddressConsistency struct {
	BillingAddress  *string        `json:"billing_address"`
	ShippingAddress *string        `json:"shipping_address"`
	Band            SimilarityBand `json:"band"`
	Narrative       string         `json:"narrative"`
	SimilarityScore int            `json:"similarity_score"`
	Match           bool           `json:"match"`
}

// RefundSource tags which system reported the refund
type RefundSource string

const (
	RefundSourceGateway   RefundSource = "gateway"
	RefundSourceEcommerce RefundSource = "ecommerce"
)

// RefundStatus records a refund the merchant already processed.
// Amount is in major currency units like every other engine amount.
type RefundStatus struct {
	Date      *time.Time      `json:"date"`
	Source    RefundSource    `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Processed bool            `json:"processed"`
}

// CardNetwork identifies the scheme that issued a reason code
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "visa"
	CardNetworkMastercard CardNetwork = "mastercard"
	CardNetworkElo        CardNetwork = "elo"
)

// WinRateHint estimates how often merchants win a rebuttal for a reason code
type WinRateHint string

const (
	WinRateHigh   WinRateHint = "high"
	WinRateMedium WinRateHint = "medium"
	WinRateLow    WinRateHint = "low"
)

// ReasonCodeInfo is one entry of the card-network reason-code catalogue
type ReasonCodeInfo struct {
	Network              CardNetwork `json:"network"`
	ID                   string      `json:"id"`
	Code                 string      `json:"code"`
	Description          string      `json:"description"`
	DescriptionLocalized string      `json:"description_localized"`
	WinRateHint          WinRateHint `json:"win_rate_hint"`
	RequiredEvidence     []string    `json:"required_evidence"`
	RecommendedEvidence  []string    `json:"recommended_evidence"`
}

// ReasonCodeMatchStage records which step of the mapping cascade produced a match
type ReasonCodeMatchStage string

const (
	MatchStageExact     ReasonCodeMatchStage = "exact"
	MatchStageSubstring ReasonCodeMatchStage = "substring"
	MatchStageKeyword   ReasonCodeMatchStage = "keyword"
)

// StrengthCategory is the three-level defensibility verdict
type StrengthCategory string

const (
	StrengthStrong   StrengthCategory = "strong"
	StrengthModerate StrengthCategory = "moderate"
	StrengthWeak     StrengthCategory = "weak"
)

// StrengthSignal is one scoring rule that fired
type StrengthSignal struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// EnrichedContext is the single output of an enrichment pass
type EnrichedContext struct {
	CustomerHistory    *CustomerHistory           `json:"customer_history"`
	TransactionAuth    *TransactionAuthentication `json:"transaction_auth"`
	ReasonCode         *ReasonCodeInfo            `json:"reason_code"`
	TermsAccepted      *bool                      `json:"terms_accepted"`
	Refund             *RefundStatus              `json:"refund"`
	RefundPolicyURL    *string                    `json:"refund_policy_url"`
	ReasonCodeMatch    ReasonCodeMatchStage       `json:"reason_code_match,omitempty"`
	OverallStrength    StrengthCategory           `json:"overall_strength"`
	Timeline           []TimelineEvent            `json:"timeline"`
	StrengthReasons    []string                   `json:"strength_reasons"`
	StrengthSignals    []StrengthSignal           `json:"strength_signals"`
	AddressConsistency AddressConsistency         `json:"address_consistency"`
	WithdrawalWindow   WithdrawalWindowAnalysis   `json:"withdrawal_window"`
	StrengthScore      int                        `json:"strength_score"`
	OrderLinked        bool                       `json:"order_linked"`
}

// RequirementLevel says how much a checklist item matters for a dispute type
type RequirementLevel string

const (
	RequirementMandatory   RequirementLevel = "mandatory"
	RequirementRecommended RequirementLevel = "recommended"
	RequirementOptional    RequirementLevel = "optional"
)

// Availability says whether the evidence behind a checklist item is on hand
type Availability string

const (
	AvailabilityAvailable         Availability = "available"
	AvailabilityMissing           Availability = "missing"
	AvailabilityNeedsVerification Availability = "needs_verification"
)

// ChecklistItem is one evidence requirement of a rebuttal package
type ChecklistItem struct {
	Tip          *string          `json:"tip,omitempty"`
	Source       *string          `json:"source,omitempty"`
	ID           string           `json:"id"`
	Label        string           `json:"label"`
	Description  string           `json:"description"`
	Level        RequirementLevel `json:"level"`
	Availability Availability     `json:"availability"`
}

// IsSatisfied returns true if the item is not mandatory or is available
func (i ChecklistItem) IsSatisfied() bool {
	return i.Level != RequirementMandatory || i.Availability == AvailabilityAvailable
}
