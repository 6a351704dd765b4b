package ports

import (
	"context"
	"time"

	"github.com/kevin07696/dispute-evidence/internal/caseform"
	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/internal/evidence/checklist"
)

// EnrichResult is the outcome of one enrichment pass
type EnrichResult struct {
	EnrichmentID string                 `json:"enrichment_id"`
	DisputeType  domain.DisputeType     `json:"dispute_type"` // inferred from the dispute reason
	Context      domain.EnrichedContext `json:"enriched_context"`
	// DisputeDateDefaulted is true when the dispute-opened date was unusable and the
	// clock was used instead
	DisputeDateDefaulted bool `json:"dispute_date_defaulted"`
}

// ChecklistRequest contains parameters for building an evidence checklist
type ChecklistRequest struct {
	Form     *models.CaseForm
	Enriched *domain.EnrichedContext
	// DisputeType selects the checklist. When empty it is taken from the form, then
	// inferred from Reason.
	DisputeType domain.DisputeType
	Reason      string
}

// ChecklistResult is an ordered checklist plus its completeness summary
type ChecklistResult struct {
	DisputeType domain.DisputeType     `json:"dispute_type"`
	Items       []domain.ChecklistItem `json:"items"`
	Summary     checklist.Summary      `json:"summary"`
}

// AutofillRequest contains the merchant's current form and the raw sources to fill it from
type AutofillRequest struct {
	Charge *models.GatewayCharge
	// Order is the linked order. When nil the best match among Orders is used.
	Order          *models.EcommerceOrder
	Form           models.CaseForm
	Orders         []models.EcommerceOrder
	TrackingEvents []models.TrackingEvent
}

// AutofillResult is the merged form
type AutofillResult struct {
	MatchedOrder *models.EcommerceOrder `json:"matched_order,omitempty"`
	// Verification is nil when the form has no dispute type yet
	Verification *caseform.Verification `json:"verification,omitempty"`
	Form         models.CaseForm        `json:"form"`
}

// EvidenceRecorder receives enrichment and checklist outcomes for monitoring
type EvidenceRecorder interface {
	RecordEnrichment(strength string, score int, stage, network, windowStatus string, duration time.Duration)
	RecordChecklist(disputeType string, mandatorySatisfied bool, missingMandatory int)
}

// EvidenceService defines the port for dispute evidence enrichment
type EvidenceService interface {
	// Enrich builds the enriched context for one evidence bundle
	Enrich(ctx context.Context, bundle *models.EvidenceBundle) (*EnrichResult, error)

	// BuildChecklist builds the ordered evidence checklist for a dispute type
	BuildChecklist(ctx context.Context, req *ChecklistRequest) (*ChecklistResult, error)

	// VerifyForm counts filled mandatory and recommended form fields
	VerifyForm(ctx context.Context, form *models.CaseForm) (*caseform.Verification, error)

	// AutofillForm fills empty form fields from the raw sources without overwriting input
	AutofillForm(ctx context.Context, req *AutofillRequest) (*AutofillResult, error)
}
