package evidence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kevin07696/dispute-evidence/internal/caseform"
	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	enrich "github.com/kevin07696/dispute-evidence/internal/evidence"
	"github.com/kevin07696/dispute-evidence/internal/evidence/checklist"
	"github.com/kevin07696/dispute-evidence/internal/services/ports"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// evidenceService implements the EvidenceService port
type evidenceService struct {
	recorder ports.EvidenceRecorder
	clock    timeutil.Clock
	logger   *zap.Logger
}

// NewEvidenceService creates a new evidence service.
// A nil recorder disables metrics; a nil clock uses the UTC wall clock.
func NewEvidenceService(
	recorder ports.EvidenceRecorder,
	clock timeutil.Clock,
	logger *zap.Logger,
) ports.EvidenceService {
	if clock == nil {
		clock = timeutil.Now
	}
	return &evidenceService{
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

// Enrich builds the enriched context for one evidence bundle
func (s *evidenceService) Enrich(ctx context.Context, bundle *models.EvidenceBundle) (*ports.EnrichResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, domain.WrapError(domain.ErrorCodeValidationFailed, "evidence bundle is required", domain.ErrNilBundle)
	}
	if strings.TrimSpace(bundle.Reason) == "" && strings.TrimSpace(bundle.DisputeOpenedDate) == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
			"dispute reason and dispute opened date are both missing").
			WithDetail("fields", []string{"reason", "dispute_opened_date"})
	}

	start := time.Now()
	now := s.clock()
	enrichmentID := uuid.New().String()

	_, parsed := enrich.ResolveDisputeDate(*bundle, now)
	if !parsed {
		s.logger.Warn("Dispute opened date unusable, using current time",
			zap.String("enrichment_id", enrichmentID),
			zap.String("dispute_opened_date", bundle.DisputeOpenedDate),
		)
	}

	enriched := enrich.BuildEnrichedContext(*bundle, now)

	reasonCode, network := "", ""
	if enriched.ReasonCode != nil {
		reasonCode = enriched.ReasonCode.ID
		network = string(enriched.ReasonCode.Network)
	}

	s.logger.Info("Evidence enriched",
		zap.String("enrichment_id", enrichmentID),
		zap.String("strength", string(enriched.OverallStrength)),
		zap.Int("score", enriched.StrengthScore),
		zap.String("reason_code", reasonCode),
		zap.String("window_status", string(enriched.WithdrawalWindow.Status)),
	)

	if s.recorder != nil {
		s.recorder.RecordEnrichment(
			string(enriched.OverallStrength),
			enriched.StrengthScore,
			string(enriched.ReasonCodeMatch),
			network,
			string(enriched.WithdrawalWindow.Status),
			time.Since(start),
		)
	}

	return &ports.EnrichResult{
		EnrichmentID:         enrichmentID,
		DisputeType:          domain.InferDisputeType(bundle.Reason),
		Context:              enriched,
		DisputeDateDefaulted: !parsed,
	}, nil
}

// BuildChecklist builds the ordered evidence checklist for a dispute type
func (s *evidenceService) BuildChecklist(ctx context.Context, req *ports.ChecklistRequest) (*ports.ChecklistResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.NewMissingFieldError("request")
	}

	disputeType := resolveDisputeType(req)
	if disputeType == "" {
		return nil, domain.NewMissingFieldError("dispute_type")
	}

	items, err := checklist.Build(disputeType, req.Form, req.Enriched)
	if err != nil {
		return nil, fmt.Errorf("failed to build checklist: %w", err)
	}
	summary := checklist.Summarize(items)

	s.logger.Debug("Checklist built",
		zap.String("dispute_type", string(disputeType)),
		zap.Int("available", summary.Available),
		zap.Int("total", summary.Total),
		zap.Strings("missing_mandatory", summary.MissingMandatory),
	)

	if s.recorder != nil {
		s.recorder.RecordChecklist(string(disputeType), summary.MandatorySatisfied, len(summary.MissingMandatory))
	}

	return &ports.ChecklistResult{
		DisputeType: disputeType,
		Items:       items,
		Summary:     summary,
	}, nil
}

// resolveDisputeType picks the explicit selector, then the form's, then infers one
// from the reason. Empty means nothing to go on.
func resolveDisputeType(req *ports.ChecklistRequest) domain.DisputeType {
	if req.DisputeType != "" {
		return req.DisputeType
	}
	if req.Form != nil && req.Form.DisputeType != "" {
		return req.Form.DisputeType
	}
	if strings.TrimSpace(req.Reason) != "" {
		return domain.InferDisputeType(req.Reason)
	}
	return ""
}

// VerifyForm counts filled mandatory and recommended form fields
func (s *evidenceService) VerifyForm(ctx context.Context, form *models.CaseForm) (*caseform.Verification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := caseform.Verify(form)
	if err != nil {
		return nil, fmt.Errorf("failed to verify form: %w", err)
	}

	s.logger.Debug("Form verified",
		zap.String("dispute_type", string(v.DisputeType)),
		zap.Int("mandatory_filled", v.MandatoryFilled),
		zap.Int("mandatory_total", v.MandatoryTotal),
	)
	return &v, nil
}

// AutofillForm fills empty form fields from the raw sources without overwriting input
func (s *evidenceService) AutofillForm(ctx context.Context, req *ports.AutofillRequest) (*ports.AutofillResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.NewMissingFieldError("request")
	}

	order := req.Order
	if order == nil && len(req.Orders) > 0 {
		order = caseform.MatchOrder(req.Orders, autofillAmount(req), autofillDate(req), s.clock())
		if order != nil {
			s.logger.Info("Matched order for autofill",
				zap.String("order", order.Name),
				zap.Int("candidates", len(req.Orders)),
			)
		}
	}

	patch := caseform.PatchFromSources(req.Charge, order, req.TrackingEvents)
	result := &ports.AutofillResult{
		MatchedOrder: order,
		Form:         caseform.Merge(req.Form, patch),
	}

	if result.Form.DisputeType != "" {
		v, err := caseform.Verify(&result.Form)
		if err != nil {
			return nil, fmt.Errorf("failed to verify autofilled form: %w", err)
		}
		result.Verification = &v
	}

	return result, nil
}

// autofillAmount prefers the amount the merchant typed, then the gateway's
func autofillAmount(req *ports.AutofillRequest) decimal.Decimal {
	if amount, ok := caseform.ParseAmount(req.Form.TransactionAmount); ok {
		return amount
	}
	return req.Charge.Amount()
}

func autofillDate(req *ports.AutofillRequest) string {
	if date := strings.TrimSpace(req.Form.TransactionDate); date != "" {
		return date
	}
	if req.Charge != nil && req.Charge.CreatedAt != nil {
		return *req.Charge.CreatedAt
	}
	return ""
}
