package evidence

import (
	"time"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/internal/evidence/reasoncode"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// ResolveDisputeDate parses the dispute-opened date, falling back to now.
// ok is false when the fallback was used.
func ResolveDisputeDate(bundle models.EvidenceBundle, now time.Time) (time.Time, bool) {
	return timeutil.ParseLenient(bundle.DisputeOpenedDate, now)
}

// BuildEnrichedContext runs one full enrichment pass over the bundle.
// It never fails: missing sources leave their projections absent and malformed dates
// fall back to now.
func BuildEnrichedContext(bundle models.EvidenceBundle, now time.Time) domain.EnrichedContext {
	disputeDate, _ := ResolveDisputeDate(bundle, now)

	enriched := domain.EnrichedContext{
		CustomerHistory:    BuildCustomerHistory(bundle.CustomerOrderHistory, now),
		TransactionAuth:    ExtractTransactionAuthentication(bundle.GatewayCharge),
		Timeline:           BuildTimeline(bundle, disputeDate, now),
		WithdrawalWindow:   AnalyzeWithdrawalWindow(bundle.TrackingEvents, bundle.EcommerceOrder, disputeDate, now),
		AddressConsistency: AnalyzeAddresses(bundle.BillingAddress, bundle.ShippingAddress),
		TermsAccepted:      ExtractTermsAccepted(bundle.EcommerceOrder),
		Refund:             ExtractRefundStatus(bundle.EcommerceOrder, bundle.GatewayCharge, now),
		RefundPolicyURL:    nonBlank(bundle.RefundPolicyURL),
		OrderLinked:        bundle.EcommerceOrder != nil,
	}

	if match, ok := reasoncode.Map(bundle.Reason); ok {
		info := match.Info
		enriched.ReasonCode = &info
		enriched.ReasonCodeMatch = match.Stage
	}

	strength := ScoreStrength(&enriched)
	enriched.StrengthScore = strength.Score
	enriched.OverallStrength = strength.Category
	enriched.StrengthReasons = strength.Reasons
	enriched.StrengthSignals = strength.Signals

	return enriched
}
