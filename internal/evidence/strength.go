package evidence

import (
	"fmt"
	"strings"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// Category thresholds for the additive strength score
const (
	StrongThreshold   = 6
	ModerateThreshold = 3
)

// Strength is the scorer's verdict together with the rules that fired
type Strength struct {
	Category domain.StrengthCategory
	Reasons  []string
	Signals  []domain.StrengthSignal
	Score    int
}

// strengthRule awards points when its predicate holds. The reason is built from the
// same context so it can cite the facts behind the signal.
type strengthRule struct {
	name   string
	points int
	eval   func(ctx *domain.EnrichedContext) (string, bool)
}

// strengthRules is evaluated in order; reasons are reported in the same order
var strengthRules = []strengthRule{
	{
		name:   "delivery_proven",
		points: 3,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			for _, e := range ctx.Timeline {
				if IsDeliveryLabel(e.Event) {
					return "Delivery proven by carrier tracking", true
				}
			}
			return "", false
		},
	},
	{
		name:   "repeat_buyer",
		points: 2,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			h := ctx.CustomerHistory
			if h == nil || !h.RepeatBuyer {
				return "", false
			}
			return fmt.Sprintf("Repeat customer (%d orders, %s total spent)", h.TotalOrders, h.TotalSpent.StringFixed(2)), true
		},
	},
	{
		name:   "withdrawal_window_expired",
		points: 2,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			w := ctx.WithdrawalWindow
			if !w.Expired() || w.DaysAfterDelivery == nil {
				return "", false
			}
			return fmt.Sprintf("Withdrawal window (CDC Art. 49) expired, dispute opened %d days after delivery", *w.DaysAfterDelivery), true
		},
	},
	{
		name:   "addresses_consistent",
		points: 1,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if !ctx.AddressConsistency.Match {
				return "", false
			}
			return "Billing and shipping addresses are consistent", true
		},
	},
	{
		name:   "three_d_secure",
		points: 2,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if ctx.TransactionAuth == nil || !ThreeDSecureAuthenticated(ctx.TransactionAuth.ThreeDSecureStatus) {
				return "", false
			}
			return "Transaction authenticated with 3-D Secure", true
		},
	},
	{
		name:   "cvv_match",
		points: 1,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if ctx.TransactionAuth == nil || !CVVMatched(ctx.TransactionAuth.CVVResult) {
				return "", false
			}
			return "CVV verified", true
		},
	},
	{
		name:   "antifraud_approved",
		points: 1,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if ctx.TransactionAuth == nil || !AntifraudApproved(ctx.TransactionAuth.AntifraudStatus) {
				return "", false
			}
			return "Anti-fraud analysis approved the transaction", true
		},
	},
	{
		name:   "high_win_rate",
		points: 1,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if ctx.ReasonCode == nil || ctx.ReasonCode.WinRateHint != domain.WinRateHigh {
				return "", false
			}
			return fmt.Sprintf("Reason code %s has a high merchant win rate", ctx.ReasonCode.Code), true
		},
	},
	{
		name:   "terms_accepted",
		points: 1,
		eval: func(ctx *domain.EnrichedContext) (string, bool) {
			if ctx.TermsAccepted == nil || !*ctx.TermsAccepted {
				return "", false
			}
			return "Terms of purchase accepted at checkout", true
		},
	},
}

// ScoreStrength applies every scoring rule to the enriched context
func ScoreStrength(ctx *domain.EnrichedContext) Strength {
	s := Strength{
		Reasons: []string{},
		Signals: []domain.StrengthSignal{},
	}
	for _, rule := range strengthRules {
		reason, ok := rule.eval(ctx)
		if !ok {
			continue
		}
		s.Score += rule.points
		s.Reasons = append(s.Reasons, reason)
		s.Signals = append(s.Signals, domain.StrengthSignal{
			Name:   rule.name,
			Points: rule.points,
			Reason: reason,
		})
	}
	s.Category = Categorize(s.Score)
	return s
}

// Categorize maps an additive score onto strong / moderate / weak
func Categorize(score int) domain.StrengthCategory {
	switch {
	case score >= StrongThreshold:
		return domain.StrengthStrong
	case score >= ModerateThreshold:
		return domain.StrengthModerate
	default:
		return domain.StrengthWeak
	}
}

// affirms reports whether value contains a positive marker and no negating one
func affirms(value *string, positives, negatives []string) bool {
	if value == nil {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	if v == "" {
		return false
	}
	for _, n := range negatives {
		if strings.Contains(v, n) {
			return false
		}
	}
	for _, p := range positives {
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}

// ThreeDSecureAuthenticated returns true for a 3DS status that reports successful authentication
func ThreeDSecureAuthenticated(status *string) bool {
	return affirms(status,
		[]string{"authenticat", "autenticad"},
		[]string{"not", "non", "unauth", "nao", "não", "fail", "falh", "error", "erro", "reject"})
}

// CVVMatched returns true for a CVV result that reports a match.
// The single-letter acquirer code "M" counts as a match.
func CVVMatched(result *string) bool {
	if result != nil && strings.EqualFold(strings.TrimSpace(*result), "m") {
		return true
	}
	return affirms(result,
		[]string{"match", "compat"},
		[]string{"mismatch", "no match", "no_match", "nomatch", "not", "incompat", "unmatch"})
}

// AntifraudApproved returns true for an anti-fraud verdict that approved the transaction
func AntifraudApproved(status *string) bool {
	return affirms(status,
		[]string{"approv", "aprovad"},
		[]string{"not", "disapprov", "unapprov", "reprov", "nao", "não"})
}
