// Package evidence turns the raw, partial facts fetched for a dispute into a normalized
// case record: customer history, transaction authentication, refund status, terms
// acceptance, the evidentiary timeline, the withdrawal-window analysis, address
// consistency and the overall defensibility score.
//
// Every function here is pure. Nothing reads the wall clock; callers pass "now", which
// is only used as the fallback for dates that cannot be parsed.
package evidence

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

var termsPattern = regexp.MustCompile(`(?i)terms|termo|aceite|lgpd|privacidade|privacy|consent|accept|agree`)

// coalesce returns a copy of the first non-nil candidate, or nil
func coalesce[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			v := *c
			return &v
		}
	}
	return nil
}

// nonBlank returns a copy of s when it holds something other than whitespace
func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// parseOptional parses an optional raw date; malformed values fall back to now
func parseOptional(value *string, now time.Time) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	t, _ := timeutil.ParseLenient(*value, now)
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildCustomerHistory summarises the customer's orders, oldest first.
// It returns nil when no order list was supplied.
func BuildCustomerHistory(orders []models.EcommerceOrder, now time.Time) *domain.CustomerHistory {
	if len(orders) == 0 {
		return nil
	}

	past := make([]domain.PastOrder, 0, len(orders))
	total := decimal.Zero
	var first *time.Time

	for _, o := range orders {
		created, ok := timeutil.ParseLenient(deref(o.CreatedAt), now)
		past = append(past, domain.PastOrder{
			Name:              o.Name,
			Date:              created,
			Amount:            o.TotalPrice,
			FulfillmentStatus: coalesce(o.FulfillmentStatus),
		})
		total = total.Add(o.TotalPrice)
		if ok && (first == nil || created.Before(*first)) {
			c := created
			first = &c
		}
	}

	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Date.Before(past[j].Date)
	})

	return &domain.CustomerHistory{
		TotalOrders:      len(orders),
		TotalSpent:       total,
		FirstOrderDate:   first,
		UndisputedOrders: len(orders),
		RepeatBuyer:      len(orders) > 1,
		Orders:           past,
	}
}

// ExtractTransactionAuthentication projects the gateway charge onto its authentication
// facts. Each ambiguous field is resolved through its own fallback chain; the first
// present candidate wins. It returns nil when there is no charge.
func ExtractTransactionAuthentication(charge *models.GatewayCharge) *domain.TransactionAuthentication {
	if charge == nil {
		return nil
	}

	var tx models.GatewayTransaction
	if charge.LastTransaction != nil {
		tx = *charge.LastTransaction
	}
	var gw models.GatewayResponse
	if tx.GatewayResponse != nil {
		gw = *tx.GatewayResponse
	}
	var antifraud models.AntifraudResponse
	if af := coalesce(tx.AntifraudResponse, charge.AntifraudResponse); af != nil {
		antifraud = *af
	}
	var card models.CardDetails
	if c := coalesce(tx.Card, charge.Card); c != nil {
		card = *c
	}

	var threeDSNested *string
	if tx.ThreeDSecure != nil {
		threeDSNested = tx.ThreeDSecure.Status
	}

	var score *string
	if antifraud.Score != nil {
		s := antifraud.Score.String()
		score = &s
	}

	return &domain.TransactionAuthentication{
		// 3DS: nested block, then flat alternate key
		ThreeDSecureStatus: coalesce(threeDSNested, tx.ThreeDSecureStatus),
		// CVV / AVS: transaction field, then echoed acquirer response
		CVVResult: coalesce(tx.CVVResult, gw.CVVResult),
		AVSResult: coalesce(tx.AVSResult, gw.AVSResult),
		// authorization code: transaction, acquirer response, acquirer auth code
		AuthorizationCode: coalesce(tx.AuthorizationCode, gw.AuthorizationCode, tx.AcquirerAuthCode),
		// NSU: transaction, acquirer NSU, acquirer response
		NSU:             coalesce(tx.NSU, tx.AcquirerNSU, gw.NSU),
		AntifraudScore:  score,
		AntifraudStatus: coalesce(antifraud.Status),
		CardBrand:       coalesce(card.Brand),
		CardLastFour:    coalesce(card.LastFourDigits, card.LastDigits),
	}
}

// ExtractRefundStatus reports a refund the merchant already processed. E-commerce
// refund records take precedence over the gateway charge status.
func ExtractRefundStatus(order *models.EcommerceOrder, charge *models.GatewayCharge, now time.Time) *domain.RefundStatus {
	if order != nil && len(order.Refunds) > 0 {
		refund := order.Refunds[0]
		return &domain.RefundStatus{
			Processed: true,
			Amount:    refund.Amount,
			Date:      parseOptional(refund.CreatedAt, now),
			Source:    domain.RefundSourceEcommerce,
		}
	}

	if charge != nil && charge.Status == models.ChargeStatusRefunded {
		return &domain.RefundStatus{
			Processed: true,
			Amount:    charge.Amount(),
			Date:      parseOptional(coalesce(charge.UpdatedAt, charge.CreatedAt), now),
			Source:    domain.RefundSourceGateway,
		}
	}

	return nil
}

// ExtractTermsAccepted looks for a recorded terms/consent acceptance at checkout.
// It is ternary: true when an attribute or the order note mentions acceptance, false
// when checkout attributes exist but none do, nil when there is nothing to inspect.
func ExtractTermsAccepted(order *models.EcommerceOrder) *bool {
	if order == nil {
		return nil
	}

	accepted := true
	for _, attr := range order.CustomAttributes {
		if termsPattern.MatchString(attr.Key) || termsPattern.MatchString(attr.Value) {
			return &accepted
		}
	}
	if order.Note != nil && termsPattern.MatchString(*order.Note) {
		return &accepted
	}

	if len(order.CustomAttributes) > 0 {
		notAccepted := false
		return &notAccepted
	}
	return nil
}
