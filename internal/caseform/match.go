package caseform

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// AmountTolerance is the relative difference under which an order total counts as
// the disputed amount (installment fees and rounding).
var AmountTolerance = decimal.NewFromFloat(0.02)

var amountNoise = regexp.MustCompile(`[^\d.,-]`)

// ParseAmount reads a hand-typed amount. Text containing a comma is read in the
// Brazilian format ("1.234,56"); otherwise the dot is the decimal separator.
func ParseAmount(text string) (decimal.Decimal, bool) {
	raw := amountNoise.ReplaceAllString(strings.TrimSpace(text), "")
	if raw == "" {
		return decimal.Zero, false
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// withinTolerance reports whether price is within AmountTolerance of target.
// Only a positive target has a tolerance band.
func withinTolerance(price, target decimal.Decimal) bool {
	if !target.IsPositive() {
		return false
	}
	return price.Sub(target).Abs().Div(target).LessThanOrEqual(AmountTolerance)
}

// MatchOrder picks the customer's order a dispute most likely refers to. Orders whose
// total is within tolerance of the amount are preferred (all orders when none are, or
// when the amount is not positive); among those, the one created closest to the transaction
// date wins, first in input order on ties. It returns nil when there are no orders.
func MatchOrder(orders []models.EcommerceOrder, amount decimal.Decimal, transactionDate string, now time.Time) *models.EcommerceOrder {
	if len(orders) == 0 {
		return nil
	}

	pool := make([]int, 0, len(orders))
	if amount.IsPositive() {
		for i, o := range orders {
			if withinTolerance(o.TotalPrice, amount) {
				pool = append(pool, i)
			}
		}
	}
	if len(pool) == 0 {
		for i := range orders {
			pool = append(pool, i)
		}
	}

	best := pool[0]
	target, ok := timeutil.ParseLenient(transactionDate, now)
	if ok && len(pool) > 1 {
		bestDistance := time.Duration(-1)
		for _, i := range pool {
			created, _ := timeutil.ParseLenient(deref(orders[i].CreatedAt), now)
			distance := created.Sub(target)
			if distance < 0 {
				distance = -distance
			}
			if bestDistance < 0 || distance < bestDistance {
				best, bestDistance = i, distance
			}
		}
	}

	match := orders[best]
	return &match
}
