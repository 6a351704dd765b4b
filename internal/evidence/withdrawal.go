package evidence

import (
	"fmt"
	"time"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// WithdrawalWindowDays is the statutory withdrawal period for distance purchases (CDC Art. 49)
const WithdrawalWindowDays = 7

// ResolveDeliveryDate finds when the parcel was delivered. Carrier scans win over the
// e-commerce fulfillment status; within the scans, the first delivery scan in the
// order given is used.
func ResolveDeliveryDate(tracking []models.TrackingEvent, order *models.EcommerceOrder, now time.Time) *time.Time {
	for _, te := range tracking {
		if te.IsBlank() || !IsDeliveryLabel(te.Description) {
			continue
		}
		date, _ := timeutil.ParseLenient(te.Date, now)
		return &date
	}

	if order == nil {
		return nil
	}
	for _, f := range order.Fulfillments {
		if f.Status != models.FulfillmentStatusDelivered {
			continue
		}
		return parseOptional(f.UpdatedAt, now)
	}
	return nil
}

// AnalyzeWithdrawalWindow evaluates the dispute against the 7-calendar-day withdrawal
// window that starts at delivery. Day counts compare UTC calendar dates.
func AnalyzeWithdrawalWindow(tracking []models.TrackingEvent, order *models.EcommerceOrder, disputeDate, now time.Time) domain.WithdrawalWindowAnalysis {
	analysis := domain.WithdrawalWindowAnalysis{
		DisputeDate: disputeDate,
	}

	delivery := ResolveDeliveryDate(tracking, order, now)
	if delivery == nil {
		analysis.Status = domain.WindowStatusInsufficientData
		analysis.Narrative = "Delivery date could not be determined, so the 7-day withdrawal window (CDC Art. 49) cannot be evaluated."
		return analysis
	}

	days := timeutil.CalendarDaysBetween(*delivery, disputeDate)
	deadline := timeutil.StartOfDay(*delivery).AddDate(0, 0, WithdrawalWindowDays)

	analysis.DeliveryDate = delivery
	analysis.Deadline = &deadline
	analysis.DaysAfterDelivery = &days

	switch {
	case days < 0:
		analysis.Status = domain.WindowStatusBeforeDelivery
		analysis.Narrative = fmt.Sprintf(
			"The dispute was opened %d day(s) BEFORE the recorded delivery on %s. The customer may not have had the product when disputing; check the delivery records.",
			-days, timeutil.FormatDate(*delivery))
	case days <= WithdrawalWindowDays:
		analysis.Status = domain.WindowStatusWithin
		analysis.WithinWindow = true
		analysis.Narrative = fmt.Sprintf(
			"The dispute was opened %d day(s) after delivery, INSIDE the 7-day withdrawal window (CDC Art. 49) that ends on %s.",
			days, timeutil.FormatDate(deadline))
	default:
		analysis.Status = domain.WindowStatusExpired
		analysis.Narrative = fmt.Sprintf(
			"The dispute was opened %d days after delivery, OUTSIDE the 7-day withdrawal window (CDC Art. 49), which expired on %s. The customer did not exercise the withdrawal right in time.",
			days, timeutil.FormatDate(deadline))
	}

	return analysis
}
