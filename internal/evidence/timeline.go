package evidence

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/pkg/timeutil"
)

// deliveryPattern recognises carrier descriptions and event labels that mean the
// parcel reached the recipient (Portuguese and English carrier wording).
var deliveryPattern = regexp.MustCompile(`(?i)entreg|delivered|destinat`)

// IsDeliveryLabel returns true if the carrier description or timeline label reports a delivery
func IsDeliveryLabel(label string) bool {
	return deliveryPattern.MatchString(label)
}

// BuildTimeline merges the dated facts of every source into one chronological
// timeline. disputeDate is the already resolved dispute-opened date.
//
// When a delivery event precedes the dispute, a computed event carrying the day count
// between them is added at the dispute date.
func BuildTimeline(bundle models.EvidenceBundle, disputeDate, now time.Time) []domain.TimelineEvent {
	events := make([]domain.TimelineEvent, 0, 4+len(bundle.TrackingEvents))

	if order := bundle.EcommerceOrder; order != nil && order.CreatedAt != nil {
		created, _ := timeutil.ParseLenient(*order.CreatedAt, now)
		events = append(events, domain.TimelineEvent{
			Date:   created,
			Event:  fmt.Sprintf("Order created (%s)", order.Name),
			Source: domain.ProvenanceEcommerce,
		})
	}

	if charge := bundle.GatewayCharge; charge != nil && charge.CreatedAt != nil {
		created, _ := timeutil.ParseLenient(*charge.CreatedAt, now)
		events = append(events, domain.TimelineEvent{
			Date:   created,
			Event:  "Payment authorized",
			Detail: nonBlank(charge.PaymentMethod),
			Source: domain.ProvenanceGateway,
		})
	}

	if order := bundle.EcommerceOrder; order != nil {
		for _, f := range order.Fulfillments {
			if f.CreatedAt == nil {
				continue
			}
			created, _ := timeutil.ParseLenient(*f.CreatedAt, now)
			var tracking *string
			if f.TrackingInfo != nil {
				tracking = nonBlank(f.TrackingInfo.Number)
			}
			events = append(events, domain.TimelineEvent{
				Date:   created,
				Event:  fmt.Sprintf("Fulfillment created (%s)", f.Status),
				Detail: tracking,
				Source: domain.ProvenanceEcommerce,
			})
		}
	}

	for _, te := range bundle.TrackingEvents {
		if te.IsBlank() {
			continue
		}
		date, _ := timeutil.ParseLenient(te.Date, now)
		events = append(events, domain.TimelineEvent{
			Date:   date,
			Event:  strings.TrimSpace(te.Description),
			Source: domain.ProvenanceTracking,
		})
	}

	events = append(events, domain.TimelineEvent{
		Date:   disputeDate,
		Event:  "Dispute opened",
		Source: domain.ProvenanceGateway,
	})

	sortTimeline(events)

	for _, e := range events {
		if !IsDeliveryLabel(e.Event) {
			continue
		}
		if days := timeutil.RoundedDaysBetween(e.Date, disputeDate); days > 0 {
			events = append(events, domain.TimelineEvent{
				Date:   disputeDate,
				Event:  fmt.Sprintf("%d days between delivery and dispute opening", days),
				Source: domain.ProvenanceComputed,
			})
			sortTimeline(events)
		}
		break
	}

	return events
}

// sortTimeline orders events by date; events on the same instant keep insertion order
func sortTimeline(events []domain.TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
