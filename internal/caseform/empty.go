// Package caseform works on the merchant's rebuttal form: deciding which fields are
// filled, which fields each dispute type needs, merging auto-filled data without
// overwriting user input, and picking the e-commerce order a dispute refers to.
package caseform

import (
	"strings"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
)

// IsEmpty is the single emptiness predicate shared by form verification, autofill
// merging and checklist availability. A value is empty when it is absent, a blank
// string, an empty list, or a list whose only element is itself empty.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return isBlank(v)
	case *string:
		return v == nil || isBlank(*v)
	case domain.DisputeType:
		return isBlank(string(v))
	case []string:
		return emptyList(v, isBlank)
	case []models.OrderItem:
		return emptyList(v, models.OrderItem.IsBlank)
	case []models.Communication:
		return emptyList(v, models.Communication.IsBlank)
	case []models.TrackingEvent:
		return emptyList(v, models.TrackingEvent.IsBlank)
	default:
		return false
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// emptyList treats a lone blank element (an untouched form row) as no list at all
func emptyList[T any](items []T, blank func(T) bool) bool {
	switch len(items) {
	case 0:
		return true
	case 1:
		return blank(items[0])
	default:
		return false
	}
}
