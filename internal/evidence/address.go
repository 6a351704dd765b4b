package evidence

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// AddressMatchThreshold is the lowest similarity score counted as a match
const AddressMatchThreshold = 70

// minWordLength filters out house-number fragments, articles and state abbreviations
const minWordLength = 3

// NormalizeAddress lowercases the text, strips diacritics and punctuation, and collapses
// whitespace. Punctuation is deleted rather than spaced, so "1.500" and "1500" agree;
// letters left outside a-z after mark removal are dropped too.
func NormalizeAddress(s string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// significantWords returns the distinct words of a normalized address longer than two characters
func significantWords(normalized string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		if len([]rune(w)) >= minWordLength {
			words[w] = struct{}{}
		}
	}
	return words
}

// AddressSimilarity scores two addresses 0-100 by significant-word overlap:
// shared words over the larger of the two word sets. Two addresses without any
// significant word score 0, even when their text is identical; otherwise identical
// normalized text scores 100.
func AddressSimilarity(a, b string) int {
	na, nb := NormalizeAddress(a), NormalizeAddress(b)
	if na == "" || nb == "" {
		return 0
	}

	wa, wb := significantWords(na), significantWords(nb)
	largest := max(len(wa), len(wb))
	if largest == 0 {
		return 0
	}
	if na == nb {
		return 100
	}

	common := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			common++
		}
	}
	return int(math.Round(100 * float64(common) / float64(largest)))
}

// SimilarityBandFor classifies a similarity score
func SimilarityBandFor(score int) domain.SimilarityBand {
	switch {
	case score >= 90:
		return domain.SimilarityNearIdentical
	case score >= AddressMatchThreshold:
		return domain.SimilarityCompatible
	case score >= 40:
		return domain.SimilarityPartiallyDifferent
	default:
		return domain.SimilaritySignificantlyDifferent
	}
}

// AnalyzeAddresses compares the billing and shipping addresses.
// When either side is missing the result is insufficient data, never a mismatch verdict.
func AnalyzeAddresses(billing, shipping *string) domain.AddressConsistency {
	result := domain.AddressConsistency{
		BillingAddress:  nonBlank(billing),
		ShippingAddress: nonBlank(shipping),
	}

	if result.BillingAddress == nil || result.ShippingAddress == nil {
		result.Band = domain.SimilarityInsufficientData
		switch {
		case result.BillingAddress == nil && result.ShippingAddress == nil:
			result.Narrative = "Neither billing nor shipping address is available for comparison."
		case result.BillingAddress == nil:
			result.Narrative = "Billing address is not available for comparison."
		default:
			result.Narrative = "Shipping address is not available for comparison."
		}
		return result
	}

	result.SimilarityScore = AddressSimilarity(*result.BillingAddress, *result.ShippingAddress)
	result.Match = result.SimilarityScore >= AddressMatchThreshold
	result.Band = SimilarityBandFor(result.SimilarityScore)

	switch result.Band {
	case domain.SimilarityNearIdentical:
		result.Narrative = fmt.Sprintf("Billing and shipping addresses are practically identical (%d%% similarity).", result.SimilarityScore)
	case domain.SimilarityCompatible:
		result.Narrative = fmt.Sprintf("Billing and shipping addresses are compatible (%d%% similarity).", result.SimilarityScore)
	case domain.SimilarityPartiallyDifferent:
		result.Narrative = fmt.Sprintf("Billing and shipping addresses are partially different (%d%% similarity).", result.SimilarityScore)
	default:
		result.Narrative = fmt.Sprintf("Billing and shipping addresses are significantly different (%d%% similarity). This may be a fraud signal.", result.SimilarityScore)
	}
	return result
}
