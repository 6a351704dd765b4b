// Package reasoncode holds the card-network reason-code catalogue and maps free-text
// dispute reasons onto it.
package reasoncode

import (
	"slices"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// catalogue is ordered: the mapper returns the first matching entry, so Mastercard
// codes shadow Visa codes, and both shadow Elo, when descriptions overlap.
var catalogue = []domain.ReasonCodeInfo{
	{
		Network:              domain.CardNetworkMastercard,
		ID:                   "4837",
		Code:                 "4837",
		Description:          "No Cardholder Authorization",
		DescriptionLocalized: "Transação não autorizada pelo titular",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Proof of cardholder authentication (3-D Secure)",
			"Buyer IP address and device data",
		},
		RecommendedEvidence: []string{
			"Prior purchase history of the cardholder",
			"Anti-fraud analysis result",
		},
	},
	{
		Network:              domain.CardNetworkMastercard,
		ID:                   "4853",
		Code:                 "4853",
		Description:          "Cardholder Dispute",
		DescriptionLocalized: "Disputa do titular do cartão",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Proof of delivery or service rendered",
			"Product or service description",
		},
		RecommendedEvidence: []string{
			"Communications with the cardholder",
			"Refund and return policy",
		},
	},
	{
		Network:              domain.CardNetworkMastercard,
		ID:                   "4863",
		Code:                 "4863",
		Description:          "Cardholder Does Not Recognize",
		DescriptionLocalized: "Titular não reconhece a transação",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Transaction descriptor and order details",
			"Proof of delivery to the cardholder",
		},
		RecommendedEvidence: []string{
			"Prior purchases by the cardholder",
			"Communications confirming the purchase",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "10.4",
		Code:                 "10.4",
		Description:          "Other Fraud - Card Absent Environment",
		DescriptionLocalized: "Fraude - Ambiente sem cartão presente",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Proof of cardholder authentication (3-D Secure)",
			"Buyer IP address and device fingerprint",
			"Delivery to the cardholder's registered billing address",
		},
		RecommendedEvidence: []string{
			"Prior undisputed purchases by the same cardholder",
			"Anti-fraud analysis result",
			"Terms of use accepted at checkout",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "13.1",
		Code:                 "13.1",
		Description:          "Merchandise/Services Not Received",
		DescriptionLocalized: "Mercadoria/serviço não recebido",
		WinRateHint:          domain.WinRateHigh,
		RequiredEvidence: []string{
			"Carrier tracking showing delivery",
			"Signed proof of delivery or delivery photo",
			"Delivery address matching the order address",
		},
		RecommendedEvidence: []string{
			"Communications with the customer about the delivery",
			"Order confirmation and invoice",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "13.2",
		Code:                 "13.2",
		Description:          "Cancelled Recurring Transaction",
		DescriptionLocalized: "Transação recorrente cancelada",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Subscription terms accepted by the cardholder",
			"Proof the cardholder did not cancel before the charge",
		},
		RecommendedEvidence: []string{
			"Usage of the service after the disputed charge",
			"Renewal notices sent to the cardholder",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "13.3",
		Code:                 "13.3",
		Description:          "Not as Described or Defective",
		DescriptionLocalized: "Produto diferente do descrito ou com defeito",
		WinRateHint:          domain.WinRateLow,
		RequiredEvidence: []string{
			"Product description as published at the time of sale",
			"Proof the delivered product matches the description",
		},
		RecommendedEvidence: []string{
			"Quality inspection or dispatch photos",
			"Return and exchange policy",
			"Communications with the customer",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "13.6",
		Code:                 "13.6",
		Description:          "Credit Not Processed",
		DescriptionLocalized: "Crédito não processado",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Refund receipt or proof the refund was issued",
			"Refund policy accepted by the customer",
		},
		RecommendedEvidence: []string{
			"Proof the product was not returned",
			"Communications about the cancellation request",
		},
	},
	{
		Network:              domain.CardNetworkVisa,
		ID:                   "13.7",
		Code:                 "13.7",
		Description:          "Cancelled Merchandise/Services",
		DescriptionLocalized: "Mercadoria/serviço cancelado",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Cancellation policy disclosed at checkout",
			"Proof the cancellation did not follow the policy",
		},
		RecommendedEvidence: []string{
			"Communications about the cancellation",
			"Proof of delivery before cancellation",
		},
	},
	{
		Network:              domain.CardNetworkElo,
		ID:                   "elo_fraud",
		Code:                 "Fraude",
		Description:          "Fraud",
		DescriptionLocalized: "Transação fraudulenta (Elo)",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Proof of cardholder authentication",
			"Buyer IP address and device data",
		},
		RecommendedEvidence: []string{
			"Purchase history",
			"Anti-fraud analysis result",
		},
	},
	{
		Network:              domain.CardNetworkElo,
		ID:                   "elo_disagreement",
		Code:                 "Desacordo",
		Description:          "Commercial Disagreement",
		DescriptionLocalized: "Desacordo comercial (Elo)",
		WinRateHint:          domain.WinRateMedium,
		RequiredEvidence: []string{
			"Proof of delivery",
			"Product description",
			"Refund and return policy",
		},
		RecommendedEvidence: []string{
			"Communications with the customer",
		},
	},
	{
		Network:              domain.CardNetworkElo,
		ID:                   "elo_not_received",
		Code:                 "Não recebido",
		Description:          "Not Received",
		DescriptionLocalized: "Produto não recebido (Elo)",
		WinRateHint:          domain.WinRateHigh,
		RequiredEvidence: []string{
			"Carrier tracking showing delivery",
			"Proof of delivery",
		},
		RecommendedEvidence: []string{
			"Communications with the customer",
		},
	},
}

// clone copies an entry so callers cannot mutate the catalogue's evidence lists
func clone(info domain.ReasonCodeInfo) domain.ReasonCodeInfo {
	info.RequiredEvidence = slices.Clone(info.RequiredEvidence)
	info.RecommendedEvidence = slices.Clone(info.RecommendedEvidence)
	return info
}

// Catalogue returns a copy of every known reason code in lookup order
func Catalogue() []domain.ReasonCodeInfo {
	out := make([]domain.ReasonCodeInfo, 0, len(catalogue))
	for _, info := range catalogue {
		out = append(out, clone(info))
	}
	return out
}

// Lookup returns the catalogue entry with the given identifier
func Lookup(id string) (domain.ReasonCodeInfo, bool) {
	for _, info := range catalogue {
		if info.ID == id {
			return clone(info), true
		}
	}
	return domain.ReasonCodeInfo{}, false
}
