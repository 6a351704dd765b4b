package checklist

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/internal/evidence"
)

var testNow = time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func byID(items []domain.ChecklistItem) map[ItemID]domain.ChecklistItem {
	out := make(map[ItemID]domain.ChecklistItem, len(items))
	for _, item := range items {
		out[ItemID(item.ID)] = item
	}
	return out
}

// TestBuild_OrderPerType tests the subset and order contract of each dispute type
func TestBuild_OrderPerType(t *testing.T) {
	tests := []struct {
		disputeType domain.DisputeType
		expected    []ItemID
	}{
		{domain.DisputeTypeCommercialDisagreement, []ItemID{
			ItemTransaction, ItemInvoice, ItemRefundPolicy, ItemDeliveryProof, ItemTimeline,
			ItemPurchaseHistory, ItemCommunications, ItemTermsAcceptance, ItemFulfillment, ItemAntifraud,
		}},
		{domain.DisputeTypeProductNotReceived, []ItemID{
			ItemTransaction, ItemInvoice, ItemDeliveryProof, ItemFulfillment, ItemTimeline,
			ItemCommunications, ItemPurchaseHistory, ItemTermsAcceptance, ItemAntifraud,
		}},
		{domain.DisputeTypeFraud, []ItemID{
			ItemTransaction, ItemAntifraud, ItemPurchaseHistory, ItemTermsAcceptance, ItemInvoice,
			ItemTimeline, ItemFulfillment, ItemDeliveryProof, ItemCommunications,
		}},
		{domain.DisputeTypeCreditNotProcessed, []ItemID{
			ItemTransaction, ItemRefundReceipt, ItemInvoice, ItemFulfillment, ItemTimeline,
			ItemCommunications, ItemPurchaseHistory, ItemRefundPolicy,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.disputeType), func(t *testing.T) {
			items, err := Build(tt.disputeType, nil, nil)
			require.NoError(t, err)

			ids := make([]ItemID, 0, len(items))
			for _, item := range items {
				ids = append(ids, ItemID(item.ID))
				assert.NotEmpty(t, item.Label)
				assert.NotEmpty(t, item.Description)
				assert.NotEmpty(t, item.Availability)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestBuild_UnknownTypeIsConfigurationError(t *testing.T) {
	for _, dt := range []domain.DisputeType{"", "chargeback"} {
		items, err := Build(dt, nil, nil)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.True(t, domain.IsConfigurationError(err))
	}
}

// TestLevelFor tests the dispute-type-dependent requirement levels
func TestLevelFor(t *testing.T) {
	tests := []struct {
		id       ItemID
		dt       domain.DisputeType
		expected domain.RequirementLevel
	}{
		{ItemTransaction, domain.DisputeTypeFraud, domain.RequirementMandatory},
		{ItemDeliveryProof, domain.DisputeTypeProductNotReceived, domain.RequirementMandatory},
		{ItemDeliveryProof, domain.DisputeTypeCommercialDisagreement, domain.RequirementRecommended},
		{ItemFulfillment, domain.DisputeTypeProductNotReceived, domain.RequirementMandatory},
		{ItemTermsAcceptance, domain.DisputeTypeFraud, domain.RequirementMandatory},
		{ItemTermsAcceptance, domain.DisputeTypeProductNotReceived, domain.RequirementRecommended},
		{ItemRefundPolicy, domain.DisputeTypeCommercialDisagreement, domain.RequirementMandatory},
		{ItemRefundPolicy, domain.DisputeTypeCreditNotProcessed, domain.RequirementRecommended},
		{ItemAntifraud, domain.DisputeTypeFraud, domain.RequirementMandatory},
		{ItemAntifraud, domain.DisputeTypeCommercialDisagreement, domain.RequirementRecommended},
		{ItemAntifraud, domain.DisputeTypeProductNotReceived, domain.RequirementOptional},
		{ItemRefundReceipt, domain.DisputeTypeCreditNotProcessed, domain.RequirementMandatory},
		{ItemCommunications, domain.DisputeTypeFraud, domain.RequirementRecommended},
	}

	for _, tt := range tests {
		t.Run(string(tt.id)+"/"+string(tt.dt), func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelFor(tt.id, tt.dt))
		})
	}
}

// TestBuild_DeliveryProvenByTracking covers a delivered order disputed as not received
func TestBuild_DeliveryProvenByTracking(t *testing.T) {
	bundle := models.EvidenceBundle{
		Reason:            "Produto não recebido",
		DisputeOpenedDate: "2024-03-05",
		EcommerceOrder: &models.EcommerceOrder{
			Name: "#1042",
			Fulfillments: []models.Fulfillment{{
				Status:    models.FulfillmentStatusDelivered,
				UpdatedAt: strPtr("2024-03-01"),
			}},
		},
		TrackingEvents: []models.TrackingEvent{
			{Date: "2024-03-01", Description: "Objeto entregue ao destinatário"},
		},
	}
	ctx := evidence.BuildEnrichedContext(bundle, testNow)

	items, err := Build(domain.DisputeTypeProductNotReceived, &models.CaseForm{}, &ctx)
	require.NoError(t, err)

	delivery := byID(items)[ItemDeliveryProof]
	assert.Equal(t, domain.RequirementMandatory, delivery.Level)
	assert.Equal(t, domain.AvailabilityAvailable, delivery.Availability)
	assert.Nil(t, delivery.Tip)
}

// TestBuild_Availability tests the availability rules against form and context facts
func TestBuild_Availability(t *testing.T) {
	accepted := false
	ctx := &domain.EnrichedContext{
		OrderLinked: true,
		Timeline: []domain.TimelineEvent{
			{Event: "Order created (#1)"},
			{Event: "Payment authorized"},
			{Event: "Dispute opened"},
		},
		CustomerHistory: &domain.CustomerHistory{TotalOrders: 1},
		TermsAccepted:   &accepted,
		TransactionAuth: &domain.TransactionAuthentication{ThreeDSecureStatus: strPtr("authenticated")},
	}
	form := &models.CaseForm{
		OrderItems:      []models.OrderItem{{Description: "Shoes"}},
		RefundPolicyURL: "https://shop.example/refunds",
		Communications:  []models.Communication{{}},
	}

	items, err := Build(domain.DisputeTypeCommercialDisagreement, form, ctx)
	require.NoError(t, err)
	got := byID(items)

	assert.Equal(t, domain.AvailabilityAvailable, got[ItemTransaction].Availability)
	assert.Equal(t, domain.AvailabilityAvailable, got[ItemInvoice].Availability)
	assert.Equal(t, domain.AvailabilityAvailable, got[ItemRefundPolicy].Availability)
	assert.Equal(t, "Form: refund policy URL", *got[ItemRefundPolicy].Source)
	assert.Equal(t, domain.AvailabilityMissing, got[ItemDeliveryProof].Availability)
	assert.Equal(t, domain.AvailabilityAvailable, got[ItemTimeline].Availability)
	assert.Equal(t, domain.AvailabilityMissing, got[ItemPurchaseHistory].Availability, "new customer")
	assert.Equal(t, domain.AvailabilityMissing, got[ItemCommunications].Availability, "lone blank row is empty")
	assert.Equal(t, domain.AvailabilityMissing, got[ItemTermsAcceptance].Availability)
	assert.Equal(t, domain.AvailabilityMissing, got[ItemFulfillment].Availability, "order linked but never shipped")
	assert.Equal(t, domain.AvailabilityAvailable, got[ItemAntifraud].Availability)
	assert.Contains(t, got[ItemAntifraud].Description, "authenticated")
	assert.NotNil(t, got[ItemCommunications].Tip)

	for _, item := range items {
		if item.Availability == domain.AvailabilityAvailable {
			assert.Nil(t, item.Tip, item.ID)
		}
	}
}

// TestBuild_RecordedCommunicationsHaveNoTip tests that a filled communications row is available without a tip
func TestBuild_RecordedCommunicationsHaveNoTip(t *testing.T) {
	form := &models.CaseForm{
		Communications: []models.Communication{{Channel: "email", Description: "customer confirmed receipt"}},
	}

	for _, disputeType := range []domain.DisputeType{
		domain.DisputeTypeFraud,
		domain.DisputeTypeCommercialDisagreement,
		domain.DisputeTypeCreditNotProcessed,
	} {
		t.Run(string(disputeType), func(t *testing.T) {
			items, err := Build(disputeType, form, nil)
			require.NoError(t, err)

			got := byID(items)
			require.Contains(t, got, ItemCommunications)
			assert.Equal(t, domain.AvailabilityAvailable, got[ItemCommunications].Availability)
			assert.Nil(t, got[ItemCommunications].Tip)
		})
	}
}

func TestBuild_NoDataDegrades(t *testing.T) {
	fraud, err := Build(domain.DisputeTypeFraud, nil, nil)
	require.NoError(t, err)
	got := byID(fraud)
	assert.Equal(t, domain.AvailabilityMissing, got[ItemAntifraud].Availability)
	assert.Equal(t, domain.AvailabilityNeedsVerification, got[ItemTermsAcceptance].Availability)
	assert.Equal(t, domain.AvailabilityNeedsVerification, got[ItemPurchaseHistory].Availability)
	assert.Equal(t, domain.AvailabilityNeedsVerification, got[ItemFulfillment].Availability)
	assert.Equal(t, domain.AvailabilityNeedsVerification, got[ItemInvoice].Availability)

	credit, err := Build(domain.DisputeTypeCreditNotProcessed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityNeedsVerification, byID(credit)[ItemRefundReceipt].Availability)
}

func TestBuild_RefundAndHistoryDescriptions(t *testing.T) {
	refundDate := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	ctx := &domain.EnrichedContext{
		Refund: &domain.RefundStatus{
			Processed: true,
			Amount:    decimal.RequireFromString("99.9"),
			Date:      &refundDate,
			Source:    domain.RefundSourceGateway,
		},
		CustomerHistory: &domain.CustomerHistory{TotalOrders: 3, TotalSpent: decimal.RequireFromString("420")},
	}

	items, err := Build(domain.DisputeTypeCreditNotProcessed, nil, ctx)
	require.NoError(t, err)
	got := byID(items)

	refund := got[ItemRefundReceipt]
	assert.Equal(t, domain.AvailabilityAvailable, refund.Availability)
	assert.Equal(t, "Refund of 99.90 processed on 2024-03-02 (gateway).", refund.Description)

	history := got[ItemPurchaseHistory]
	assert.Equal(t, domain.AvailabilityAvailable, history.Availability)
	assert.Equal(t, "Repeat customer: 3 orders, 420.00 total.", history.Description)
}

// TestSummarize tests the soft completeness gate
func TestSummarize(t *testing.T) {
	items := []domain.ChecklistItem{
		{ID: "a", Level: domain.RequirementMandatory, Availability: domain.AvailabilityAvailable},
		{ID: "b", Level: domain.RequirementMandatory, Availability: domain.AvailabilityNeedsVerification},
		{ID: "c", Level: domain.RequirementRecommended, Availability: domain.AvailabilityMissing},
		{ID: "d", Level: domain.RequirementOptional, Availability: domain.AvailabilityAvailable},
	}

	s := Summarize(items)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Available)
	assert.False(t, s.MandatorySatisfied)
	assert.Equal(t, []string{"b"}, s.MissingMandatory)

	s = Summarize(items[2:])
	assert.True(t, s.MandatorySatisfied)
	assert.Empty(t, s.MissingMandatory)
}
