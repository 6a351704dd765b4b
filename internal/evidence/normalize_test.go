package evidence

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
)

var testNow = time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func numPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func TestCoalesce(t *testing.T) {
	assert.Nil(t, coalesce[string]())
	assert.Nil(t, coalesce[string](nil, nil))
	assert.Equal(t, "b", *coalesce[string](nil, strPtr("b"), strPtr("c")))

	src := strPtr("a")
	got := coalesce(src)
	*got = "changed"
	assert.Equal(t, "a", *src, "coalesce must copy")
}

// TestBuildCustomerHistory tests history aggregation and ordering
func TestBuildCustomerHistory(t *testing.T) {
	t.Run("nil when no orders", func(t *testing.T) {
		assert.Nil(t, BuildCustomerHistory(nil, testNow))
		assert.Nil(t, BuildCustomerHistory([]models.EcommerceOrder{}, testNow))
	})

	t.Run("aggregates and sorts ascending", func(t *testing.T) {
		orders := []models.EcommerceOrder{
			{Name: "#1003", CreatedAt: strPtr("2024-02-10T10:00:00Z"), TotalPrice: decimal.RequireFromString("50.10")},
			{Name: "#1001", CreatedAt: strPtr("2023-11-01T10:00:00Z"), TotalPrice: decimal.RequireFromString("100.00"), FulfillmentStatus: strPtr("fulfilled")},
			{Name: "#1002", CreatedAt: strPtr("2024-01-05"), TotalPrice: decimal.RequireFromString("20.5")},
		}

		h := BuildCustomerHistory(orders, testNow)
		require.NotNil(t, h)
		assert.Equal(t, 3, h.TotalOrders)
		assert.Equal(t, 3, h.UndisputedOrders)
		assert.True(t, h.RepeatBuyer)
		assert.True(t, decimal.RequireFromString("170.60").Equal(h.TotalSpent))
		require.NotNil(t, h.FirstOrderDate)
		assert.Equal(t, time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC), *h.FirstOrderDate)

		require.Len(t, h.Orders, 3)
		assert.Equal(t, "#1001", h.Orders[0].Name)
		assert.Equal(t, "#1002", h.Orders[1].Name)
		assert.Equal(t, "#1003", h.Orders[2].Name)
		assert.Equal(t, "fulfilled", *h.Orders[0].FulfillmentStatus)
	})

	t.Run("single order is not a repeat buyer", func(t *testing.T) {
		h := BuildCustomerHistory([]models.EcommerceOrder{{Name: "#1", CreatedAt: strPtr("2024-01-01")}}, testNow)
		require.NotNil(t, h)
		assert.False(t, h.RepeatBuyer)
	})

	t.Run("unparseable date falls back to now", func(t *testing.T) {
		h := BuildCustomerHistory([]models.EcommerceOrder{{Name: "#1", CreatedAt: strPtr("yesterday")}}, testNow)
		require.NotNil(t, h)
		assert.Equal(t, testNow, h.Orders[0].Date)
		assert.Nil(t, h.FirstOrderDate)
	})
}

// TestExtractTransactionAuthentication_FallbackChains tests each field's priority order
func TestExtractTransactionAuthentication_FallbackChains(t *testing.T) {
	assert.Nil(t, ExtractTransactionAuthentication(nil))

	tests := []struct {
		name   string
		charge models.GatewayCharge
		field  func(*domain.TransactionAuthentication) *string
		want   *string
	}{
		{
			name: "3ds prefers nested block",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				ThreeDSecure:       &models.ThreeDSecure{Status: strPtr("authenticated")},
				ThreeDSecureStatus: strPtr("flat"),
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.ThreeDSecureStatus },
			want:  strPtr("authenticated"),
		},
		{
			name: "3ds falls back to flat key",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				ThreeDSecure:       &models.ThreeDSecure{},
				ThreeDSecureStatus: strPtr("flat"),
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.ThreeDSecureStatus },
			want:  strPtr("flat"),
		},
		{
			name: "cvv prefers transaction",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				CVVResult:       strPtr("M"),
				GatewayResponse: &models.GatewayResponse{CVVResult: strPtr("N")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.CVVResult },
			want:  strPtr("M"),
		},
		{
			name: "avs falls back to acquirer response",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				GatewayResponse: &models.GatewayResponse{AVSResult: strPtr("Y")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.AVSResult },
			want:  strPtr("Y"),
		},
		{
			name: "auth code second candidate is acquirer response",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				AcquirerAuthCode: strPtr("third"),
				GatewayResponse:  &models.GatewayResponse{AuthorizationCode: strPtr("second")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.AuthorizationCode },
			want:  strPtr("second"),
		},
		{
			name: "auth code last resort is acquirer auth code",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				AcquirerAuthCode: strPtr("third"),
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.AuthorizationCode },
			want:  strPtr("third"),
		},
		{
			name: "nsu prefers acquirer nsu over acquirer response",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				AcquirerNSU:     strPtr("acq"),
				GatewayResponse: &models.GatewayResponse{NSU: strPtr("gw")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.NSU },
			want:  strPtr("acq"),
		},
		{
			name: "antifraud status falls back to charge",
			charge: models.GatewayCharge{
				LastTransaction:   &models.GatewayTransaction{},
				AntifraudResponse: &models.AntifraudResponse{Status: strPtr("approved")},
			},
			field: func(a *domain.TransactionAuthentication) *string { return a.AntifraudStatus },
			want:  strPtr("approved"),
		},
		{
			name: "antifraud score is rendered as text",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				AntifraudResponse: &models.AntifraudResponse{Score: numPtr("12.5")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.AntifraudScore },
			want:  strPtr("12.5"),
		},
		{
			name: "card brand falls back to charge card",
			charge: models.GatewayCharge{
				Card: &models.CardDetails{Brand: strPtr("visa")},
			},
			field: func(a *domain.TransactionAuthentication) *string { return a.CardBrand },
			want:  strPtr("visa"),
		},
		{
			name: "last four falls back to last digits",
			charge: models.GatewayCharge{LastTransaction: &models.GatewayTransaction{
				Card: &models.CardDetails{LastDigits: strPtr("4242")},
			}},
			field: func(a *domain.TransactionAuthentication) *string { return a.CardLastFour },
			want:  strPtr("4242"),
		},
		{
			name:   "absent everywhere stays nil",
			charge: models.GatewayCharge{},
			field:  func(a *domain.TransactionAuthentication) *string { return a.NSU },
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := ExtractTransactionAuthentication(&tt.charge)
			require.NotNil(t, auth)
			assert.Equal(t, tt.want, tt.field(auth))
		})
	}
}

// TestExtractRefundStatus tests refund source precedence and unit conversion
func TestExtractRefundStatus(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		assert.Nil(t, ExtractRefundStatus(nil, nil, testNow))
		assert.Nil(t, ExtractRefundStatus(&models.EcommerceOrder{}, &models.GatewayCharge{Status: "paid"}, testNow))
	})

	t.Run("ecommerce refund wins", func(t *testing.T) {
		order := &models.EcommerceOrder{Refunds: []models.OrderRefund{
			{CreatedAt: strPtr("2024-03-02T09:00:00Z"), Amount: decimal.RequireFromString("49.90")},
			{CreatedAt: strPtr("2024-03-05T09:00:00Z"), Amount: decimal.RequireFromString("10")},
		}}
		charge := &models.GatewayCharge{Status: models.ChargeStatusRefunded, AmountCents: int64Ptr(9990)}

		refund := ExtractRefundStatus(order, charge, testNow)
		require.NotNil(t, refund)
		assert.True(t, refund.Processed)
		assert.Equal(t, domain.RefundSourceEcommerce, refund.Source)
		assert.True(t, decimal.RequireFromString("49.90").Equal(refund.Amount))
		require.NotNil(t, refund.Date)
		assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), *refund.Date)
	})

	t.Run("gateway refund converts cents to major units", func(t *testing.T) {
		charge := &models.GatewayCharge{
			Status:      models.ChargeStatusRefunded,
			AmountCents: int64Ptr(9990),
			CreatedAt:   strPtr("2024-03-01T00:00:00Z"),
			UpdatedAt:   strPtr("2024-03-04T00:00:00Z"),
		}

		refund := ExtractRefundStatus(nil, charge, testNow)
		require.NotNil(t, refund)
		assert.Equal(t, domain.RefundSourceGateway, refund.Source)
		assert.True(t, decimal.RequireFromString("99.90").Equal(refund.Amount))
		require.NotNil(t, refund.Date)
		assert.Equal(t, 4, refund.Date.Day())
	})
}

// TestExtractTermsAccepted tests the ternary terms signal
func TestExtractTermsAccepted(t *testing.T) {
	tests := []struct {
		name  string
		order *models.EcommerceOrder
		want  *bool
	}{
		{"no order", nil, nil},
		{"nothing to inspect", &models.EcommerceOrder{}, nil},
		{
			name:  "attribute key mentions terms",
			order: &models.EcommerceOrder{CustomAttributes: []models.CustomAttribute{{Key: "Termos_Aceitos", Value: "sim"}}},
			want:  boolPtr(true),
		},
		{
			name:  "attribute value mentions consent",
			order: &models.EcommerceOrder{CustomAttributes: []models.CustomAttribute{{Key: "checkbox", Value: "LGPD consent given"}}},
			want:  boolPtr(true),
		},
		{
			name:  "note mentions acceptance",
			order: &models.EcommerceOrder{Note: strPtr("Customer agreed to the privacy policy")},
			want:  boolPtr(true),
		},
		{
			name:  "attributes without acceptance",
			order: &models.EcommerceOrder{CustomAttributes: []models.CustomAttribute{{Key: "gift_wrap", Value: "yes"}}},
			want:  boolPtr(false),
		},
		{
			name:  "unrelated note only",
			order: &models.EcommerceOrder{Note: strPtr("leave at the door")},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTermsAccepted(tt.order))
		})
	}
}

func boolPtr(b bool) *bool { return &b }
