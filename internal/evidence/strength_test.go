package evidence

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// TestCategorize tests the category boundaries
func TestCategorize(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.StrengthCategory
	}{
		{0, domain.StrengthWeak},
		{2, domain.StrengthWeak},
		{3, domain.StrengthModerate},
		{5, domain.StrengthModerate},
		{6, domain.StrengthStrong},
		{14, domain.StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.score))
		})
	}
}

func TestCategorizeIsMonotonic(t *testing.T) {
	rank := map[domain.StrengthCategory]int{
		domain.StrengthWeak:     0,
		domain.StrengthModerate: 1,
		domain.StrengthStrong:   2,
	}

	properties := gopter.NewProperties(nil)
	properties.Property("higher score never lowers the category", prop.ForAll(
		func(a, b int) bool {
			if a > b {
				a, b = b, a
			}
			return rank[Categorize(a)] <= rank[Categorize(b)]
		},
		gen.IntRange(-5, 30),
		gen.IntRange(-5, 30),
	))
	properties.TestingRun(t)
}

func days(n int) *int { return &n }

// TestScoreStrength_AllSignals tests every rule fires with its weight and in order
func TestScoreStrength_AllSignals(t *testing.T) {
	accepted := true
	ctx := &domain.EnrichedContext{
		Timeline: []domain.TimelineEvent{{Event: "Objeto entregue ao destinatário"}},
		CustomerHistory: &domain.CustomerHistory{
			TotalOrders: 4,
			TotalSpent:  decimal.RequireFromString("812.4"),
			RepeatBuyer: true,
		},
		WithdrawalWindow: domain.WithdrawalWindowAnalysis{
			Status:            domain.WindowStatusExpired,
			DaysAfterDelivery: days(12),
		},
		AddressConsistency: domain.AddressConsistency{Match: true, SimilarityScore: 95},
		TransactionAuth: &domain.TransactionAuthentication{
			ThreeDSecureStatus: strPtr("authenticated"),
			CVVResult:          strPtr("M"),
			AntifraudStatus:    strPtr("approved"),
		},
		ReasonCode:    &domain.ReasonCodeInfo{Code: "13.1", WinRateHint: domain.WinRateHigh},
		TermsAccepted: &accepted,
	}

	s := ScoreStrength(ctx)
	assert.Equal(t, 14, s.Score)
	assert.Equal(t, domain.StrengthStrong, s.Category)
	require.Len(t, s.Reasons, 9)
	require.Len(t, s.Signals, 9)

	names := make([]string, 0, len(s.Signals))
	for _, sig := range s.Signals {
		names = append(names, sig.Name)
	}
	assert.Equal(t, []string{
		"delivery_proven", "repeat_buyer", "withdrawal_window_expired", "addresses_consistent",
		"three_d_secure", "cvv_match", "antifraud_approved", "high_win_rate", "terms_accepted",
	}, names)
	assert.Contains(t, s.Reasons[1], "4 orders")
	assert.Contains(t, s.Reasons[1], "812.40")
	assert.Contains(t, s.Reasons[2], "12 days")
}

func TestScoreStrength_Empty(t *testing.T) {
	s := ScoreStrength(&domain.EnrichedContext{})
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, domain.StrengthWeak, s.Category)
	assert.NotNil(t, s.Reasons)
	assert.Empty(t, s.Reasons)
}

func TestScoreStrength_IgnoresNegativeSignals(t *testing.T) {
	rejected := false
	ctx := &domain.EnrichedContext{
		WithdrawalWindow: domain.WithdrawalWindowAnalysis{Status: domain.WindowStatusWithin, DaysAfterDelivery: days(3), WithinWindow: true},
		TransactionAuth: &domain.TransactionAuthentication{
			ThreeDSecureStatus: strPtr("not_authenticated"),
			CVVResult:          strPtr("mismatch"),
			AntifraudStatus:    strPtr("disapproved"),
		},
		ReasonCode:    &domain.ReasonCodeInfo{WinRateHint: domain.WinRateLow},
		TermsAccepted: &rejected,
	}

	s := ScoreStrength(ctx)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.Reasons)
}

func TestAuthenticationMatchers(t *testing.T) {
	tests := []struct {
		name  string
		match func(*string) bool
		value *string
		want  bool
	}{
		{"3ds authenticated", ThreeDSecureAuthenticated, strPtr("Authenticated"), true},
		{"3ds autenticado", ThreeDSecureAuthenticated, strPtr("autenticado"), true},
		{"3ds not authenticated", ThreeDSecureAuthenticated, strPtr("not_authenticated"), false},
		{"3ds authentication failed", ThreeDSecureAuthenticated, strPtr("authentication_failed"), false},
		{"3ds unauthenticated", ThreeDSecureAuthenticated, strPtr("unauthenticated"), false},
		{"3ds absent", ThreeDSecureAuthenticated, nil, false},
		{"cvv code M", CVVMatched, strPtr("M"), true},
		{"cvv match", CVVMatched, strPtr("match"), true},
		{"cvv compativel", CVVMatched, strPtr("compatível"), true},
		{"cvv code N", CVVMatched, strPtr("N"), false},
		{"cvv mismatch", CVVMatched, strPtr("MISMATCH"), false},
		{"cvv no match", CVVMatched, strPtr("no match"), false},
		{"antifraud approved", AntifraudApproved, strPtr("approved"), true},
		{"antifraud aprovado", AntifraudApproved, strPtr("aprovado"), true},
		{"antifraud reproved", AntifraudApproved, strPtr("reprovado"), false},
		{"antifraud not approved", AntifraudApproved, strPtr("not_approved"), false},
		{"antifraud blank", AntifraudApproved, strPtr("  "), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match(tt.value))
		})
	}
}
