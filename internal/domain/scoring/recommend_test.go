package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_Thresholds(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "Personal Loan (Low Interest Rate)"},
		{80, "Personal Loan (Low Interest Rate)"},
		{79, "Small Business Loan"},
		{65, "Small Business Loan"},
		{64, "Emergency Loan"},
		{50, "Emergency Loan"},
		{49, "Micro Loan"},
		{35, "Micro Loan"},
		{34, "Basic Micro Loan"},
		{1, "Basic Micro Loan"},
		{0, "Basic Micro Loan"},
	}
	for _, tc := range tests {
		offers := Recommend(tc.score)
		require.Len(t, offers, 1, "score %d must yield exactly one offer", tc.score)
		assert.Equal(t, tc.expected, offers[0].Name, "score %d", tc.score)
	}
}

func TestRecommend_TopTierContents(t *testing.T) {
	offers := Recommend(85)
	require.Len(t, offers, 1)
	o := offers[0]
	assert.True(t, o.Amount.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, o.InterestRate.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 36, o.TermMonths)
}

func TestOffer_MonthlyPayment(t *testing.T) {
	o := Offer{
		Amount:       decimal.NewFromInt(2_000_000),
		InterestRate: decimal.NewFromInt(10),
		TermMonths:   24,
	}
	// 2,000,000 * 1.10 / 24
	expected := decimal.NewFromInt(2_200_000).Div(decimal.NewFromInt(24))
	assert.True(t, o.MonthlyPayment().Equal(expected))

	assert.True(t, Offer{}.MonthlyPayment().IsZero(), "zero term must not divide")
}
