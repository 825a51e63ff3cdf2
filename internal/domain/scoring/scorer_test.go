package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
)

func app(employment entity.EmploymentType, income, amount int64, existingDebt bool) *entity.LoanApplication {
	return &entity.LoanApplication{
		EmploymentType: employment,
		MonthlyIncome:  decimal.NewFromInt(income),
		Amount:         decimal.NewFromInt(amount),
		ExistingDebt:   existingDebt,
	}
}

func TestScore_NilApplication(t *testing.T) {
	assert.Equal(t, NoApplicationScore, Score(nil))
}

func TestScore_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		app      *entity.LoanApplication
		expected int
	}{
		{
			// base 50, full-time +0, income +10 (>200k), ratio 0.3 -> +5
			name:     "full-time mid income no debt",
			app:      app(entity.EmploymentFullTime, 300_000, 1_000_000, false),
			expected: 65,
		},
		{
			// base 50, unemployed -10, income +15 (>500k), ratio 6 -> -20, debt -15
			name:     "unemployed high income high ratio with debt",
			app:      app(entity.EmploymentUnemployed, 600_000, 100_000, true),
			expected: 20,
		},
		{
			// the historical table keys on "employed", which the intake form
			// never produces; scores +20 if it ever appears in stored data
			name:     "legacy employed category",
			app:      app(entity.EmploymentType("employed"), 300_000, 1_000_000, false),
			expected: 85,
		},
		{
			name:     "part-time gets no employment adjustment",
			app:      app(entity.EmploymentPartTime, 300_000, 1_000_000, false),
			expected: 65,
		},
		{
			name:     "retired low income",
			app:      app(entity.EmploymentRetired, 40_000, 1_000_000, false),
			expected: 50, // 50 +5 -10 +5
		},
		{
			// 50 -10 -10 -20 -15 = -5, clamped up
			name:     "clamped to floor",
			app:      app(entity.EmploymentUnemployed, 40_000, 5_000, true),
			expected: 1,
		},
		{
			name:     "zero amount means ratio band of plus five",
			app:      app(entity.EmploymentSelfEmployed, 300_000, 0, false),
			expected: 80, // 50 +15 +10 +5
		},
		{
			name:     "zero income is below the low-income band",
			app:      app(entity.EmploymentFullTime, 0, 1_000_000, false),
			expected: 45, // 50 -10 +5
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Score(tc.app))
		})
	}
}

func TestScore_IncomeBandBoundaries(t *testing.T) {
	tests := []struct {
		income   int64
		expected int
	}{
		{50_000, 0},   // not < 50k
		{49_999, -10}, // below
		{100_000, 0},  // not > 100k
		{100_001, 5},
		{200_000, 5}, // still the >100k band
		{200_001, 10},
		{500_000, 10},
		{500_001, 15},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, incomeAdjustment(decimal.NewFromInt(tc.income)),
			"income %d", tc.income)
	}
}

func TestScore_AffordabilityBoundaries(t *testing.T) {
	tests := []struct {
		income, amount int64
		expected       int
	}{
		{100, 100, 5},  // ratio 1, bottom band
		{101, 100, -5}, // just over 1
		{300, 100, -5}, // ratio 3, not > 3
		{301, 100, -10},
		{500, 100, -10}, // ratio 5, not > 5
		{501, 100, -20},
		{0, 100, 5}, // undefined ratio treated as 0
		{100, 0, 5},
	}
	for _, tc := range tests {
		got := affordabilityAdjustment(decimal.NewFromInt(tc.income), decimal.NewFromInt(tc.amount))
		assert.Equal(t, tc.expected, got, "income %d amount %d", tc.income, tc.amount)
	}
}

func TestScore_RangeAndIdempotence(t *testing.T) {
	employments := []entity.EmploymentType{
		entity.EmploymentFullTime, entity.EmploymentPartTime,
		entity.EmploymentSelfEmployed, entity.EmploymentUnemployed,
		entity.EmploymentRetired, entity.EmploymentType("employed"),
	}
	incomes := []int64{0, 30_000, 90_000, 110_000, 300_000, 700_000}
	amounts := []int64{0, 10_000, 500_000, 2_000_000}

	for _, e := range employments {
		for _, inc := range incomes {
			for _, amt := range amounts {
				for _, debt := range []bool{false, true} {
					a := app(e, inc, amt, debt)
					s := Score(a)
					assert.GreaterOrEqual(t, s, 1)
					assert.LessOrEqual(t, s, 100)
					assert.Equal(t, s, Score(a), "score must be deterministic")
				}
			}
		}
	}
}

func TestScore_MonotonicIncomeStep(t *testing.T) {
	low := app(entity.EmploymentFullTime, 90_000, 1_000_000, false)
	high := app(entity.EmploymentFullTime, 110_000, 1_000_000, false)
	assert.Equal(t, Score(low)+5, Score(high))
}
