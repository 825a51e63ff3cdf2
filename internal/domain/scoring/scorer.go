// Package scoring holds the risk heuristic and the product selection table.
// Everything in this package is pure: no I/O, no clock, no external state.
package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
)

const (
	baseScore = 50
	minScore  = 1
	maxScore  = 100

	// NoApplicationScore is the sentinel returned when there is nothing to
	// score. It sits below the clamp floor on purpose so callers can tell
	// "no application" apart from "worst possible applicant".
	NoApplicationScore = 0
)

// employmentAdjustments keys on the historical category names used by the
// scoring table. The intake form's "full-time" and "part-time" categories are
// absent here and therefore score +0.
var employmentAdjustments = map[entity.EmploymentType]int{
	"employed":                    20,
	entity.EmploymentSelfEmployed: 15,
	entity.EmploymentUnemployed:   -10,
	entity.EmploymentRetired:      5,
}

var (
	income500k = decimal.NewFromInt(500_000)
	income200k = decimal.NewFromInt(200_000)
	income100k = decimal.NewFromInt(100_000)
	income50k  = decimal.NewFromInt(50_000)

	ratio5 = decimal.NewFromInt(5)
	ratio3 = decimal.NewFromInt(3)
	ratio1 = decimal.NewFromInt(1)
)

// Score computes the deterministic risk score in [1,100] for an application,
// or NoApplicationScore when app is nil. It is total over any well-formed
// record: zero-valued optional fields simply contribute nothing.
func Score(app *entity.LoanApplication) int {
	if app == nil {
		return NoApplicationScore
	}

	score := baseScore
	score += employmentAdjustments[app.EmploymentType]
	score += incomeAdjustment(app.MonthlyIncome)
	score += affordabilityAdjustment(app.MonthlyIncome, app.Amount)
	if app.ExistingDebt {
		score -= 15
	}

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// incomeAdjustment applies mutually exclusive monthly-income bands,
// highest threshold first.
func incomeAdjustment(income decimal.Decimal) int {
	switch {
	case income.GreaterThan(income500k):
		return 15
	case income.GreaterThan(income200k):
		return 10
	case income.GreaterThan(income100k):
		return 5
	case income.LessThan(income50k):
		return -10
	}
	return 0
}

// affordabilityAdjustment scores the income-to-amount ratio. The ratio is
// only defined when both sides are nonzero; otherwise it is treated as 0 and
// falls into the bottom band together with ratios <= 1.
func affordabilityAdjustment(income, amount decimal.Decimal) int {
	ratio := decimal.Zero
	if !income.IsZero() && !amount.IsZero() {
		ratio = income.Div(amount)
	}
	switch {
	case ratio.GreaterThan(ratio5):
		return -20
	case ratio.GreaterThan(ratio3):
		return -10
	case ratio.GreaterThan(ratio1):
		return -5
	}
	return 5
}
