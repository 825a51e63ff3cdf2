package scoring

import "github.com/shopspring/decimal"

// Offer is a templated loan product selected by risk score.
type Offer struct {
	Name         string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
}

type tier struct {
	minScore int
	offer    Offer
}

// tiers is evaluated top-down, first match wins. The zero entry is the
// catch-all for everything below 35.
var tiers = []tier{
	{80, Offer{Name: "Personal Loan (Low Interest Rate)", Amount: decimal.NewFromInt(5_000_000), InterestRate: decimal.NewFromInt(5), TermMonths: 36}},
	{65, Offer{Name: "Small Business Loan", Amount: decimal.NewFromInt(2_000_000), InterestRate: decimal.NewFromInt(10), TermMonths: 24}},
	{50, Offer{Name: "Emergency Loan", Amount: decimal.NewFromInt(1_000_000), InterestRate: decimal.NewFromInt(15), TermMonths: 18}},
	{35, Offer{Name: "Micro Loan", Amount: decimal.NewFromInt(500_000), InterestRate: decimal.NewFromInt(22), TermMonths: 12}},
	{0, Offer{Name: "Basic Micro Loan", Amount: decimal.NewFromInt(200_000), InterestRate: decimal.NewFromInt(28), TermMonths: 6}},
}

// Recommend maps a risk score to an ordered list of offers. Today exactly one
// offer is returned per score; the slice shape is kept so additional tiers
// can be surfaced without touching callers.
func Recommend(score int) []Offer {
	for _, t := range tiers {
		if score >= t.minScore {
			return []Offer{t.offer}
		}
	}
	// score below zero still gets the catch-all product
	return []Offer{tiers[len(tiers)-1].offer}
}

// MonthlyPayment is the flat-interest installment used on presentation
// surfaces: amount * (1 + rate/100) / term.
func (o Offer) MonthlyPayment() decimal.Decimal {
	if o.TermMonths == 0 {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	total := o.Amount.Mul(hundred.Add(o.InterestRate)).Div(hundred)
	return total.Div(decimal.NewFromInt(int64(o.TermMonths)))
}
