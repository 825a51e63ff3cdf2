package application

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
	"github.com/loanpal/loanpal-api/internal/domain/scoring"
)

// DisplayDefaults are presentation placeholders surfaced on dashboard views.
// They are configuration, not values computed from applicant data.
type DisplayDefaults struct {
	Location             string
	DebtToIncomeRatio    string
	BankingHistory       string
	ProcessingFeePercent decimal.Decimal
}

// Fixed marketing copy attached to every offer.
var (
	offerFeatures = []string{
		"Quick approval process",
		"No collateral required",
		"Flexible repayment options",
		"No hidden charges",
	}
	offerEligibility = []string{
		"Nigerian citizen or resident",
		"Aged 18 years and above",
		"Steady source of income",
		"Valid government ID",
	}
)

// OfferView is a recommendation decorated for presentation.
type OfferView struct {
	ProductID               string          `json:"productId"`
	ProductName             string          `json:"productName"`
	LoanAmount              decimal.Decimal `json:"loanAmount"`
	InterestRate            decimal.Decimal `json:"interestRate"`
	TermMonths              int             `json:"termMonths"`
	MonthlyPayment          decimal.Decimal `json:"monthlyPayment"`
	ProcessingFeePercentage decimal.Decimal `json:"processingFeePercentage"`
	RecommendationLevel     string          `json:"recommendationLevel"`
	BadgeClass              string          `json:"badgeClass"`
	RatingClass             string          `json:"ratingClass"`
	IsBestRate              bool            `json:"isBestRate"`
	Features                []string        `json:"features"`
	EligibilityRequirements []string        `json:"eligibilityRequirements"`
}

// RecommendedLoanSummary is the condensed recommended-loan block on the
// dashboard. It is always derived from the same scoring pipeline as the full
// recommendation list.
type RecommendedLoanSummary struct {
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"term"`
}

// DashboardView is the read model for the home/dashboard surfaces.
type DashboardView struct {
	FirstName           string                 `json:"firstName"`
	LastName            string                 `json:"lastName"`
	Email               string                 `json:"email"`
	Location            string                 `json:"location"`
	LastLogin           string                 `json:"lastLogin"`
	LoanAmount          decimal.Decimal        `json:"loanAmount"`
	LoanPurpose         string                 `json:"loanPurpose"`
	MonthlyIncome       decimal.Decimal        `json:"monthlyIncome"`
	EmploymentStatus    string                 `json:"employmentStatus"`
	RiskScore           int                    `json:"creditScore"`
	LoanStatus          string                 `json:"loanStatus"`
	LoanApplicationDate string                 `json:"loanApplicationDate"`
	DebtToIncomeRatio   string                 `json:"debtToIncomeRatio"`
	BankingHistory      string                 `json:"bankingHistory"`
	RecommendedLoan     RecommendedLoanSummary `json:"recommendedLoan"`
	Recommendations     []OfferView            `json:"recommendations"`
	FormDisabled        bool                   `json:"formDisabled"`
	StatusNotice        string                 `json:"statusNotice,omitempty"`
	RecommendationsPath string                 `json:"recommendationsPath,omitempty"`
	Activities          []string               `json:"activities"`
}

// ApplicantSummary is the profile block on the recommendations page.
type ApplicantSummary struct {
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	CreditScore       int             `json:"creditScore"`
	DebtToIncomeRatio string          `json:"debtToIncomeRatio"`
	BankingHistory    string          `json:"bankingHistory"`
}

// RecommendationsView is the read model for the recommendations page; only
// reachable once the latest application is approved.
type RecommendationsView struct {
	RiskScore       int              `json:"riskScore"`
	Recommendations []OfferView      `json:"recommendations"`
	Applicant       ApplicantSummary `json:"applicant"`
}

// projectOffers decorates raw offers with position-based labels, installment
// math and the flat processing fee.
func projectOffers(offers []scoring.Offer, processingFee decimal.Decimal) []OfferView {
	views := make([]OfferView, 0, len(offers))
	for i, o := range offers {
		level, badge, rating := offerLabels(i)
		views = append(views, OfferView{
			ProductID:               productID(i),
			ProductName:             o.Name,
			LoanAmount:              o.Amount,
			InterestRate:            o.InterestRate,
			TermMonths:              o.TermMonths,
			MonthlyPayment:          o.MonthlyPayment(),
			ProcessingFeePercentage: processingFee,
			RecommendationLevel:     level,
			BadgeClass:              badge,
			RatingClass:             rating,
			IsBestRate:              i == 0,
			Features:                offerFeatures,
			EligibilityRequirements: offerEligibility,
		})
	}
	return views
}

func offerLabels(index int) (level, badge, rating string) {
	switch {
	case index == 0:
		return "Best Match", "badge-best", "best"
	case index == 1:
		return "Good Option", "badge-good", "good"
	default:
		return "Basic Option", "badge-basic", "basic"
	}
}

func productID(index int) string {
	return "loan-" + strconv.Itoa(index+1)
}

// projectDashboard assembles the dashboard read model from the user, their
// latest application (nil when none exists) and the display defaults.
func projectDashboard(u *entity.User, latest *entity.LoanApplication, defaults DisplayDefaults) *DashboardView {
	first, last := u.SplitName()
	view := &DashboardView{
		FirstName:         first,
		LastName:          last,
		Email:             u.Email,
		Location:          defaults.Location,
		DebtToIncomeRatio: defaults.DebtToIncomeRatio,
		BankingHistory:    defaults.BankingHistory,
		LoanStatus:        "none",
		Recommendations:   []OfferView{},
		Activities:        []string{},
	}
	if u.LastLogin != nil {
		view.LastLogin = u.LastLogin.Format("2006-01-02T15:04:05")
	}

	score := scoring.Score(latest)
	view.RiskScore = score
	if latest == nil {
		return view
	}

	view.LoanAmount = latest.Amount
	view.LoanPurpose = latest.Purpose
	view.MonthlyIncome = latest.MonthlyIncome
	view.EmploymentStatus = string(latest.EmploymentType)
	view.LoanStatus = string(latest.Status)
	view.LoanApplicationDate = latest.CreatedAt.Format("2006-01-02")

	offers := scoring.Recommend(score)
	view.Recommendations = projectOffers(offers, defaults.ProcessingFeePercent)
	if len(offers) > 0 {
		view.RecommendedLoan = RecommendedLoanSummary{
			Amount:       offers[0].Amount,
			InterestRate: offers[0].InterestRate,
			TermMonths:   offers[0].TermMonths,
		}
	}

	switch latest.Status {
	case entity.StatusPending:
		view.FormDisabled = true
		view.StatusNotice = "pending"
	case entity.StatusApproved:
		// advisory hint only, the dashboard still renders
		view.StatusNotice = "approved"
		view.RecommendationsPath = "/api/loans/recommendations"
	}
	return view
}
