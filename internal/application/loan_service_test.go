package application

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) TouchLastLogin(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

type memAppRepo struct {
	apps []*entity.LoanApplication
}

func (r *memAppRepo) CreatePending(_ context.Context, app *entity.LoanApplication) error {
	for _, a := range r.apps {
		if a.UserID == app.UserID && a.Status == entity.StatusPending {
			return entity.ErrDuplicatePending
		}
	}
	app.ID = uuid.NewString()
	app.Status = entity.StatusPending
	app.CreatedAt = time.Now()
	r.apps = append(r.apps, app)
	return nil
}

func (r *memAppRepo) GetLatestByUser(_ context.Context, userID string) (*entity.LoanApplication, error) {
	var own []*entity.LoanApplication
	for _, a := range r.apps {
		if a.UserID == userID {
			own = append(own, a)
		}
	}
	if len(own) == 0 {
		return nil, entity.ErrNotFound
	}
	sort.Slice(own, func(i, j int) bool { return own[i].CreatedAt.After(own[j].CreatedAt) })
	return own[0], nil
}

func (r *memAppRepo) HasPending(_ context.Context, userID string) (bool, error) {
	for _, a := range r.apps {
		if a.UserID == userID && a.Status == entity.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

type memViewCache struct {
	views map[string]DashboardView
}

func newMemViewCache() *memViewCache {
	return &memViewCache{views: map[string]DashboardView{}}
}

func (c *memViewCache) GetView(_ context.Context, key string, dest *DashboardView) (bool, error) {
	v, ok := c.views[key]
	if !ok {
		return false, nil
	}
	*dest = v
	return true, nil
}

func (c *memViewCache) SetView(_ context.Context, key string, view *DashboardView, _ time.Duration) error {
	c.views[key] = *view
	return nil
}

func (c *memViewCache) Delete(_ context.Context, key string) error {
	delete(c.views, key)
	return nil
}

func testDefaults() DisplayDefaults {
	return DisplayDefaults{
		Location:             "Lagos, Nigeria",
		DebtToIncomeRatio:    "25",
		BankingHistory:       "3+ years",
		ProcessingFeePercent: decimal.RequireFromString("1.5"),
	}
}

func testUser() *entity.User {
	return &entity.User{
		ID:    uuid.NewString(),
		Email: "ada@example.com",
		Name:  "Ada Obi",
	}
}

func validInput() SubmitInput {
	return SubmitInput{
		EmployerName:   "Acme Ltd",
		JobTitle:       "Engineer",
		EmploymentType: "full-time",
		MonthlyIncome:  decimal.NewFromInt(300_000),
		Amount:         decimal.NewFromInt(1_000_000),
		DurationMonths: 12,
		TotalSavings:   decimal.NewFromInt(50_000),
		Purpose:        "Business expansion",
	}
}

func newTestService(users *memUserRepo, apps *memAppRepo) *LoanService {
	return &LoanService{
		Apps:     apps,
		Users:    users,
		Defaults: testDefaults(),
	}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	app, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, entity.StatusPending, app.Status)
	assert.Equal(t, u.ID, app.UserID)
	assert.Len(t, apps.apps, 1)
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Purpose = "Car purchase"
	_, err = svc.Submit(context.Background(), u.ID, second)
	require.ErrorIs(t, err, entity.ErrDuplicatePending)

	// Rejection leaves no trace.
	assert.Len(t, apps.apps, 1)
	assert.Equal(t, "Business expansion", apps.apps[0].Purpose)
}

func TestSubmitAllowsNewApplicationAfterDecision(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)
	apps.apps[0].Status = entity.StatusRejected

	_, err = svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)
	assert.Len(t, apps.apps, 2)
}

func TestSubmitValidation(t *testing.T) {
	u := testUser()
	svc := newTestService(newMemUserRepo(u), &memAppRepo{})

	tests := []struct {
		name   string
		mutate func(*SubmitInput)
		field  string
	}{
		{"bad employment type", func(in *SubmitInput) { in.EmploymentType = "freelancer" }, "employment_type"},
		{"negative income", func(in *SubmitInput) { in.MonthlyIncome = decimal.NewFromInt(-1) }, "monthly_income"},
		{"negative amount", func(in *SubmitInput) { in.Amount = decimal.NewFromInt(-500) }, "amount"},
		{"zero duration", func(in *SubmitInput) { in.DurationMonths = 0 }, "duration_months"},
		{"negative savings", func(in *SubmitInput) { in.TotalSavings = decimal.NewFromInt(-10) }, "total_savings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Submit(context.Background(), u.ID, in)
			require.ErrorIs(t, err, entity.ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestDashboardWithoutApplication(t *testing.T) {
	u := testUser()
	svc := newTestService(newMemUserRepo(u), &memAppRepo{})

	view, err := svc.Dashboard(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ada", view.FirstName)
	assert.Equal(t, "Obi", view.LastName)
	assert.Equal(t, 0, view.RiskScore)
	assert.Equal(t, "none", view.LoanStatus)
	assert.Empty(t, view.Recommendations)
	assert.False(t, view.FormDisabled)
	assert.Equal(t, "Lagos, Nigeria", view.Location)
	assert.Equal(t, "25", view.DebtToIncomeRatio)
}

func TestDashboardWithPendingApplication(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)

	view, err := svc.Dashboard(context.Background(), u.ID)
	require.NoError(t, err)

	// full-time 300k income, 1m ask, no debt: 50+0+10+5 = 65
	assert.Equal(t, 65, view.RiskScore)
	assert.Equal(t, "pending", view.LoanStatus)
	assert.True(t, view.FormDisabled)
	assert.NotEmpty(t, view.StatusNotice)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Small Business Loan", view.Recommendations[0].ProductName)
	assert.True(t, view.RecommendedLoan.Amount.Equal(decimal.NewFromInt(2_000_000)))
}

func TestDashboardRecommendedLoanMatchesRecommendations(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)
	apps.apps[0].Status = entity.StatusApproved

	view, err := svc.Dashboard(context.Background(), u.ID)
	require.NoError(t, err)

	require.Len(t, view.Recommendations, 1)
	top := view.Recommendations[0]
	assert.True(t, view.RecommendedLoan.Amount.Equal(top.LoanAmount))
	assert.True(t, view.RecommendedLoan.InterestRate.Equal(top.InterestRate))
	assert.Equal(t, view.RecommendedLoan.TermMonths, top.TermMonths)
	assert.Equal(t, "/api/loans/recommendations", view.RecommendationsPath)
	assert.False(t, view.FormDisabled)
}

func TestRecommendationsRequireApproval(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Recommendations(context.Background(), u.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)

	_, err = svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)

	_, err = svc.Recommendations(context.Background(), u.ID)
	require.ErrorIs(t, err, entity.ErrNotApproved)

	apps.apps[0].Status = entity.StatusApproved
	view, err := svc.Recommendations(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, 65, view.RiskScore)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Best Match", view.Recommendations[0].RecommendationLevel)
	assert.True(t, view.Recommendations[0].IsBestRate)
	assert.Equal(t, 65, view.Applicant.CreditScore)
	assert.Equal(t, "3+ years", view.Applicant.BankingHistory)
}

func TestOfferPresentation(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	_, err := svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)
	apps.apps[0].Status = entity.StatusApproved

	view, err := svc.Recommendations(context.Background(), u.ID)
	require.NoError(t, err)

	offer := view.Recommendations[0]
	assert.Equal(t, "loan-1", offer.ProductID)
	assert.Equal(t, "badge-best", offer.BadgeClass)
	assert.Equal(t, "best", offer.RatingClass)
	assert.True(t, offer.ProcessingFeePercentage.Equal(decimal.RequireFromString("1.5")))
	assert.NotEmpty(t, offer.Features)
	assert.NotEmpty(t, offer.EligibilityRequirements)

	// 2,000,000 at 10% over 24 months: 2,200,000 / 24
	want := decimal.NewFromInt(2_200_000).Div(decimal.NewFromInt(24))
	assert.True(t, offer.MonthlyPayment.Equal(want))
}

func TestOverviewServedFromCache(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	cache := newMemViewCache()
	svc := newTestService(newMemUserRepo(u), apps)
	svc.Cache = cache

	view, err := svc.Overview(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "none", view.LoanStatus)
	assert.Len(t, cache.views, 1)

	// Mutate storage behind the cache's back; the cached view still wins
	// until it expires or is invalidated.
	apps.apps = append(apps.apps, &entity.LoanApplication{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Status:    entity.StatusApproved,
		CreatedAt: time.Now(),
	})
	view, err = svc.Overview(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "none", view.LoanStatus)
}

func TestSubmitInvalidatesOverviewCache(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	cache := newMemViewCache()
	svc := newTestService(newMemUserRepo(u), apps)
	svc.Cache = cache

	view, err := svc.Overview(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "none", view.LoanStatus)
	assert.False(t, view.FormDisabled)

	_, err = svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)

	// The pre-submission view must not survive the submission.
	view, err = svc.Overview(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", view.LoanStatus)
	assert.True(t, view.FormDisabled)
}

func TestHasPending(t *testing.T) {
	u := testUser()
	apps := &memAppRepo{}
	svc := newTestService(newMemUserRepo(u), apps)

	pending, err := svc.HasPending(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	_, err = svc.Submit(context.Background(), u.ID, validInput())
	require.NoError(t, err)

	pending, err = svc.HasPending(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, pending)
}
