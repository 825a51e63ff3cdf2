package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
	"github.com/loanpal/loanpal-api/internal/domain/repository"
	"github.com/loanpal/loanpal-api/internal/domain/scoring"
	"github.com/loanpal/loanpal-api/pkg/helpers"
	"github.com/loanpal/loanpal-api/pkg/mailer"
)

// ValidationError carries per-field messages for a rejected submission.
// errors.Is(err, entity.ErrInvalidInput) matches it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return entity.ErrInvalidInput.Message }

func (e *ValidationError) Is(target error) bool { return target == entity.ErrInvalidInput }

// LoanService owns the admission gate and the dashboard/status projections.
type LoanService struct {
	Apps   repository.LoanApplicationRepository
	Users  repository.UserRepository
	Cache  ViewCache
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher

	ES      *elasticsearch.Client
	ESIndex string

	CompanyName     string
	MailSendEnabled bool
	Defaults        DisplayDefaults
}

// SubmitInput is a candidate application as received from the intake form.
type SubmitInput struct {
	EmployerName    string
	JobTitle        string
	EmploymentType  string
	MonthlyIncome   decimal.Decimal
	Amount          decimal.Decimal
	DurationMonths  int
	CreditScore     *int
	CreditCheck     bool
	TotalSavings    decimal.Decimal
	Assets          string
	CollateralType  string
	CollateralValue *decimal.Decimal
	ExistingDebt    bool
	Purpose         string
}

func (in *SubmitInput) validate() *ValidationError {
	fields := map[string]string{}
	if !entity.EmploymentType(in.EmploymentType).IsValid() {
		fields["employment_type"] = "must be one of: full-time, part-time, self-employed, unemployed, retired"
	}
	if in.MonthlyIncome.IsNegative() {
		fields["monthly_income"] = "must not be negative"
	}
	if in.Amount.IsNegative() {
		fields["amount"] = "must not be negative"
	}
	if in.DurationMonths < 1 {
		fields["duration_months"] = "must be a positive number of months"
	}
	if in.TotalSavings.IsNegative() {
		fields["total_savings"] = "must not be negative"
	}
	if in.CollateralValue != nil && in.CollateralValue.IsNegative() {
		fields["collateral_value"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit runs the admission gate for a candidate application: field
// validation, then the one-pending-per-user rule, then creation. A rejection
// guarantees no record was created; the pending-uniqueness index in storage
// keeps the check-then-insert atomic under concurrent submissions.
func (s *LoanService) Submit(ctx context.Context, userID string, in SubmitInput) (*entity.LoanApplication, error) {
	if verr := in.validate(); verr != nil {
		return nil, verr
	}

	// Friendly fast path; the storage constraint is the real guarantee.
	pending, err := s.Apps.HasPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, entity.ErrDuplicatePending
	}

	app := &entity.LoanApplication{
		UserID:          userID,
		EmployerName:    in.EmployerName,
		JobTitle:        in.JobTitle,
		EmploymentType:  entity.EmploymentType(in.EmploymentType),
		MonthlyIncome:   in.MonthlyIncome,
		Amount:          in.Amount,
		DurationMonths:  in.DurationMonths,
		CreditScore:     in.CreditScore,
		CreditCheck:     in.CreditCheck,
		TotalSavings:    in.TotalSavings,
		Assets:          in.Assets,
		CollateralType:  in.CollateralType,
		CollateralValue: in.CollateralValue,
		ExistingDebt:    in.ExistingDebt,
		Purpose:         in.Purpose,
	}
	if err := s.Apps.CreatePending(ctx, app); err != nil {
		return nil, err
	}

	// The overview cache now holds a view from before this application
	// existed; drop it so polling clients see the pending state immediately.
	s.dropOverview(ctx, userID)

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"application_id": app.ID,
			"user_id":        userID,
			"amount":         app.Amount.String(),
		}).Info("loan application admitted")
	}

	s.indexApplication(ctx, app)
	s.notifyReceived(ctx, app)
	return app, nil
}

// Dashboard assembles the dashboard read model for a user. A user without
// any application gets the default state: score 0, no recommendations, form
// enabled.
func (s *LoanService) Dashboard(ctx context.Context, userID string) (*DashboardView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	latest, err := s.Apps.GetLatestByUser(ctx, userID)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}
	return projectDashboard(u, latest, s.Defaults), nil
}

func overviewKey(userID string) string {
	return "dashboard:overview:" + userID
}

// Overview is the polled variant of Dashboard. The projection is cached
// briefly to keep frequent polling off Postgres; Submit drops the cached
// view so a fresh application is never masked by a stale entry.
func (s *LoanService) Overview(ctx context.Context, userID string) (*DashboardView, error) {
	if s.Cache != nil {
		var cached DashboardView
		if ok, err := s.Cache.GetView(ctx, overviewKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	view, err := s.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.SetView(ctx, overviewKey(userID), view, 30*time.Second); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("overview cache write failed")
		}
	}
	return view, nil
}

func (s *LoanService) dropOverview(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, overviewKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("overview cache invalidation failed")
	}
}

// HasPending answers the polling endpoint behind the intake form.
func (s *LoanService) HasPending(ctx context.Context, userID string) (bool, error) {
	return s.Apps.HasPending(ctx, userID)
}

// Recommendations builds the full recommendations page. It requires the
// latest application to be approved: entity.ErrNotFound when the user has no
// application at all, entity.ErrNotApproved otherwise.
func (s *LoanService) Recommendations(ctx context.Context, userID string) (*RecommendationsView, error) {
	latest, err := s.Apps.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest.Status != entity.StatusApproved {
		return nil, entity.ErrNotApproved
	}

	score := scoring.Score(latest)
	return &RecommendationsView{
		RiskScore:       score,
		Recommendations: projectOffers(scoring.Recommend(score), s.Defaults.ProcessingFeePercent),
		Applicant: ApplicantSummary{
			MonthlyIncome:     latest.MonthlyIncome,
			CreditScore:       score,
			DebtToIncomeRatio: s.Defaults.DebtToIncomeRatio,
			BankingHistory:    s.Defaults.BankingHistory,
		},
	}, nil
}

// Search queries the caller's own applications in Elasticsearch by free
// text over purpose, employer and job title.
func (s *LoanService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"purpose^2", "employer_name", "job_title"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexApplication mirrors a freshly admitted application into
// Elasticsearch, best-effort.
func (s *LoanService) indexApplication(ctx context.Context, app *entity.LoanApplication) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":              app.ID,
		"user_id":         app.UserID,
		"employer_name":   app.EmployerName,
		"job_title":       app.JobTitle,
		"employment_type": string(app.EmploymentType),
		"monthly_income":  app.MonthlyIncome.String(),
		"amount":          app.Amount.String(),
		"duration_months": app.DurationMonths,
		"purpose":         app.Purpose,
		"status":          string(app.Status),
		"created_at":      app.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: app.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("application_id", app.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "application_id": app.ID}).Warn("es index response error")
	}
}

// notifyReceived enqueues the "application received" email, best-effort.
func (s *LoanService) notifyReceived(ctx context.Context, app *entity.LoanApplication) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	u, err := s.Users.GetByID(ctx, app.UserID)
	if err != nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateApplicationReceived,
		Data: map[string]any{
			"Name":           u.Name,
			"Amount":         app.Amount.String(),
			"DurationMonths": app.DurationMonths,
			"CompanyName":    s.CompanyName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", u.Email).Warn("failed to publish email job")
	}
}
