package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpal/loanpal-api/internal/application"
	"github.com/loanpal/loanpal-api/internal/domain/entity"
	"github.com/loanpal/loanpal-api/pkg/validation"
)

type stubUserRepo struct {
	user *entity.User
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, entity.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, entity.ErrNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *entity.User) error    { return nil }
func (r *stubUserRepo) TouchLastLogin(_ context.Context, id string) error { return nil }

type stubAppRepo struct {
	apps []*entity.LoanApplication
}

func (r *stubAppRepo) CreatePending(_ context.Context, app *entity.LoanApplication) error {
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

func (r *stubAppRepo) GetLatestByUser(_ context.Context, userID string) (*entity.LoanApplication, error) {
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

func (r *stubAppRepo) HasPending(_ context.Context, userID string) (bool, error) {
	for _, a := range r.apps {
		if a.UserID == userID && a.Status == entity.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(t *testing.T, userID string, apps *stubAppRepo, users *stubUserRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	svc := &application.LoanService{Apps: apps, Users: users}
	h := NewLoanHandler(svc, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", userID) })
	api := r.Group("/api")
	api.POST("/loans", h.Submit)
	api.GET("/loans/status", h.Status)
	api.GET("/loans/recommendations", h.Recommendations)
	api.GET("/dashboard", h.Dashboard)
	return r
}

func submitBody() []byte {
	b, _ := json.Marshal(map[string]any{
		"employer_name":   "Acme Ltd",
		"job_title":       "Engineer",
		"employment_type": "full-time",
		"monthly_income":  "300000",
		"amount":          "1000000",
		"duration_months": 12,
		"purpose":         "Business expansion",
	})
	return b
}

func doJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitEndpoint(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	w := doJSON(r, http.MethodPost, "/api/loans", submitBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var data struct {
		ApplicationID string `json:"application_id"`
		Status        string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.ApplicationID)
	assert.Equal(t, "pending", data.Status)
}

func TestSubmitEndpointDescriptiveFieldsOptional(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	// Employer, job title and purpose are descriptive only; a submission
	// without them is still admissible.
	body, _ := json.Marshal(map[string]any{
		"employment_type": "full-time",
		"monthly_income":  "300000",
		"amount":          "1000000",
		"duration_months": 12,
	})
	w := doJSON(r, http.MethodPost, "/api/loans", body)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, apps.apps, 1)
	assert.Empty(t, apps.apps[0].EmployerName)
	assert.Empty(t, apps.apps[0].Purpose)
}

func TestSubmitEndpointDuplicatePending(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	w := doJSON(r, http.MethodPost, "/api/loans", submitBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/loans", submitBody())
	require.Equal(t, http.StatusConflict, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "DUPLICATE_PENDING")
	assert.Len(t, apps.apps, 1)
}

func TestSubmitEndpointValidation(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	r := newTestRouter(t, u.ID, &stubAppRepo{}, &stubUserRepo{user: u})

	body, _ := json.Marshal(map[string]any{
		"employer_name":   "Acme Ltd",
		"job_title":       "Engineer",
		"employment_type": "freelancer",
		"monthly_income":  "300000",
		"amount":          "1000000",
		"duration_months": 12,
		"purpose":         "Business expansion",
	})
	w := doJSON(r, http.MethodPost, "/api/loans", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, string(env.Error), "employment_type")
}

func TestStatusEndpoint(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	w := doJSON(r, http.MethodGet, "/api/loans/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_pending":false`)

	doJSON(r, http.MethodPost, "/api/loans", submitBody())

	w = doJSON(r, http.MethodGet, "/api/loans/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_pending":true`)
}

func TestRecommendationsEndpointNotApproved(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	w := doJSON(r, http.MethodGet, "/api/loans/recommendations", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	doJSON(r, http.MethodPost, "/api/loans", submitBody())

	w = doJSON(r, http.MethodGet, "/api/loans/recommendations", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "/api/dashboard", w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "NOT_APPROVED")

	apps.apps[0].Status = entity.StatusApproved
	w = doJSON(r, http.MethodGet, "/api/loans/recommendations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "riskScore")
}

func TestDashboardEndpoint(t *testing.T) {
	u := &entity.User{ID: uuid.NewString(), Email: "ada@example.com", Name: "Ada Obi"}
	apps := &stubAppRepo{}
	r := newTestRouter(t, u.ID, apps, &stubUserRepo{user: u})

	w := doJSON(r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loanStatus":"none"`)
	assert.Contains(t, w.Body.String(), `"formDisabled":false`)

	doJSON(r, http.MethodPost, "/api/loans", submitBody())

	w = doJSON(r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loanStatus":"pending"`)
	assert.Contains(t, w.Body.String(), `"formDisabled":true`)
}
