package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/loanpal/loanpal-api/internal/application"
	"github.com/loanpal/loanpal-api/internal/domain/entity"
	"github.com/loanpal/loanpal-api/pkg/response"
	"github.com/loanpal/loanpal-api/pkg/validation"
)

type LoanHandler struct {
	Svc    *application.LoanService
	Logger *logrus.Logger
}

func NewLoanHandler(svc *application.LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{Svc: svc, Logger: logger}
}

type submitRequest struct {
	EmployerName    string           `json:"employer_name"`
	JobTitle        string           `json:"job_title"`
	EmploymentType  string           `json:"employment_type" binding:"required,employment"`
	MonthlyIncome   decimal.Decimal  `json:"monthly_income"`
	Amount          decimal.Decimal  `json:"amount"`
	DurationMonths  int              `json:"duration_months" binding:"required,min=1"`
	CreditScore     *int             `json:"credit_score"`
	CreditCheck     bool             `json:"credit_check"`
	TotalSavings    decimal.Decimal  `json:"total_savings"`
	Assets          string           `json:"assets"`
	CollateralType  string           `json:"collateral_type"`
	CollateralValue *decimal.Decimal `json:"collateral_value"`
	ExistingDebt    bool             `json:"existing_debt"`
	Purpose         string           `json:"purpose"`
}

func (h *LoanHandler) Submit(c *gin.Context) {
	uid := c.GetString("userID")
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	app, err := h.Svc.Submit(c.Request.Context(), uid, application.SubmitInput{
		EmployerName:    req.EmployerName,
		JobTitle:        req.JobTitle,
		EmploymentType:  req.EmploymentType,
		MonthlyIncome:   req.MonthlyIncome,
		Amount:          req.Amount,
		DurationMonths:  req.DurationMonths,
		CreditScore:     req.CreditScore,
		CreditCheck:     req.CreditCheck,
		TotalSavings:    req.TotalSavings,
		Assets:          req.Assets,
		CollateralType:  req.CollateralType,
		CollateralValue: req.CollateralValue,
		ExistingDebt:    req.ExistingDebt,
		Purpose:         req.Purpose,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicatePending):
			response.Error[any](c, http.StatusConflict, entity.ErrDuplicatePending.Message, entity.ErrDuplicatePending.Code)
		case errors.Is(err, entity.ErrInvalidInput):
			var verr *application.ValidationError
			if errors.As(err, &verr) {
				response.Error[any](c, http.StatusBadRequest, "invalid application", verr.Fields)
				return
			}
			response.Error[any](c, http.StatusBadRequest, "invalid application", entity.ErrInvalidInput.Code)
		default:
			h.Logger.WithError(err).Error("loan submission failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to submit application", nil)
		}
		return
	}

	response.Success[any](c, http.StatusCreated, map[string]any{
		"application_id": app.ID,
		"status":         string(app.Status),
	}, "application submitted", nil)
}

func (h *LoanHandler) Dashboard(c *gin.Context) {
	uid := c.GetString("userID")
	view, err := h.Svc.Dashboard(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("dashboard build failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load dashboard", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "dashboard", nil)
}

func (h *LoanHandler) Overview(c *gin.Context) {
	uid := c.GetString("userID")
	view, err := h.Svc.Overview(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("overview build failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load overview", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "overview", nil)
}

func (h *LoanHandler) Status(c *gin.Context) {
	uid := c.GetString("userID")
	pending, err := h.Svc.HasPending(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("status check failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to check status", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"has_pending": pending}, "application status", nil)
}

func (h *LoanHandler) Recommendations(c *gin.Context) {
	uid := c.GetString("userID")
	view, err := h.Svc.Recommendations(c.Request.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "no application on file", nil)
		case errors.Is(err, entity.ErrNotApproved):
			c.Header("Location", "/api/dashboard")
			response.Error[any](c, http.StatusConflict, "application not approved yet", map[string]any{
				"code":     entity.ErrNotApproved.Code,
				"redirect": "/api/dashboard",
			})
		default:
			h.Logger.WithError(err).Error("recommendations build failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to load recommendations", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, view, "recommendations", nil)
}

func (h *LoanHandler) Search(c *gin.Context) {
	uid := c.GetString("userID")
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size := 10
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, size)
	if err != nil {
		h.Logger.WithError(err).Error("application search failed")
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
