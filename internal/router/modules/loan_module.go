package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loanpal/loanpal-api/internal/container"
	handlers "github.com/loanpal/loanpal-api/internal/interface/http"
	"github.com/loanpal/loanpal-api/internal/interface/middleware"
	"github.com/loanpal/loanpal-api/pkg/helpers"
)

// LoanModule wires the loan intake and dashboard routes. Everything here is
// behind auth: the dashboard and intake form belong to the logged-in user.
// POST /api/loans, GET /api/loans/status, GET /api/loans/recommendations,
// GET /api/loans/search, GET /api/dashboard, GET /api/dashboard/overview

type LoanModule struct {
	Handler *handlers.LoanHandler
	JWT     *helpers.JWTManager
}

func NewLoanModule(h *handlers.LoanHandler, jwt *helpers.JWTManager) *LoanModule {
	return &LoanModule{Handler: h, JWT: jwt}
}

func (m *LoanModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))

	// Submissions get a tight per-user limiter; the admission gate makes
	// duplicates harmless but there is no reason to let them hammer Postgres.
	submitLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil)
	// The status endpoint is polled by the intake form, so it gets headroom.
	pollLimiter := middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID(), nil)

	auth.POST("/loans", submitLimiter, m.Handler.Submit)
	auth.GET("/loans/status", pollLimiter, m.Handler.Status)
	auth.GET("/loans/recommendations", m.Handler.Recommendations)
	auth.GET("/loans/search", m.Handler.Search)

	auth.GET("/dashboard", m.Handler.Dashboard)
	auth.GET("/dashboard/overview", pollLimiter, m.Handler.Overview)
}
