package router

import (
	"github.com/loanpal/loanpal-api/internal/application"
	"github.com/loanpal/loanpal-api/internal/container"
	"github.com/loanpal/loanpal-api/internal/domain/repository"
	pginfra "github.com/loanpal/loanpal-api/internal/infrastructure/postgres"
	handlers "github.com/loanpal/loanpal-api/internal/interface/http"
	"github.com/loanpal/loanpal-api/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repository.UserRepository
	Service *application.UserService
	Handler *handlers.UserHandler
}

type LoanModuleDeps struct {
	Repo    repository.LoanApplicationRepository
	Service *application.LoanService
	Handler *handlers.LoanHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := &application.UserService{
		Repo:      repo,
		JWT:       container.GetJWT(),
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Redis:     container.GetRedis(),
		Logger:    container.GetLogger(),
		Pub:       container.GetRabbitPub(),

		AppName:         cfg.AppName,
		CompanyName:     cfg.CompanyName,
		MailSendEnabled: cfg.MailSendEnabled,
	}

	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)

	return UserModuleDeps{Repo: repo, Service: service, Handler: handler}
}

func buildLoanDeps(users repository.UserRepository) LoanModuleDeps {
	cfg := container.GetConfig()
	repo := pginfra.NewLoanApplicationRepository(container.GetPGPool())

	service := &application.LoanService{
		Apps:   repo,
		Users:  users,
		Cache:  &application.RedisViewCache{Client: container.GetRedis()},
		Logger: container.GetLogger(),
		Pub:    container.GetRabbitPub(),

		ES:      container.GetES(),
		ESIndex: cfg.ESApplicationsIndex,

		CompanyName:     cfg.CompanyName,
		MailSendEnabled: cfg.MailSendEnabled,
		Defaults: application.DisplayDefaults{
			Location:             cfg.DashboardLocation,
			DebtToIncomeRatio:    cfg.DashboardDTIDisplay,
			BankingHistory:       cfg.DashboardBankingHistory,
			ProcessingFeePercent: cfg.ProcessingFeePercent,
		},
	}

	handler := handlers.NewLoanHandler(service, container.GetLogger())

	return LoanModuleDeps{Repo: repo, Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	loanDeps := buildLoanDeps(userDeps.Repo)

	r.Add(modules.NewUserModule(userDeps.Handler, container.GetJWT()))
	r.Add(modules.NewLoanModule(loanDeps.Handler, container.GetJWT()))
}
