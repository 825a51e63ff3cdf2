package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
	"github.com/loanpal/loanpal-api/internal/domain/repository"
)

type LoanApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewLoanApplicationRepository(pool *pgxpool.Pool) *LoanApplicationRepository {
	return &LoanApplicationRepository{pool: pool}
}

// CreatePending relies on the partial unique index
// loan_applications_one_pending_per_user (user_id WHERE status = 'pending')
// for its atomicity guarantee: two racing submissions cannot both insert.
func (r *LoanApplicationRepository) CreatePending(ctx context.Context, app *entity.LoanApplication) error {
	app.Status = entity.StatusPending
	row := r.pool.QueryRow(ctx, `
		INSERT INTO loan_applications (
			user_id, employer_name, job_title, employment_type,
			monthly_income, amount, duration_months, credit_score, credit_check,
			total_savings, assets, collateral_type, collateral_value,
			existing_debt, purpose, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`, app.UserID, app.EmployerName, app.JobTitle, app.EmploymentType,
		app.MonthlyIncome, app.Amount, app.DurationMonths, app.CreditScore, app.CreditCheck,
		app.TotalSavings, app.Assets, app.CollateralType, app.CollateralValue,
		app.ExistingDebt, app.Purpose, app.Status)

	if err := row.Scan(&app.ID, &app.CreatedAt); err != nil {
		return pendingInsertError(err)
	}
	return nil
}

// pendingInsertError maps storage errors from the pending insert to domain
// errors. The only unique constraint touching this insert is
// loan_applications_one_pending_per_user, so a 23505 here always means a
// racing or repeated submission lost to an existing pending row.
func pendingInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return entity.ErrDuplicatePending
	}
	return err
}

func (r *LoanApplicationRepository) GetLatestByUser(ctx context.Context, userID string) (*entity.LoanApplication, error) {
	app := &entity.LoanApplication{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, employer_name, job_title, employment_type,
		       monthly_income, amount, duration_months, credit_score, credit_check,
		       total_savings, assets, collateral_type, collateral_value,
		       existing_debt, purpose, status, created_at
		FROM loan_applications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)

	if err := row.Scan(&app.ID, &app.UserID, &app.EmployerName, &app.JobTitle, &app.EmploymentType,
		&app.MonthlyIncome, &app.Amount, &app.DurationMonths, &app.CreditScore, &app.CreditCheck,
		&app.TotalSavings, &app.Assets, &app.CollateralType, &app.CollateralValue,
		&app.ExistingDebt, &app.Purpose, &app.Status, &app.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *LoanApplicationRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM loan_applications WHERE user_id = $1 AND status = 'pending'
		)
	`, userID).Scan(&exists)
	return exists, err
}

var _ repository.LoanApplicationRepository = (*LoanApplicationRepository)(nil)
