package repository

import (
	"context"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
)

// LoanApplicationRepository is the storage boundary for loan applications.
// The record set is append-only from this service's point of view: status
// transitions happen out of band.
type LoanApplicationRepository interface {
	// CreatePending inserts a new pending application owned by app.UserID.
	// The insert and the one-pending-per-user check are a single atomic unit:
	// a concurrent duplicate submission surfaces as entity.ErrDuplicatePending
	// and leaves no row behind.
	CreatePending(ctx context.Context, app *entity.LoanApplication) error

	// GetLatestByUser returns the application with the greatest created_at
	// for the user, or entity.ErrNotFound when none exists.
	GetLatestByUser(ctx context.Context, userID string) (*entity.LoanApplication, error)

	// HasPending reports whether the user owns an application in pending state.
	HasPending(ctx context.Context, userID string) (bool, error)
}
