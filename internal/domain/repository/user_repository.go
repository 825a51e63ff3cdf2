package repository

import (
	"context"

	"github.com/loanpal/loanpal-api/internal/domain/entity"
)

// UserRepository is the storage boundary for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	TouchLastLogin(ctx context.Context, id string) error
}
