package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// UserRepository manages signup requests and active accounts.
type UserRepository interface {
	CreatePending(ctx context.Context, u *entity.PendingUser) error
	ListPending(ctx context.Context) ([]*entity.PendingUser, error)
	// Approve moves a pending user into the users table with role, atomically.
	Approve(ctx context.Context, pendingID int64, role string) (*entity.User, error)
	DeletePending(ctx context.Context, pendingID int64) error
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}
