package user

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, u User) (*User, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Delete(ctx context.Context, id common.UUID) error
}
