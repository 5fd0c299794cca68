package admin

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, a AdminUser) (*AdminUser, error)
	Update(ctx context.Context, a AdminUser) (*AdminUser, error)
	GetByID(ctx context.Context, id common.UUID) (*AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	List(ctx context.Context) ([]AdminUser, error)
}
