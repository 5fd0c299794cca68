package job

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	// ListVisible returns jobs open for browsing: status active and not past
	// expiry, sponsored jobs first, newest first within each tier.
	ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]Job, error)
	// SearchCategory filters ListVisible by case-insensitive category substring.
	SearchCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]Job, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Job, error)
	ListAll(ctx context.Context, limit, offset int) ([]Job, error)
	// MarkExpired flips active jobs past their expiry to expired and reports
	// how many rows changed.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id common.UUID) error
}
