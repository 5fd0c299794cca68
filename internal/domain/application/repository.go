package application

import (
	"context"

	"studentgigs/internal/common"
)

type Repository interface {
	// Create inserts the application and its contact grant in one
	// transaction. A second application for the same (job, student) pair
	// fails with a conflict error.
	Create(ctx context.Context, app Application) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Application, error)
}
