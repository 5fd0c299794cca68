package app

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/payment"
	"studentgigs/internal/policy"
)

type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	gate      payment.Gate
	analytics analytics.Repository
}

func NewApplicationService(repo application.Repository, jobs job.Repository, gate payment.Gate, analyticsRepo analytics.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, gate: gate, analytics: analyticsRepo}
}

// Apply creates an application for the acting student. Order matters: job
// eligibility and the payment gate are checked before anything is written,
// and the insert itself settles duplicates through the unique constraint.
func (s *ApplicationService) Apply(ctx context.Context, actor policy.Actor, jobID common.UUID, message string) (*application.Application, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, common.NewValidationError("message is required", map[string]string{"message": "an application message is required"})
	}
	if utf8.RuneCountInString(message) > application.MaxMessageLength {
		return nil, common.NewValidationError("message too long", map[string]string{"message": "message must be at most 1000 characters"})
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanApply(actor, *j, time.Now().UTC()); err != nil {
		return nil, err
	}
	satisfied, err := s.gate.IsSatisfied(ctx, actor.ID, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to check payment", err)
	}
	if !satisfied {
		return nil, common.NewError(common.CodeValidation, "access fee has not been paid", nil)
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:     jobID,
		StudentID: actor.ID,
		Message:   message,
		Status:    application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"application_id": created.ID.String(), "job_id": jobID.String()})})
	return created, nil
}

// UpdateStatus moves an application through its lifecycle. Legality and
// ownership are decided by the policy tables against the parent job.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor policy.Actor, id common.UUID, to application.Status) (*application.Application, error) {
	normalized, err := normalizeApplicationStatus(to)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanTransitionApplication(actor, *app, *parent, normalized); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, normalized)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.status_changed", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"application_id": id.String(), "status": string(normalized)})})
	return updated, nil
}

func (s *ApplicationService) ListByStudent(ctx context.Context, actor policy.Actor) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, actor.ID)
}

func (s *ApplicationService) ListByEmployer(ctx context.Context, actor policy.Actor) ([]application.Application, error) {
	return s.repo.ListByEmployer(ctx, actor.ID)
}

// ListByJob returns the applications on one job, for its owner or an admin.
func (s *ApplicationService) ListByJob(ctx context.Context, actor policy.Actor, jobID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.Role != policy.RoleAdmin && (actor.Role != policy.RoleEmployer || actor.ID != j.EmployerID) {
		return nil, policy.ErrNotOwner
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) Get(ctx context.Context, actor policy.Actor, id common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == policy.RoleAdmin || actor.ID == app.StudentID {
		return app, nil
	}
	parent, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if actor.Role == policy.RoleEmployer && actor.ID == parent.EmployerID {
		return app, nil
	}
	return nil, policy.ErrNotOwner
}

func normalizeApplicationStatus(status application.Status) (application.Status, error) {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case application.StatusPending, application.StatusContacted, application.StatusRejected,
		application.StatusWithdrawn, application.StatusCancelled:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid application status", map[string]string{"status": "status must be pending, contacted, rejected, withdrawn, or cancelled"})
	}
}
