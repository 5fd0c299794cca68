package app

import (
	"context"
	"strings"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/policy"
)

type JobService struct {
	repo      job.Repository
	grants    application.GrantRepository
	analytics analytics.Repository
}

func NewJobService(repo job.Repository, grants application.GrantRepository, analyticsRepo analytics.Repository) *JobService {
	return &JobService{repo: repo, grants: grants, analytics: analyticsRepo}
}

const defaultListingLimit = 50

// Create posts a job for the acting employer. Ownership comes from the
// session, never from the request body. Expiry defaults to the 30-day
// visibility window.
func (s *JobService) Create(ctx context.Context, actor policy.Actor, j job.Job) (*job.Job, error) {
	if actor.Role != policy.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "only employers can post jobs", nil)
	}
	j.EmployerID = actor.ID
	if err := validateJob(j); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	j.PostedAt = now
	if j.ExpiresAt.IsZero() {
		j.ExpiresAt = now.Add(job.VisibilityWindow)
	}
	j.Status = job.StatusActive
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"job_id": created.ID.String()})})
	return created, nil
}

// Get is the direct ID lookup: expired and filled jobs stay retrievable, so
// an employer can review an old post. Removed jobs are hidden from everyone
// but admins.
func (s *JobService) Get(ctx context.Context, actor policy.Actor, id common.UUID) (*job.Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.Status == job.StatusRemoved && actor.Role != policy.RoleAdmin {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return j, nil
}

// Contact reveals the gated contact fields. Students need a grant, which an
// application creates and nothing revokes.
func (s *JobService) Contact(ctx context.Context, actor policy.Actor, id common.UUID) (*job.Job, error) {
	j, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	hasGrant := false
	if actor.Role == policy.RoleStudent {
		hasGrant, err = s.grants.Has(ctx, actor.ID, j.ID)
		if err != nil {
			return nil, err
		}
	}
	if !policy.CanRevealContact(actor, *j, hasGrant) {
		return nil, common.NewError(common.CodeForbidden, "contact details are locked", nil)
	}
	return j, nil
}

// Update edits job fields. Owner only; status changes go through
// UpdateStatus.
func (s *JobService) Update(ctx context.Context, actor policy.Actor, j job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if actor.Role != policy.RoleAdmin && (actor.Role != policy.RoleEmployer || actor.ID != current.EmployerID) {
		return nil, policy.ErrNotOwner
	}
	j.EmployerID = current.EmployerID
	if err := validateJob(j); err != nil {
		return nil, err
	}
	if j.ExpiresAt.IsZero() {
		j.ExpiresAt = current.ExpiresAt
	}
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"job_id": updated.ID.String()})})
	return updated, nil
}

// UpdateStatus moves a job through its lifecycle, consulting the policy
// tables for legality and ownership.
func (s *JobService) UpdateStatus(ctx context.Context, actor policy.Actor, id common.UUID, to job.Status) (*job.Job, error) {
	normalized, err := normalizeJobStatus(to)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanTransitionJob(actor, *current, normalized); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, normalized)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.status_changed", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"job_id": id.String(), "status": string(normalized)})})
	return updated, nil
}

// Browse lists jobs open for applications: sponsored first, newest first,
// expired excluded even when the sweep has not caught up.
func (s *JobService) Browse(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = defaultListingLimit
	}
	return s.repo.ListVisible(ctx, time.Now().UTC(), limit, offset)
}

func (s *JobService) SearchCategory(ctx context.Context, category string, limit, offset int) ([]job.Job, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, common.NewValidationError("category is required", map[string]string{"category": "category must not be empty"})
	}
	if limit <= 0 {
		limit = defaultListingLimit
	}
	return s.repo.SearchCategory(ctx, category, time.Now().UTC(), limit, offset)
}

// ListByEmployer returns every job the employer posted, whatever its
// status.
func (s *JobService) ListByEmployer(ctx context.Context, actor policy.Actor, employerID common.UUID) ([]job.Job, error) {
	if actor.Role != policy.RoleAdmin && actor.ID != employerID {
		return nil, policy.ErrNotOwner
	}
	return s.repo.ListByEmployer(ctx, employerID)
}

func (s *JobService) ListAll(ctx context.Context, actor policy.Actor, limit, offset int) ([]job.Job, error) {
	if actor.Role != policy.RoleAdmin {
		return nil, policy.ErrNotOwner
	}
	if limit <= 0 {
		limit = defaultListingLimit
	}
	return s.repo.ListAll(ctx, limit, offset)
}

// Delete removes a job and, through the schema, its applications.
func (s *JobService) Delete(ctx context.Context, actor policy.Actor, id common.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != policy.RoleAdmin && (actor.Role != policy.RoleEmployer || actor.ID != current.EmployerID) {
		return policy.ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"job_id": id.String()})})
	return nil
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(j.Category) == "" {
		fields["category"] = "category is required"
	}
	if strings.TrimSpace(j.Location) == "" {
		fields["location"] = "location is required"
	}
	if j.HourlyPay <= 0 {
		fields["hourly_pay"] = "hourly_pay must be greater than zero"
	}
	if j.HoursPerWeek <= 0 || j.HoursPerWeek > 48 {
		fields["hours_per_week"] = "hours_per_week must be between 1 and 48"
	}
	if strings.TrimSpace(j.ContactName) == "" {
		fields["contact_name"] = "contact_name is required"
	}
	if strings.TrimSpace(j.ContactEmail) == "" && strings.TrimSpace(j.ContactPhone) == "" {
		fields["contact_email"] = "a contact email or phone is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func normalizeJobStatus(status job.Status) (job.Status, error) {
	normalized := job.Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case job.StatusActive, job.StatusFilled, job.StatusExpired, job.StatusArchived, job.StatusRemoved:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid job status", map[string]string{"status": "status must be active, filled, expired, archived, or removed"})
	}
}
