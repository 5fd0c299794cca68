package app

import (
	"context"
	"regexp"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/policy"
	"studentgigs/internal/security"
)

type UserService struct {
	repo      user.Repository
	analytics analytics.Repository
}

func NewUserService(repo user.Repository, analyticsRepo analytics.Repository) *UserService {
	return &UserService{repo: repo, analytics: analyticsRepo}
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Mirrors the client-side UK mobile check; server side is authoritative.
	ukPhonePattern = regexp.MustCompile(`^(\+44\s?7\d{3}|07\d{3})\s?\d{3}\s?\d{3}$`)
)

func (s *UserService) Register(ctx context.Context, u user.User, password string) (*user.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	fields := map[string]string{}
	if !emailPattern.MatchString(u.Email) {
		fields["email"] = "a valid email is required"
	}
	if u.Type != user.TypeStudent && u.Type != user.TypeEmployer {
		fields["user_type"] = "user_type must be student or employer"
	}
	if u.Phone != "" && !ukPhonePattern.MatchString(u.Phone) {
		fields["phone"] = "phone must be a UK mobile number"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	u.Status = user.StatusActive
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.registered", UserID: &created.ID, Payload: analyticsPayload(ctx, map[string]string{"user_type": string(created.Type)})})
	return created, nil
}

func (s *UserService) Get(ctx context.Context, actor policy.Actor, id common.UUID) (*user.User, error) {
	if actor.Role != policy.RoleAdmin && actor.ID != id {
		return nil, policy.ErrNotOwner
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, actor policy.Actor, limit, offset int) ([]user.User, error) {
	if actor.Role != policy.RoleAdmin {
		return nil, policy.ErrNotOwner
	}
	if limit <= 0 {
		limit = defaultListingLimit
	}
	return s.repo.List(ctx, limit, offset)
}

// UserPatch carries partial profile updates. Nil fields are left unchanged.
type UserPatch struct {
	Email        *string
	Password     *string
	Type         *user.Type
	FirstName    *string
	LastName     *string
	Phone        *string
	City         *string
	Institution  *string
	Organisation *string
}

// Update applies a partial edit. The account type is immutable after
// onboarding: a patch naming a different type is rejected.
func (s *UserService) Update(ctx context.Context, actor policy.Actor, id common.UUID, patch UserPatch) (*user.User, error) {
	if actor.Role != policy.RoleAdmin && actor.ID != id {
		return nil, policy.ErrNotOwner
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Type != nil && *patch.Type != current.Type {
		return nil, common.NewValidationError("user type cannot be changed", map[string]string{"user_type": "user_type is fixed after registration"})
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !emailPattern.MatchString(email) {
			return nil, common.NewValidationError("invalid email", map[string]string{"email": "a valid email is required"})
		}
		if email != current.Email {
			current.Email = email
			current.EmailVerified = false
		}
	}
	if patch.Password != nil {
		hash, err := security.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hash
	}
	if patch.FirstName != nil {
		current.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		current.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if phone != "" && !ukPhonePattern.MatchString(phone) {
			return nil, common.NewValidationError("invalid phone", map[string]string{"phone": "phone must be a UK mobile number"})
		}
		if phone != current.Phone {
			current.Phone = phone
			current.PhoneVerified = false
		}
	}
	if patch.City != nil {
		current.City = strings.TrimSpace(*patch.City)
	}
	if patch.Institution != nil {
		current.Institution = strings.TrimSpace(*patch.Institution)
	}
	if patch.Organisation != nil {
		current.Organisation = strings.TrimSpace(*patch.Organisation)
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.updated", UserID: &updated.ID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

// Delete removes the account. Owned jobs and applications cascade with it;
// the schema owns that contract.
func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id common.UUID) error {
	if actor.Role != policy.RoleAdmin && actor.ID != id {
		return policy.ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.deleted", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"deleted_user_id": id.String()})})
	return nil
}

// SetStatus suspends or reactivates an account. Admin only.
func (s *UserService) SetStatus(ctx context.Context, actor policy.Actor, id common.UUID, status user.Status) (*user.User, error) {
	if actor.Role != policy.RoleAdmin {
		return nil, policy.ErrNotOwner
	}
	if status != user.StatusActive && status != user.StatusSuspended {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active or suspended"})
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.status_changed", UserID: &actor.ID, Payload: analyticsPayload(ctx, map[string]string{"target_user_id": id.String(), "status": string(status)})})
	return updated, nil
}
