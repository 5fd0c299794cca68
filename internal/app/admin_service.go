package app

import (
	"context"
	"strings"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/security"
)

type AdminService struct {
	repo      admin.Repository
	analytics analytics.Repository
	jwt       *security.JWTProvider
	tokenTTL  time.Duration
}

func NewAdminService(repo admin.Repository, analyticsRepo analytics.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AdminService {
	return &AdminService{repo: repo, analytics: analyticsRepo, jwt: jwt, tokenTTL: tokenTTL}
}

// Login authenticates against the admin identity space. Deactivated admins
// cannot log in even with correct credentials.
func (s *AdminService) Login(ctx context.Context, email, password string) (*admin.AdminUser, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, "", err
	}
	if !security.CheckPassword(a.PasswordHash, password) {
		return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	if !a.Active {
		return nil, "", common.NewError(common.CodeForbidden, "admin account is deactivated", nil)
	}
	token, _, err := s.jwt.Generate(a.ID, string(a.Role), s.tokenTTL)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "admin.logged_in", UserID: &a.ID, Payload: analyticsPayload(ctx, nil)})
	return a, token, nil
}

// CreateAdmin adds an admin account. Only super admins manage the admin
// roster.
func (s *AdminService) CreateAdmin(ctx context.Context, actorRole admin.Role, a admin.AdminUser, password string) (*admin.AdminUser, error) {
	if actorRole != admin.RoleSuperAdmin {
		return nil, common.NewError(common.CodeForbidden, "super admin role required", nil)
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Email == "" {
		return nil, common.NewValidationError("email is required", map[string]string{"email": "email must not be empty"})
	}
	if a.Role != admin.RoleAdmin && a.Role != admin.RoleSuperAdmin {
		return nil, common.NewValidationError("invalid role", map[string]string{"role": "role must be admin or super_admin"})
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash
	a.Active = true
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "admin.created", UserID: &created.ID, Payload: analyticsPayload(ctx, map[string]string{"role": string(created.Role)})})
	return created, nil
}

// AdminPatch carries partial admin edits. Nil fields are left unchanged.
type AdminPatch struct {
	Name     *string
	Role     *admin.Role
	Active   *bool
	Password *string
}

func (s *AdminService) UpdateAdmin(ctx context.Context, actorRole admin.Role, id common.UUID, patch AdminPatch) (*admin.AdminUser, error) {
	if actorRole != admin.RoleSuperAdmin {
		return nil, common.NewError(common.CodeForbidden, "super admin role required", nil)
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		if *patch.Role != admin.RoleAdmin && *patch.Role != admin.RoleSuperAdmin {
			return nil, common.NewValidationError("invalid role", map[string]string{"role": "role must be admin or super_admin"})
		}
		current.Role = *patch.Role
	}
	if patch.Active != nil {
		current.Active = *patch.Active
	}
	if patch.Password != nil {
		hash, err := security.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hash
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "admin.updated", UserID: &updated.ID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]admin.AdminUser, error) {
	return s.repo.List(ctx)
}

// Summary aggregates the last 30 days of analytics events for the
// dashboard.
func (s *AdminService) Summary(ctx context.Context) (map[string]int64, error) {
	return s.analytics.CountByName(ctx, time.Now().UTC().Add(-30*24*time.Hour))
}
