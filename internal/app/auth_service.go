package app

import (
	"context"
	"strings"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/security"
)

type AuthService struct {
	users     user.Repository
	analytics analytics.Repository
	jwt       *security.JWTProvider
	tokenTTL  time.Duration
}

func NewAuthService(users user.Repository, analyticsRepo analytics.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, analytics: analyticsRepo, jwt: jwt, tokenTTL: tokenTTL}
}

// Login authenticates a marketplace user and issues a session token.
// Suspended accounts cannot log in; unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, "", err
	}
	if !security.CheckPassword(u.PasswordHash, password) {
		return nil, "", common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	if u.Status == user.StatusSuspended {
		return nil, "", common.NewError(common.CodeForbidden, "account is suspended", nil)
	}
	token, _, err := s.jwt.Generate(u.ID, string(u.Type), s.tokenTTL)
	if err != nil {
		return nil, "", common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.logged_in", UserID: &u.ID, Payload: analyticsPayload(ctx, nil)})
	return u, token, nil
}
