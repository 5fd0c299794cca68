package middleware

import (
	"context"
	"net/http"
	"strings"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/http/response"
	"studentgigs/internal/policy"
	"studentgigs/internal/security"
)

type contextKey string

const (
	ContextActorKey     contextKey = "actor"
	ContextAdminRoleKey contextKey = "admin_role"
)

const (
	sessionCookieName = "token"
	adminCookieName   = "admin_token"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) token(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// Authenticate resolves the session token into the acting user. Handlers
// never trust identity from the request body.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r, sessionCookieName)
		if token == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing session token", nil))
			return
		}
		claims, err := m.jwt.Parse(token)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		userID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		role := policy.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
		if role != policy.RoleStudent && role != policy.RoleEmployer {
			response.Error(w, common.NewError(common.CodeUnauthorized, "unknown role", nil))
			return
		}
		ctx := context.WithValue(r.Context(), ContextActorKey, policy.Actor{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateAdmin resolves the admin session token. Admin sessions are
// separate from user sessions and carry the admin tier as the role claim.
func (m *AuthMiddleware) AuthenticateAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r, adminCookieName)
		if token == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing admin token", nil))
			return
		}
		claims, err := m.jwt.Parse(token)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		adminID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid admin id", err))
			return
		}
		tier := admin.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
		if tier != admin.RoleAdmin && tier != admin.RoleSuperAdmin {
			response.Error(w, common.NewError(common.CodeUnauthorized, "unknown admin role", nil))
			return
		}
		ctx := context.WithValue(r.Context(), ContextActorKey, policy.Actor{ID: adminID, Role: policy.RoleAdmin})
		ctx = context.WithValue(ctx, ContextAdminRoleKey, tier)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(role policy.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeForbidden, "actor not found", nil))
				return
			}
			if actor.Role != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier, ok := AdminRoleFromContext(r.Context())
		if !ok || tier != admin.RoleSuperAdmin {
			response.Error(w, common.NewError(common.CodeForbidden, "super admin required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) (policy.Actor, bool) {
	actor, ok := ctx.Value(ContextActorKey).(policy.Actor)
	return actor, ok
}

func AdminRoleFromContext(ctx context.Context) (admin.Role, bool) {
	role, ok := ctx.Value(ContextAdminRoleKey).(admin.Role)
	return role, ok
}
