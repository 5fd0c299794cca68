package handlers

import (
	"net/http"
	"time"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type AdminHandler struct {
	admins       *app.AdminService
	users        *app.UserService
	jobs         *app.JobService
	applications *app.ApplicationService
	cookieDomain string
	tokenTTL     time.Duration
}

func NewAdminHandler(admins *app.AdminService, users *app.UserService, jobs *app.JobService, applications *app.ApplicationService, cookieDomain string, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		admins:       admins,
		users:        users,
		jobs:         jobs,
		applications: applications,
		cookieDomain: cookieDomain,
		tokenTTL:     tokenTTL,
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	account, token, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "admin_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"admin": map[string]string{
			"admin_id": account.ID.String(),
			"email":    account.Email,
			"role":     string(account.Role),
		},
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "admin_token",
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, offset := pagination(r)
	users, err := h.users.List(r.Context(), actor, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toUserResponses(users))
}

type setUserStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req setUserStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.users.SetStatus(r.Context(), actor, id, user.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toUserResponse(*updated))
}

// ListJobs returns every job regardless of status, including removed ones.
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, offset := pagination(r)
	jobs, err := h.jobs.ListAll(r.Context(), actor, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponses(jobs))
}

func (h *AdminHandler) SetJobStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateJobStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.UpdateStatus(r.Context(), actor, id, job.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponse(*updated))
}

// SetApplicationStatus is the admin override, typically a cancellation. The
// policy tables still decide which moves an admin may make.
func (h *AdminHandler) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateApplicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), actor, id, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toApplicationResponse(*updated))
}

type adminResponse struct {
	ID        common.UUID `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      admin.Role  `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toAdminResponse(a admin.AdminUser) adminResponse {
	return adminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	tier, ok := middleware.AdminRoleFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.admins.CreateAdmin(r.Context(), tier, admin.AdminUser{
		Email: req.Email,
		Name:  req.Name,
		Role:  admin.Role(req.Role),
	}, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toAdminResponse(*created))
}

type updateAdminRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
	Password *string `json:"password"`
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	tier, ok := middleware.AdminRoleFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	patch := app.AdminPatch{
		Name:     req.Name,
		Active:   req.Active,
		Password: req.Password,
	}
	if req.Role != nil {
		role := admin.Role(*req.Role)
		patch.Role = &role
	}
	updated, err := h.admins.UpdateAdmin(r.Context(), tier, id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toAdminResponse(*updated))
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.ListAdmins(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	out := make([]adminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, toAdminResponse(a))
	}
	response.JSON(w, http.StatusOK, out)
}

// Summary reports 30-day marketplace activity counters.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.admins.Summary(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, summary)
}
