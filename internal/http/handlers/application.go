package handlers

import (
	"net/http"
	"time"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
	"studentgigs/internal/policy"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applicationResponse struct {
	ID        common.UUID        `json:"id"`
	JobID     common.UUID        `json:"job_id"`
	StudentID common.UUID        `json:"student_id"`
	Message   string             `json:"message"`
	Status    application.Status `json:"status"`
	AppliedAt time.Time          `json:"applied_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func toApplicationResponse(a application.Application) applicationResponse {
	return applicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		StudentID: a.StudentID,
		Message:   a.Message,
		Status:    a.Status,
		AppliedAt: a.AppliedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toApplicationResponses(apps []application.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

type applyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid job_id", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + actor.ID.String()
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), actor, jobID, req.Message)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toApplicationResponse(*created))
}

// List dispatches on the actor's role: students see their own applications,
// employers see applications to their jobs.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var (
		items []application.Application
		err   error
	)
	switch actor.Role {
	case policy.RoleStudent:
		items, err = h.applications.ListByStudent(r.Context(), actor)
	case policy.RoleEmployer:
		items, err = h.applications.ListByEmployer(r.Context(), actor)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		return
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toApplicationResponses(items))
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByJob(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toApplicationResponses(items))
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.applications.Get(r.Context(), actor, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toApplicationResponse(*found))
}

type updateApplicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
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
