package handlers

import (
	"net/http"
	"strings"
	"time"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// jobResponse is the public projection: contact details are never included,
// they are only served through the contact endpoint after a grant check.
type jobResponse struct {
	ID           common.UUID `json:"id"`
	EmployerID   common.UUID `json:"employer_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Location     string      `json:"location"`
	HourlyPay    float64     `json:"hourly_pay"`
	HoursPerWeek int         `json:"hours_per_week"`
	Perks        []string    `json:"perks"`
	Sponsored    bool        `json:"sponsored"`
	Status       job.Status  `json:"status"`
	PostedAt     time.Time   `json:"posted_at"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

type jobContactResponse struct {
	JobID        common.UUID `json:"job_id"`
	ContactName  string      `json:"contact_name"`
	ContactPhone string      `json:"contact_phone"`
	ContactEmail string      `json:"contact_email"`
}

func toJobResponse(j job.Job) jobResponse {
	return jobResponse{
		ID:           j.ID,
		EmployerID:   j.EmployerID,
		Title:        j.Title,
		Description:  j.Description,
		Category:     j.Category,
		Location:     j.Location,
		HourlyPay:    j.HourlyPay,
		HoursPerWeek: j.HoursPerWeek,
		Perks:        j.Perks,
		Sponsored:    j.Sponsored,
		Status:       j.Status,
		PostedAt:     j.PostedAt,
		ExpiresAt:    j.ExpiresAt,
	}
}

func toJobResponses(jobs []job.Job) []jobResponse {
	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return out
}

type createJobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	HourlyPay    float64  `json:"hourly_pay"`
	HoursPerWeek int      `json:"hours_per_week"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Perks        []string `json:"perks"`
	Sponsored    bool     `json:"sponsored"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), actor, job.Job{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		HourlyPay:    req.HourlyPay,
		HoursPerWeek: req.HoursPerWeek,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Perks:        req.Perks,
		Sponsored:    req.Sponsored,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toJobResponse(*created))
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.jobs.Get(r.Context(), actor, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponse(*found))
}

// Contact serves the gated contact details. The service checks ownership,
// admin role, or a paid reveal grant before returning them.
func (h *JobHandler) Contact(w http.ResponseWriter, r *http.Request) {
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
	found, err := h.jobs.Contact(r.Context(), actor, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, jobContactResponse{
		JobID:        found.ID,
		ContactName:  found.ContactName,
		ContactPhone: found.ContactPhone,
		ContactEmail: found.ContactEmail,
	})
}

func (h *JobHandler) Browse(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	jobs, err := h.jobs.Browse(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponses(jobs))
}

func (h *JobHandler) SearchCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(segmentFromPath(r, 3))
	if category == "" {
		response.Error(w, common.NewValidationError("missing category", nil))
		return
	}
	limit, offset := pagination(r)
	jobs, err := h.jobs.SearchCategory(r.Context(), category, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponses(jobs))
}

func (h *JobHandler) ListByEmployer(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	employerID, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobs, err := h.jobs.ListByEmployer(r.Context(), actor, employerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponses(jobs))
}

type updateJobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	HourlyPay    float64  `json:"hourly_pay"`
	HoursPerWeek int      `json:"hours_per_week"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Perks        []string `json:"perks"`
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), actor, job.Job{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		HourlyPay:    req.HourlyPay,
		HoursPerWeek: req.HoursPerWeek,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Perks:        req.Perks,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toJobResponse(*updated))
}

type updateJobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.jobs.Delete(r.Context(), actor, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "job deleted"})
}
