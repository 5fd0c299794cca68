package handlers

import (
	"net/http"
	"time"

	"studentgigs/internal/app"
	"studentgigs/internal/common"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userResponse struct {
	ID            common.UUID `json:"id"`
	Email         string      `json:"email"`
	UserType      user.Type   `json:"user_type"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Phone         string      `json:"phone"`
	City          string      `json:"city"`
	Institution   string      `json:"institution,omitempty"`
	Organisation  string      `json:"organisation,omitempty"`
	EmailVerified bool        `json:"email_verified"`
	PhoneVerified bool        `json:"phone_verified"`
	Status        user.Status `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		UserType:      u.Type,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		City:          u.City,
		Institution:   u.Institution,
		Organisation:  u.Organisation,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toUserResponses(users []user.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	UserType     string `json:"user_type"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Institution  string `json:"institution"`
	Organisation string `json:"organisation"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.users.Register(r.Context(), user.User{
		Email:        req.Email,
		Type:         user.Type(req.UserType),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		City:         req.City,
		Institution:  req.Institution,
		Organisation: req.Organisation,
	}, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toUserResponse(*created))
}

// Me returns the acting user's own account.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	found, err := h.users.Get(r.Context(), actor, actor.ID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toUserResponse(*found))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	found, err := h.users.Get(r.Context(), actor, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toUserResponse(*found))
}

type updateUserRequest struct {
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	UserType     *string `json:"user_type"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	City         *string `json:"city"`
	Institution  *string `json:"institution"`
	Organisation *string `json:"organisation"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	patch := app.UserPatch{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		City:         req.City,
		Institution:  req.Institution,
		Organisation: req.Organisation,
	}
	if req.UserType != nil {
		t := user.Type(*req.UserType)
		patch.Type = &t
	}
	updated, err := h.users.Update(r.Context(), actor, id, patch)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toUserResponse(*updated))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.users.Delete(r.Context(), actor, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}
