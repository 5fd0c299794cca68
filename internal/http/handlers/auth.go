package handlers

import (
	"net/http"
	"time"

	"studentgigs/internal/app"
	"studentgigs/internal/http/response"
)

type AuthHandler struct {
	auth         *app.AuthService
	cookieDomain string
	tokenTTL     time.Duration
}

func NewAuthHandler(auth *app.AuthService, cookieDomain string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, cookieDomain: cookieDomain, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUserResponse struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserType  string `json:"user_type"`
}

type loginResponse struct {
	Message string            `json:"message"`
	User    loginUserResponse `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	u, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.setSessionCookie(w, "token", token, h.tokenTTL)
	response.JSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		User: loginUserResponse{
			UserID:    u.ID.String(),
			UserEmail: u.Email,
			UserType:  string(u.Type),
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w, "token")
	response.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
