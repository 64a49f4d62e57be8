package httpapi

import (
	"net/http"
	"strings"
	"time"

	"skillswapserver/internal/domain"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (a *api) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	if !validEmail(strings.TrimSpace(req.Email)) {
		fields["email"] = "must be a valid email address"
	}
	if len(req.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	u, token, err := a.authSvc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, authResponse{User: selfUserResponse(u), Token: token})
}

func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		WriteDomainError(w, domain.ErrInvalidCredentials)
		return
	}

	now := time.Now()
	if !a.loginLimiter.Allow("ip:"+clientIP(r), now) || !a.loginLimiter.Allow("login:"+email, now) {
		WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many login attempts, try again later")
		return
	}

	u, token, err := a.authSvc.Login(r.Context(), email, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{User: selfUserResponse(u), Token: token})
}
