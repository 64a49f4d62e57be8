package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"skillswapserver/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrSelfSwap):
		WriteError(w, http.StatusConflict, "self_swap", "cannot request a swap with yourself")
	case errors.Is(err, domain.ErrDuplicatePending):
		WriteError(w, http.StatusConflict, "duplicate_pending_request", "a pending request already exists with this user")
	case errors.Is(err, domain.ErrRequestResolved):
		WriteError(w, http.StatusConflict, "request_resolved", "request has already been resolved")
	case errors.Is(err, domain.ErrFeedbackExists):
		WriteError(w, http.StatusConflict, "feedback_exists", "feedback already left for this user")
	case errors.Is(err, domain.ErrSelfFeedback):
		WriteError(w, http.StatusConflict, "self_feedback", "cannot leave feedback on yourself")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return "invalid request"
}
