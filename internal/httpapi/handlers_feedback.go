package httpapi

import (
	"net/http"

	"skillswapserver/internal/domain"
)

type feedbackRequest struct {
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// POST /users/{id}/feedback leaves one rating on another member's profile.
func (a *api) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	id := r.PathValue("id")
	if !validID(id) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	entry, err := a.feedbackSvc.Create(r.Context(), u.ID, id, req.Message, req.Rating)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"feedback": entry})
}
