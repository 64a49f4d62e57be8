package httpapi

import (
	"net/http"

	"skillswapserver/internal/domain"
)

type chatMessageRequest struct {
	Message string `json:"message"`
}

// GET /chat/{swapId} returns the full conversation for a swap, creating the
// chat lazily on first access. Outsiders get NotFound, never Forbidden, so
// the swap's existence stays hidden.
func (a *api) handleGetChat(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	swapID := r.PathValue("swapId")
	if !validID(swapID) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	chat, err := a.chatSvc.GetOrCreate(r.Context(), u.ID, swapID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if chat.Messages == nil {
		chat.Messages = []domain.ChatMessage{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

// POST /chat/{swapId} appends one message from the caller.
func (a *api) handlePostChatMessage(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	swapID := r.PathValue("swapId")
	if !validID(swapID) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	var req chatMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	msg, err := a.chatSvc.Append(r.Context(), u.ID, swapID, req.Message)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"message": msg})
}
