package httpapi

import (
	"context"
	"net/http"

	"skillswapserver/internal/domain"
	"skillswapserver/internal/service"
)

type createSwapRequest struct {
	ToUserID       string `json:"to_user_id"`
	OfferedSkill   string `json:"offered_skill"`
	RequestedSkill string `json:"requested_skill"`
	Message        string `json:"message"`
}

// POST /swap-requests raises a new Pending request from the caller.
func (a *api) handleCreateSwap(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	var req createSwapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if !validID(req.ToUserID) {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"to_user_id": "must be a valid user id"}))
		return
	}

	id, err := a.swapSvc.Create(r.Context(), u.ID, service.CreateSwapParams{
		ToUserID:       req.ToUserID,
		OfferedSkill:   req.OfferedSkill,
		RequestedSkill: req.RequestedSkill,
		Message:        req.Message,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GET /swap-requests lists the caller's requests, optionally filtered.
func (a *api) handleListSwaps(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	requests, err := a.swapSvc.List(r.Context(), u.ID, domain.SwapFilter(r.URL.Query().Get("filter")))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.SwapRequest{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"swap_requests": requests})
}

// POST /swap-requests/{id}/accept; only the target of a Pending request may.
func (a *api) handleAcceptSwap(w http.ResponseWriter, r *http.Request) {
	a.resolveSwap(w, r, a.swapSvc.Accept)
}

// POST /swap-requests/{id}/reject mirrors accept.
func (a *api) handleRejectSwap(w http.ResponseWriter, r *http.Request) {
	a.resolveSwap(w, r, a.swapSvc.Reject)
}

func (a *api) resolveSwap(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, viewerID, requestID string) error) {
	u, _ := CurrentUser(r.Context())

	id := r.PathValue("id")
	if !validID(id) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	if err := do(r.Context(), u.ID, id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
