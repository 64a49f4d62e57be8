package httpapi

import (
	"net/http"

	"skillswapserver/internal/domain"
)

type profileUpdateRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	ProfilePic    *string  `json:"profile_pic"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  *string  `json:"availability"`
	Visibility    *string  `json:"visibility"`
}

// GET /user/profile returns the caller's own profile, email included.
func (a *api) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())
	WriteJSON(w, http.StatusOK, map[string]any{"user": selfUserResponse(u)})
}

// PUT /user/profile applies a partial edit. Absent fields are left unchanged;
// an explicitly empty skill list clears it.
func (a *api) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	update := domain.ProfileUpdate{
		Name:          req.Name,
		Location:      req.Location,
		ProfilePic:    req.ProfilePic,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	}
	if req.Availability != nil {
		av := domain.Availability(*req.Availability)
		update.Availability = &av
	}
	if req.Visibility != nil {
		vis := domain.Visibility(*req.Visibility)
		update.Visibility = &vis
	}

	updated, err := a.profileSvc.Update(r.Context(), u.ID, update)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"user": selfUserResponse(updated)})
}
