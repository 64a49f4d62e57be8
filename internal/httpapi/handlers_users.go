package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"skillswapserver/internal/domain"
)

// userResponse is the wire shape of a user. Email is only set on the caller's
// own views; password material never appears at all.
type userResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Location      string    `json:"location,omitempty"`
	ProfilePic    string    `json:"profile_pic,omitempty"`
	SkillsOffered []string  `json:"skills_offered"`
	SkillsWanted  []string  `json:"skills_wanted"`
	Availability  string    `json:"availability"`
	Visibility    string    `json:"visibility"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

func publicUserResponse(u domain.User) userResponse {
	skillsOffered := u.SkillsOffered
	if skillsOffered == nil {
		skillsOffered = []string{}
	}
	skillsWanted := u.SkillsWanted
	if skillsWanted == nil {
		skillsWanted = []string{}
	}
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Location:      u.Location,
		ProfilePic:    u.ProfilePic,
		SkillsOffered: skillsOffered,
		SkillsWanted:  skillsWanted,
		Availability:  string(u.Availability),
		Visibility:    string(u.Visibility),
		Rating:        u.Rating,
		CreatedAt:     u.CreatedAt,
	}
}

func selfUserResponse(u domain.User) userResponse {
	resp := publicUserResponse(u)
	resp.Email = u.Email
	return resp
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type searchResponse struct {
	Users      []userResponse     `json:"users"`
	Pagination paginationResponse `json:"pagination"`
}

type publicProfileResponse struct {
	User     userResponse           `json:"user"`
	Feedback []domain.FeedbackEntry `json:"feedback"`
}

// GET /users lists public members, excluding the caller when authenticated.
func (a *api) handleBrowseUsers(w http.ResponseWriter, r *http.Request) {
	viewerID := ""
	if u, ok := CurrentUser(r.Context()); ok {
		viewerID = u.ID
	}

	limit := queryInt(r, "limit", 20)
	users, err := a.usersSvc.Browse(r.Context(), viewerID, r.URL.Query().Get("search"), r.URL.Query().Get("availability"), limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, publicUserResponse(u))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

// GET /users/search is the paginated variant used by the browse page.
func (a *api) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	viewerID := ""
	if u, ok := CurrentUser(r.Context()); ok {
		viewerID = u.ID
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)
	result, err := a.usersSvc.SearchUsers(r.Context(), viewerID, r.URL.Query().Get("query"), r.URL.Query().Get("availability"), page, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]userResponse, 0, len(result.Users))
	for _, u := range result.Users {
		out = append(out, publicUserResponse(u))
	}
	WriteJSON(w, http.StatusOK, searchResponse{
		Users: out,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// GET /users/{id} shows one member's public profile and their feedback. A
// private profile is only shown to its owner.
func (a *api) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	u, feedback, err := a.usersSvc.PublicProfile(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	viewer, _ := CurrentUser(r.Context())
	if u.Visibility != domain.VisibilityPublic && viewer.ID != u.ID {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	if feedback == nil {
		feedback = []domain.FeedbackEntry{}
	}
	WriteJSON(w, http.StatusOK, publicProfileResponse{User: publicUserResponse(u), Feedback: feedback})
}

// GET /users/{id}/swap-options tells the caller which skills they can put on
// a request form for the given member.
func (a *api) handleSwapOptions(w http.ResponseWriter, r *http.Request) {
	viewer, _ := CurrentUser(r.Context())

	id := r.PathValue("id")
	if !validID(id) {
		WriteDomainError(w, domain.ErrNotFound)
		return
	}

	opts, err := a.swapSvc.Options(r.Context(), viewer.ID, id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, opts)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
