package service

import (
	"context"
	"strings"

	"skillswapserver/internal/domain"
)

type UserSearchStore interface {
	ListPublicUsers(ctx context.Context, excludeUserID, search, availability string, limit int) ([]domain.User, error)
	SearchPublicUsers(ctx context.Context, excludeUserID, query, availability string, limit, offset int) ([]domain.User, int, error)
}

type FeedbackLister interface {
	ListForUser(ctx context.Context, userID string) ([]domain.FeedbackEntry, error)
}

type UsersService struct {
	Users    UsersStore
	Search   UserSearchStore
	Feedback FeedbackLister
}

// SearchPage is the paginated search result envelope.
type SearchPage struct {
	Users      []domain.User
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

func (s *UsersService) Browse(ctx context.Context, viewerID, search, availability string, limit int) ([]domain.User, error) {
	availability, err := normalizeAvailabilityFilter(availability)
	if err != nil {
		return nil, err
	}
	return s.Search.ListPublicUsers(ctx, viewerID, strings.TrimSpace(search), availability, limit)
}

func (s *UsersService) SearchUsers(ctx context.Context, viewerID, query, availability string, page, limit int) (SearchPage, error) {
	availability, err := normalizeAvailabilityFilter(availability)
	if err != nil {
		return SearchPage{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 6
	}

	users, total, err := s.Search.SearchPublicUsers(ctx, viewerID, strings.TrimSpace(query), availability, limit, (page-1)*limit)
	if err != nil {
		return SearchPage{}, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return SearchPage{Users: users, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

// PublicProfile returns the display fields of one user plus their feedback.
// Email and credentials never leave this layer.
func (s *UsersService) PublicProfile(ctx context.Context, id string) (domain.User, []domain.FeedbackEntry, error) {
	u, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}

	fb, err := s.Feedback.ListForUser(ctx, id)
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, fb, nil
}

func normalizeAvailabilityFilter(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return "", nil
	}
	if !domain.ValidAvailability(domain.Availability(raw)) {
		return "", domain.NewValidationError(map[string]string{"availability": "must be one of Mornings, Evenings, Weekends"})
	}
	return raw, nil
}
