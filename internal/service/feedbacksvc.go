package service

import (
	"context"
	"strings"

	"skillswapserver/internal/domain"
)

type FeedbackStore interface {
	Create(ctx context.Context, userID, authorID, message string, rating int) (domain.FeedbackEntry, error)
	ListForUser(ctx context.Context, userID string) ([]domain.FeedbackEntry, error)
}

type FeedbackService struct {
	Store FeedbackStore
}

// Create leaves one star rating with a message on another member's profile.
// One entry per author per subject; the subject's aggregate rating is
// recomputed by the store.
func (s *FeedbackService) Create(ctx context.Context, authorID, userID, message string, rating int) (domain.FeedbackEntry, error) {
	message = strings.TrimSpace(message)

	fields := map[string]string{}
	if message == "" {
		fields["message"] = "required"
	}
	if rating < 1 || rating > 5 {
		fields["rating"] = "must be between 1 and 5"
	}
	if len(fields) > 0 {
		return domain.FeedbackEntry{}, domain.NewValidationError(fields)
	}
	if authorID == userID {
		return domain.FeedbackEntry{}, domain.ErrSelfFeedback
	}

	return s.Store.Create(ctx, userID, authorID, message, rating)
}
