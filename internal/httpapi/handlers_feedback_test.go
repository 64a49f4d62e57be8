package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillswapserver/internal/domain"
	"skillswapserver/internal/service"
)

type stubFeedbackStore struct {
	t *testing.T

	createFunc func(context.Context, string, string, string, int) (domain.FeedbackEntry, error)
}

func (s *stubFeedbackStore) Create(ctx context.Context, userID, authorID, message string, rating int) (domain.FeedbackEntry, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, userID, authorID, message, rating)
	}
	s.t.Fatalf("Create called unexpectedly")
	return domain.FeedbackEntry{}, context.Canceled
}

func (s *stubFeedbackStore) ListForUser(context.Context, string) ([]domain.FeedbackEntry, error) {
	s.t.Fatalf("ListForUser called unexpectedly")
	return nil, context.Canceled
}

func TestFeedbackOnSelfIsConflict(t *testing.T) {
	api := &api{feedbackSvc: &service.FeedbackService{Store: &stubFeedbackStore{t: t}}}

	req := authedRequest(http.MethodPost, "/users/"+idAlice+"/feedback", `{"message":"great","rating":5}`, idAlice)
	req.SetPathValue("id", idAlice)

	rr := httptest.NewRecorder()
	api.handleCreateFeedback(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "self_feedback" {
		t.Fatalf("unexpected error code: %s", resp.Error.Code)
	}
}

func TestFeedbackCreate(t *testing.T) {
	store := &stubFeedbackStore{
		t: t,
		createFunc: func(_ context.Context, userID, authorID, message string, rating int) (domain.FeedbackEntry, error) {
			if userID != idBob || authorID != idAlice {
				t.Fatalf("unexpected feedback pair: %s by %s", userID, authorID)
			}
			if message != "great teacher" || rating != 5 {
				t.Fatalf("unexpected payload: %q %d", message, rating)
			}
			return domain.FeedbackEntry{
				ID:        "fb-1",
				Author:    domain.UserSummary{ID: authorID, Name: "Alice"},
				Message:   message,
				Rating:    rating,
				CreatedAt: time.Date(2024, 7, 3, 8, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	api := &api{feedbackSvc: &service.FeedbackService{Store: store}}

	req := authedRequest(http.MethodPost, "/users/"+idBob+"/feedback", `{"message":"great teacher","rating":5}`, idAlice)
	req.SetPathValue("id", idBob)

	rr := httptest.NewRecorder()
	api.handleCreateFeedback(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestFeedbackRatingOutOfRange(t *testing.T) {
	api := &api{feedbackSvc: &service.FeedbackService{Store: &stubFeedbackStore{t: t}}}

	req := authedRequest(http.MethodPost, "/users/"+idBob+"/feedback", `{"message":"meh","rating":6}`, idAlice)
	req.SetPathValue("id", idBob)

	rr := httptest.NewRecorder()
	api.handleCreateFeedback(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}
