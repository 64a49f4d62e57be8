package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswapserver/internal/domain"
)

type stubUsersStore struct {
	t *testing.T

	createUserFunc     func(context.Context, string, string, string) (domain.User, error)
	getUserByIDFunc    func(context.Context, string) (domain.User, error)
	getUserByEmailFunc func(context.Context, string) (domain.UserWithPassword, error)
}

func (s *stubUsersStore) CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error) {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, name, email, passwordHash)
	}
	s.t.Fatalf("CreateUser called unexpectedly")
	return domain.User{}, context.Canceled
}

func (s *stubUsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetUserByID called unexpectedly")
	return domain.User{}, context.Canceled
}

func (s *stubUsersStore) GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	if s.getUserByEmailFunc != nil {
		return s.getUserByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetUserByEmail called unexpectedly")
	return domain.UserWithPassword{}, context.Canceled
}

type stubSwapStore struct {
	t *testing.T

	createFunc      func(context.Context, string, string, string, string, string) (string, time.Time, error)
	hasPendingFunc  func(context.Context, string, string) (bool, error)
	getByIDFunc     func(context.Context, string) (domain.SwapRequest, error)
	listForUserFunc func(context.Context, string) ([]domain.SwapRequest, error)
	resolveFunc     func(context.Context, string, string, domain.SwapStatus, time.Time) (bool, error)
}

func (s *stubSwapStore) Create(ctx context.Context, fromID, toID, offered, requested, message string) (string, time.Time, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, fromID, toID, offered, requested, message)
	}
	s.t.Fatalf("Create called unexpectedly")
	return "", time.Time{}, context.Canceled
}

func (s *stubSwapStore) HasPending(ctx context.Context, fromID, toID string) (bool, error) {
	if s.hasPendingFunc != nil {
		return s.hasPendingFunc(ctx, fromID, toID)
	}
	s.t.Fatalf("HasPending called unexpectedly")
	return false, context.Canceled
}

func (s *stubSwapStore) GetByID(ctx context.Context, id string) (domain.SwapRequest, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetByID called unexpectedly")
	return domain.SwapRequest{}, context.Canceled
}

func (s *stubSwapStore) ListForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error) {
	if s.listForUserFunc != nil {
		return s.listForUserFunc(ctx, userID)
	}
	s.t.Fatalf("ListForUser called unexpectedly")
	return nil, context.Canceled
}

func (s *stubSwapStore) Resolve(ctx context.Context, requestID, targetID string, status domain.SwapStatus, when time.Time) (bool, error) {
	if s.resolveFunc != nil {
		return s.resolveFunc(ctx, requestID, targetID, status, when)
	}
	s.t.Fatalf("Resolve called unexpectedly")
	return false, context.Canceled
}

func fixtureUsers(t *testing.T) *stubUsersStore {
	users := map[string]domain.User{
		"alice": {ID: "alice", Name: "Alice", Visibility: domain.VisibilityPublic,
			SkillsOffered: []string{"React"}, SkillsWanted: []string{"Python"}},
		"bob": {ID: "bob", Name: "Bob", Visibility: domain.VisibilityPublic,
			SkillsOffered: []string{"Python"}, SkillsWanted: []string{"React"}},
		"carol": {ID: "carol", Name: "Carol", Visibility: domain.VisibilityPrivate,
			SkillsOffered: []string{"Design"}, SkillsWanted: []string{"React"}},
	}
	return &stubUsersStore{
		t: t,
		getUserByIDFunc: func(_ context.Context, id string) (domain.User, error) {
			u, ok := users[id]
			if !ok {
				return domain.User{}, domain.ErrNotFound
			}
			return u, nil
		},
	}
}

func TestSwapCreate(t *testing.T) {
	store := &stubSwapStore{
		t: t,
		hasPendingFunc: func(_ context.Context, fromID, toID string) (bool, error) {
			if fromID != "alice" || toID != "bob" {
				t.Fatalf("unexpected pending check pair: %s -> %s", fromID, toID)
			}
			return false, nil
		},
		createFunc: func(_ context.Context, fromID, toID, offered, requested, message string) (string, time.Time, error) {
			if fromID != "alice" || toID != "bob" {
				t.Fatalf("unexpected pair: %s -> %s", fromID, toID)
			}
			if offered != "React" || requested != "Python" {
				t.Fatalf("unexpected skills: %s / %s", offered, requested)
			}
			return "req-1", time.Now(), nil
		},
	}
	svc := &SwapService{Requests: store, Users: fixtureUsers(t)}

	id, err := svc.Create(context.Background(), "alice", CreateSwapParams{
		ToUserID:       "bob",
		OfferedSkill:   "react",
		RequestedSkill: "python",
		Message:        "let's trade",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "req-1" {
		t.Fatalf("unexpected id: %s", id)
	}
}

func TestSwapCreateSelfAlwaysFails(t *testing.T) {
	svc := &SwapService{Requests: &stubSwapStore{t: t}, Users: fixtureUsers(t)}

	for _, skills := range [][2]string{{"React", "Python"}, {"X", "Y"}, {"Python", "React"}} {
		_, err := svc.Create(context.Background(), "alice", CreateSwapParams{
			ToUserID:       "alice",
			OfferedSkill:   skills[0],
			RequestedSkill: skills[1],
		})
		if !errors.Is(err, domain.ErrSelfSwap) {
			t.Fatalf("expected ErrSelfSwap, got %v", err)
		}
	}
}

func TestSwapCreateValidation(t *testing.T) {
	svc := &SwapService{Requests: &stubSwapStore{t: t}, Users: fixtureUsers(t)}

	_, err := svc.Create(context.Background(), "alice", CreateSwapParams{ToUserID: "bob"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing skills, got %v", err)
	}

	_, err = svc.Create(context.Background(), "alice", CreateSwapParams{
		ToUserID: "bob", OfferedSkill: "Design", RequestedSkill: "Python",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for skill not offered, got %v", err)
	}

	_, err = svc.Create(context.Background(), "alice", CreateSwapParams{
		ToUserID: "missing", OfferedSkill: "React", RequestedSkill: "Python",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown target, got %v", err)
	}
}

func TestSwapCreateDuplicatePending(t *testing.T) {
	store := &stubSwapStore{
		t: t,
		hasPendingFunc: func(context.Context, string, string) (bool, error) {
			return true, nil
		},
	}
	svc := &SwapService{Requests: store, Users: fixtureUsers(t)}

	_, err := svc.Create(context.Background(), "alice", CreateSwapParams{
		ToUserID: "bob", OfferedSkill: "React", RequestedSkill: "Python",
	})
	if !errors.Is(err, domain.ErrDuplicatePending) {
		t.Fatalf("expected duplicate pending, got %v", err)
	}
}

func TestSwapCreatePrivateTargetHidden(t *testing.T) {
	svc := &SwapService{Requests: &stubSwapStore{t: t}, Users: fixtureUsers(t)}

	_, err := svc.Create(context.Background(), "alice", CreateSwapParams{
		ToUserID: "carol", OfferedSkill: "React", RequestedSkill: "Design",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for private target, got %v", err)
	}
}

func TestSwapResolveClassification(t *testing.T) {
	stored := domain.SwapRequest{
		ID:       "req-1",
		FromUser: domain.UserSummary{ID: "alice"},
		ToUser:   domain.UserSummary{ID: "bob"},
		Status:   domain.SwapStatusAccepted,
	}
	store := &stubSwapStore{
		t: t,
		resolveFunc: func(_ context.Context, _, _ string, _ domain.SwapStatus, _ time.Time) (bool, error) {
			return false, nil
		},
		getByIDFunc: func(_ context.Context, id string) (domain.SwapRequest, error) {
			if id != "req-1" {
				return domain.SwapRequest{}, domain.ErrNotFound
			}
			return stored, nil
		},
	}
	svc := &SwapService{Requests: store, Users: fixtureUsers(t)}

	if err := svc.Accept(context.Background(), "bob", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Accept(context.Background(), "alice", "req-1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-target, got %v", err)
	}
	if err := svc.Accept(context.Background(), "bob", "req-1"); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected request resolved, got %v", err)
	}
	if err := svc.Reject(context.Background(), "bob", "req-1"); !errors.Is(err, domain.ErrRequestResolved) {
		t.Fatalf("expected reject after accept to fail, got %v", err)
	}
}

func TestSwapResolveHappyPath(t *testing.T) {
	when := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := &stubSwapStore{
		t: t,
		resolveFunc: func(_ context.Context, requestID, targetID string, status domain.SwapStatus, got time.Time) (bool, error) {
			if requestID != "req-1" || targetID != "bob" {
				t.Fatalf("unexpected resolve args: %s %s", requestID, targetID)
			}
			if status != domain.SwapStatusAccepted {
				t.Fatalf("unexpected status: %s", status)
			}
			if !got.Equal(when) {
				t.Fatalf("unexpected timestamp: %s", got)
			}
			return true, nil
		},
	}
	svc := &SwapService{
		Requests: store,
		Users:    fixtureUsers(t),
		Now:      func() time.Time { return when },
	}

	if err := svc.Accept(context.Background(), "bob", "req-1"); err != nil {
		t.Fatalf("Accept: %v", err)
	}
}

func TestSwapListFilters(t *testing.T) {
	base := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	mk := func(id, from, to string, status domain.SwapStatus, age time.Duration) domain.SwapRequest {
		return domain.SwapRequest{
			ID:        id,
			FromUser:  domain.UserSummary{ID: from},
			ToUser:    domain.UserSummary{ID: to},
			Status:    status,
			CreatedAt: base.Add(-age),
		}
	}

	// Newest first, both directions, all four statuses represented.
	fixture := []domain.SwapRequest{
		mk("r1", "bob", "alice", domain.SwapStatusPending, 1*time.Hour),
		mk("r2", "alice", "bob", domain.SwapStatusPending, 2*time.Hour),
		mk("r3", "carol", "alice", domain.SwapStatusPending, 3*time.Hour),
		mk("r4", "alice", "carol", domain.SwapStatusAccepted, 4*time.Hour),
		mk("r5", "dave", "alice", domain.SwapStatusRejected, 5*time.Hour),
		mk("r6", "alice", "dave", domain.SwapStatusRejected, 6*time.Hour),
	}

	store := &stubSwapStore{
		t: t,
		listForUserFunc: func(_ context.Context, userID string) ([]domain.SwapRequest, error) {
			if userID != "alice" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return fixture, nil
		},
	}
	svc := &SwapService{Requests: store, Users: fixtureUsers(t)}

	cases := []struct {
		filter domain.SwapFilter
		want   []string
	}{
		{domain.SwapFilterAll, []string{"r1", "r2", "r3", "r4", "r5", "r6"}},
		{domain.SwapFilterPending, []string{"r1", "r3"}},
		{domain.SwapFilterSent, []string{"r2", "r4", "r6"}},
		{domain.SwapFilterAccepted, []string{"r4"}},
		{domain.SwapFilterRejected, []string{"r5", "r6"}},
	}

	for _, c := range cases {
		got, err := svc.List(context.Background(), "alice", c.filter)
		if err != nil {
			t.Fatalf("List(%q): %v", c.filter, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("List(%q): got %d requests, want %d", c.filter, len(got), len(c.want))
		}
		for i, r := range got {
			if r.ID != c.want[i] {
				t.Fatalf("List(%q)[%d] = %s, want %s", c.filter, i, r.ID, c.want[i])
			}
		}
	}

	if _, err := svc.List(context.Background(), "alice", "bogus"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown filter, got %v", err)
	}
}

func TestSwapOptionsMutualMatch(t *testing.T) {
	svc := &SwapService{Requests: &stubSwapStore{t: t}, Users: fixtureUsers(t)}

	opts, err := svc.Options(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !opts.CanSwap {
		t.Fatalf("expected alice/bob to be swappable")
	}
	if len(opts.OfferedOptions) != 1 || opts.OfferedOptions[0] != "React" {
		t.Fatalf("unexpected offered options: %v", opts.OfferedOptions)
	}
	if len(opts.RequestedOptions) != 1 || opts.RequestedOptions[0] != "Python" {
		t.Fatalf("unexpected requested options: %v", opts.RequestedOptions)
	}

	opts, err = svc.Options(context.Background(), "bob", "alice")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !opts.CanSwap {
		t.Fatalf("expected match to hold in both directions")
	}
}
