package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswapserver/internal/domain"
)

type SwapRequestsStore interface {
	Create(ctx context.Context, fromUserID, toUserID, offeredSkill, requestedSkill, message string) (string, time.Time, error)
	HasPending(ctx context.Context, fromUserID, toUserID string) (bool, error)
	GetByID(ctx context.Context, id string) (domain.SwapRequest, error)
	ListForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error)
	Resolve(ctx context.Context, requestID, targetUserID string, status domain.SwapStatus, when time.Time) (bool, error)
}

type SwapService struct {
	Requests SwapRequestsStore
	Users    UsersStore
	Now      func() time.Time
}

type CreateSwapParams struct {
	ToUserID       string
	OfferedSkill   string
	RequestedSkill string
	Message        string
}

// Create raises a Pending request after checking every precondition the
// request form cannot be trusted to enforce: the target exists and is
// discoverable, the swap is not with oneself, both skill names come from
// the respective offered lists, and no Pending request already sits between
// the pair.
func (s *SwapService) Create(ctx context.Context, requesterID string, p CreateSwapParams) (string, error) {
	p.OfferedSkill = domain.CanonicalSkill(p.OfferedSkill)
	p.RequestedSkill = domain.CanonicalSkill(p.RequestedSkill)
	p.Message = strings.TrimSpace(p.Message)

	fields := map[string]string{}
	if p.OfferedSkill == "" {
		fields["offered_skill"] = "required"
	}
	if p.RequestedSkill == "" {
		fields["requested_skill"] = "required"
	}
	if len(fields) > 0 {
		return "", domain.NewValidationError(fields)
	}

	if p.ToUserID == requesterID {
		return "", domain.ErrSelfSwap
	}

	requester, err := s.Users.GetUserByID(ctx, requesterID)
	if err != nil {
		return "", err
	}
	target, err := s.Users.GetUserByID(ctx, p.ToUserID)
	if err != nil {
		return "", err
	}
	if target.Visibility != domain.VisibilityPublic {
		// Private profiles are not discoverable; do not reveal them here either.
		return "", domain.ErrNotFound
	}

	if !domain.ContainsSkill(requester.SkillsOffered, p.OfferedSkill) {
		return "", domain.NewValidationError(map[string]string{"offered_skill": "not in your offered skills"})
	}
	if !domain.ContainsSkill(target.SkillsOffered, p.RequestedSkill) {
		return "", domain.NewValidationError(map[string]string{"requested_skill": "not offered by that user"})
	}

	// Friendly pre-check; the store's unique index is what actually holds
	// under concurrent creates.
	pending, err := s.Requests.HasPending(ctx, requesterID, p.ToUserID)
	if err != nil {
		return "", err
	}
	if pending {
		return "", domain.ErrDuplicatePending
	}

	id, _, err := s.Requests.Create(ctx, requesterID, p.ToUserID, p.OfferedSkill, p.RequestedSkill, p.Message)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns the viewer's requests, optionally narrowed to one of the four
// derived views. The store returns them newest first; filtering preserves
// that order.
func (s *SwapService) List(ctx context.Context, viewerID string, filter domain.SwapFilter) ([]domain.SwapRequest, error) {
	if !domain.ValidSwapFilter(filter) {
		return nil, domain.NewValidationError(map[string]string{"filter": "must be one of pending, sent, accepted, rejected"})
	}

	all, err := s.Requests.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if filter == domain.SwapFilterAll {
		return all, nil
	}

	out := make([]domain.SwapRequest, 0, len(all))
	for _, r := range all {
		if r.MatchesFilter(viewerID, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *SwapService) Accept(ctx context.Context, viewerID, requestID string) error {
	return s.resolve(ctx, viewerID, requestID, domain.SwapStatusAccepted)
}

func (s *SwapService) Reject(ctx context.Context, viewerID, requestID string) error {
	return s.resolve(ctx, viewerID, requestID, domain.SwapStatusRejected)
}

// resolve does the Pending -> terminal transition as one conditional update.
// Zero rows affected means the guard failed; a single re-read classifies why,
// so a lost race still reports the right error.
func (s *SwapService) resolve(ctx context.Context, viewerID, requestID string, status domain.SwapStatus) error {
	if s.Now == nil {
		s.Now = time.Now
	}

	ok, err := s.Requests.Resolve(ctx, requestID, viewerID, status, s.Now())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	r, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if r.ToUser.ID != viewerID {
		return domain.ErrUnauthorized
	}
	if r.Status.Resolved() {
		return domain.ErrRequestResolved
	}
	return domain.ErrNotFound
}

// SwapOptions are the skills a viewer may put on the request form for a given
// target: each side of the mutual-match intersection.
type SwapOptions struct {
	OfferedOptions   []string `json:"offered_options"`
	RequestedOptions []string `json:"requested_options"`
	CanSwap          bool     `json:"can_swap"`
}

func (s *SwapService) Options(ctx context.Context, viewerID, targetID string) (SwapOptions, error) {
	viewer, err := s.Users.GetUserByID(ctx, viewerID)
	if err != nil {
		return SwapOptions{}, err
	}
	target, err := s.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return SwapOptions{}, err
	}
	if target.ID != viewer.ID && target.Visibility != domain.VisibilityPublic {
		return SwapOptions{}, domain.ErrNotFound
	}

	offered := domain.SkillIntersection(viewer.SkillsOffered, target.SkillsWanted)
	requested := domain.SkillIntersection(target.SkillsOffered, viewer.SkillsWanted)
	return SwapOptions{
		OfferedOptions:   offered,
		RequestedOptions: requested,
		CanSwap:          len(offered) > 0 && len(requested) > 0,
	}, nil
}
