package service

import (
	"context"
	"strings"

	"skillswapserver/internal/domain"
)

type ProfileStore interface {
	UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) (domain.User, error)
}

type ProfileService struct {
	Store ProfileStore
}

// Update validates and canonicalizes a partial profile edit, then applies it.
// Skill lists are normalized here once; everything downstream compares them
// exactly.
func (s *ProfileService) Update(ctx context.Context, userID string, p domain.ProfileUpdate) (domain.User, error) {
	fields := map[string]string{}

	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			fields["name"] = "must not be empty"
		}
		p.Name = &trimmed
	}
	if p.Availability != nil && !domain.ValidAvailability(*p.Availability) {
		fields["availability"] = "must be one of Mornings, Evenings, Weekends"
	}
	if p.Visibility != nil && !domain.ValidVisibility(*p.Visibility) {
		fields["visibility"] = "must be Public or Private"
	}
	if len(fields) > 0 {
		return domain.User{}, domain.NewValidationError(fields)
	}

	if p.SkillsOffered != nil {
		p.SkillsOffered = domain.CanonicalSkills(p.SkillsOffered)
	}
	if p.SkillsWanted != nil {
		p.SkillsWanted = domain.CanonicalSkills(p.SkillsWanted)
	}

	return s.Store.UpdateProfile(ctx, userID, p)
}
