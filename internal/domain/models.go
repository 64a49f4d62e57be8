package domain

import "time"

type Availability string

const (
	AvailabilityMornings Availability = "Mornings"
	AvailabilityEvenings Availability = "Evenings"
	AvailabilityWeekends Availability = "Weekends"
)

func ValidAvailability(a Availability) bool {
	switch a {
	case AvailabilityMornings, AvailabilityEvenings, AvailabilityWeekends:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

func ValidVisibility(v Visibility) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type User struct {
	ID            string
	Name          string
	Email         string
	Location      string
	ProfilePic    string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  Availability
	Visibility    Visibility
	Rating        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type UserWithPassword struct {
	User
	PasswordHash string
}

// UserSummary is the public display slice of a user joined onto other records.
type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

// ProfileUpdate carries the fields a profile edit may change. Nil means
// "leave unchanged"; skill slices are canonicalized before they reach the
// store.
type ProfileUpdate struct {
	Name          *string
	Location      *string
	ProfilePic    *string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  *Availability
	Visibility    *Visibility
}

type FeedbackEntry struct {
	ID        string      `json:"id"`
	Author    UserSummary `json:"author"`
	Message   string      `json:"message"`
	Rating    int         `json:"rating"`
	CreatedAt time.Time   `json:"created_at"`
}
