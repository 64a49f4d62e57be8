package domain

import "time"

type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "Pending"
	SwapStatusAccepted SwapStatus = "Accepted"
	SwapStatusRejected SwapStatus = "Rejected"
)

// Resolved reports whether the status is terminal. Pending is the only
// non-terminal state; Accepted and Rejected never change again.
func (s SwapStatus) Resolved() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}

type SwapRequest struct {
	ID             string      `json:"id"`
	FromUser       UserSummary `json:"from_user"`
	ToUser         UserSummary `json:"to_user"`
	OfferedSkill   string      `json:"offered_skill"`
	RequestedSkill string      `json:"requested_skill"`
	Message        string      `json:"message,omitempty"`
	Status         SwapStatus  `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// SwapFilter names the derived views over a viewer's requests. They are pure
// filters over the same stored set, not separate data.
type SwapFilter string

const (
	SwapFilterAll      SwapFilter = ""
	SwapFilterPending  SwapFilter = "pending"
	SwapFilterSent     SwapFilter = "sent"
	SwapFilterAccepted SwapFilter = "accepted"
	SwapFilterRejected SwapFilter = "rejected"
)

func ValidSwapFilter(f SwapFilter) bool {
	switch f {
	case SwapFilterAll, SwapFilterPending, SwapFilterSent, SwapFilterAccepted, SwapFilterRejected:
		return true
	}
	return false
}

// MatchesFilter reports whether a request belongs to the given view for the
// viewer: pending means the viewer is the target of an unresolved request,
// sent means the viewer raised it, accepted/rejected cover both directions.
func (r SwapRequest) MatchesFilter(viewerID string, f SwapFilter) bool {
	switch f {
	case SwapFilterAll:
		return true
	case SwapFilterPending:
		return r.ToUser.ID == viewerID && r.Status == SwapStatusPending
	case SwapFilterSent:
		return r.FromUser.ID == viewerID
	case SwapFilterAccepted:
		return r.Status == SwapStatusAccepted
	case SwapFilterRejected:
		return r.Status == SwapStatusRejected
	}
	return false
}
