package domain

import "testing"

func TestMatchesFilter(t *testing.T) {
	const me = "user-1"
	const other = "user-2"

	incoming := func(status SwapStatus) SwapRequest {
		return SwapRequest{FromUser: UserSummary{ID: other}, ToUser: UserSummary{ID: me}, Status: status}
	}
	outgoing := func(status SwapStatus) SwapRequest {
		return SwapRequest{FromUser: UserSummary{ID: me}, ToUser: UserSummary{ID: other}, Status: status}
	}

	cases := []struct {
		name   string
		req    SwapRequest
		filter SwapFilter
		want   bool
	}{
		{"pending incoming", incoming(SwapStatusPending), SwapFilterPending, true},
		{"pending outgoing excluded", outgoing(SwapStatusPending), SwapFilterPending, false},
		{"pending resolved excluded", incoming(SwapStatusAccepted), SwapFilterPending, false},
		{"sent outgoing", outgoing(SwapStatusRejected), SwapFilterSent, true},
		{"sent incoming excluded", incoming(SwapStatusPending), SwapFilterSent, false},
		{"accepted either direction", incoming(SwapStatusAccepted), SwapFilterAccepted, true},
		{"accepted outgoing", outgoing(SwapStatusAccepted), SwapFilterAccepted, true},
		{"rejected", outgoing(SwapStatusRejected), SwapFilterRejected, true},
		{"rejected pending excluded", incoming(SwapStatusPending), SwapFilterRejected, false},
		{"all", incoming(SwapStatusPending), SwapFilterAll, true},
	}

	for _, c := range cases {
		if got := c.req.MatchesFilter(me, c.filter); got != c.want {
			t.Errorf("%s: MatchesFilter = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSwapStatusResolved(t *testing.T) {
	if SwapStatusPending.Resolved() {
		t.Fatalf("pending must not be terminal")
	}
	if !SwapStatusAccepted.Resolved() || !SwapStatusRejected.Resolved() {
		t.Fatalf("accepted and rejected must be terminal")
	}
}
