package model

// MemberEventDelta is the change in one member's counters across an event
// window, plus the participation flags derived from it. Immutable once
// computed; one instance per member per event.
type MemberEventDelta struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	GroupName  string `json:"group_name,omitempty"` // empty means ungrouped

	MeritDiff        int64 `json:"merit_diff"`
	ContributionDiff int64 `json:"contribution_diff"`
	AssistDiff       int64 `json:"assist_diff"`
	DonationDiff     int64 `json:"donation_diff"`
	// PowerDiff is signed: power may legitimately drop during a window.
	PowerDiff int64 `json:"power_diff"`

	Participated bool `json:"participated"`
	IsAbsent     bool `json:"is_absent"`
	IsNewMember  bool `json:"is_new_member"`
}
