// Package report implements the event analytics aggregation engine: the
// pure computation that turns one event's member deltas into the single
// canonical EventReport every render surface consumes.
//
// Conventions:
//   - Assemble is a pure function of (category, deltas); equal inputs yield
//     deeply equal reports.
//   - Every ordered field is computed exactly once here. Consumers project
//     fields and truncate; they never re-sort or re-derive.
package report

import (
	"time"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// EventReport is the assembled output for one event.
//
// GroupStats, the ranking slices, and Members carry a canonical order (see
// the field comments). That order is part of the contract: render surfaces
// must consume it unmodified.
type EventReport struct {
	EventID    string              `json:"event_id"`
	EventName  string              `json:"event_name"`
	Category   model.EventCategory `json:"category"`
	EventStart time.Time           `json:"event_start"`
	EventEnd   time.Time           `json:"event_end"`

	Summary Summary `json:"summary"`

	// GroupStats is sorted by the category's canonical group order:
	// Battle desc total merit, Siege desc contribution+assist, Forbidden
	// desc violator count; ties by group name asc.
	GroupStats []GroupStats `json:"group_stats"`

	// TopMembers is the full Battle ranking (participants by merit desc).
	TopMembers []TopMember `json:"top_members,omitempty"`
	// TopContributors and TopAssisters are the two independent Siege
	// rankings; a member may appear in both.
	TopContributors []TopMember `json:"top_contributors,omitempty"`
	TopAssisters    []TopMember `json:"top_assisters,omitempty"`
	// Violators is the Forbidden severity list (power_diff desc). Rank
	// denotes severity order, not merit.
	Violators []Violator `json:"violators,omitempty"`

	// Distribution partitions the filtered metric series into contiguous
	// bins; empty when the series is empty.
	Distribution []Bin `json:"distribution"`
	// BoxPlot is nil when the filtered series is empty. Renderers must show
	// an explicit no-data state, never a zero-valued chart.
	BoxPlot *BoxPlotStats `json:"box_plot,omitempty"`

	// Members holds every classified delta, ordered by primary metric desc
	// then member id asc, for the sortable analytics table.
	Members []model.MemberEventDelta `json:"members"`
}

// Summary is the alliance-wide rollup.
type Summary struct {
	TotalMembers      int `json:"total_members"`
	ParticipatedCount int `json:"participated_count"`
	AbsentCount       int `json:"absent_count"`
	NewMemberCount    int `json:"new_member_count"`

	// ParticipationRate is a percentage (0-100, one decimal). New members
	// are excluded from the denominator.
	ParticipationRate float64 `json:"participation_rate"`

	TotalMerit        int64   `json:"total_merit"`
	TotalContribution int64   `json:"total_contribution"`
	TotalAssist       int64   `json:"total_assist"`
	AvgMerit          float64 `json:"avg_merit"`
	AvgContribution   float64 `json:"avg_contribution"`
	AvgAssist         float64 `json:"avg_assist"`

	ParticipantNames []string `json:"participant_names,omitempty"`
	AbsentNames      []string `json:"absent_names,omitempty"`

	// MVP is set for Battle; ContributionMVP/AssistMVP for Siege.
	// CombinedMVP is the legacy combined Siege MVP kept for older surfaces.
	MVP             *MVP `json:"mvp,omitempty"`
	ContributionMVP *MVP `json:"contribution_mvp,omitempty"`
	AssistMVP       *MVP `json:"assist_mvp,omitempty"`
	CombinedMVP     *MVP `json:"combined_mvp,omitempty"`

	ViolatorCount int `json:"violator_count"`
	// ComplianceRate is the Forbidden complement percentage; exactly 100.0
	// when there are no members or no violators.
	ComplianceRate float64 `json:"compliance_rate,omitempty"`
}

// MVP points at a top member by one metric.
type MVP struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Score      int64  `json:"score"`
}

// GroupStats is one group's rollup. Derived per report, never mutated.
type GroupStats struct {
	GroupName         string  `json:"group_name"`
	MemberCount       int     `json:"member_count"`
	NewMemberCount    int     `json:"new_member_count"`
	ParticipatedCount int     `json:"participated_count"`
	AbsentCount       int     `json:"absent_count"`
	ParticipationRate float64 `json:"participation_rate"`

	// Battle.
	TotalMerit int64   `json:"total_merit"`
	AvgMerit   float64 `json:"avg_merit"`
	MeritMin   int64   `json:"merit_min"`
	MeritMax   int64   `json:"merit_max"`

	// Siege. Contribution and assist are reported separately so renderers
	// can combine them as needed.
	TotalContribution int64   `json:"total_contribution"`
	AvgContribution   float64 `json:"avg_contribution"`
	TotalAssist       int64   `json:"total_assist"`
	AvgAssist         float64 `json:"avg_assist"`
	CombinedMin       int64   `json:"combined_min"`
	CombinedMax       int64   `json:"combined_max"`

	// Forbidden.
	ViolatorCount int `json:"violator_count"`
}

// TopMember is one row of a ranked list. Ranks are 1-based and dense,
// assigned positionally in sorted order.
type TopMember struct {
	Rank             int    `json:"rank"`
	MemberID         string `json:"member_id"`
	MemberName       string `json:"member_name"`
	GroupName        string `json:"group_name,omitempty"`
	Score            int64  `json:"score"`
	MeritDiff        int64  `json:"merit_diff,omitempty"`
	ContributionDiff int64  `json:"contribution_diff,omitempty"`
	AssistDiff       int64  `json:"assist_diff,omitempty"`
}

// Violator is one row of the Forbidden severity list.
type Violator struct {
	Rank       int    `json:"rank"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	GroupName  string `json:"group_name,omitempty"`
	PowerDiff  int64  `json:"power_diff"`
}

// Bin is one histogram bucket. Bins are contiguous, non-overlapping, and
// together cover [min(series), max(series)] inclusive.
type Bin struct {
	Label string `json:"label"`
	Lower int64  `json:"lower"`
	Upper int64  `json:"upper"`
	Count int    `json:"count"`
}

// BoxPlotStats is the five-number summary of a metric series, plus the id
// of the member whose value sits closest to the median.
type BoxPlotStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`

	// ClosestMemberID has the smallest absolute distance to Median; ties go
	// to the first occurrence in input order.
	ClosestMemberID string `json:"closest_member_id"`
}
