package report

import (
	"sort"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// rankings bundles every category's ranked lists. Only the lists relevant to
// the category are populated.
type rankings struct {
	topMembers      []TopMember
	topContributors []TopMember
	topAssisters    []TopMember
	violators       []Violator
}

// buildRankings produces the full ranked lists for a category. Truncation to
// a render surface's top-N happens in the consumers, never here, so every
// surface shares one ordering.
//
// Ranks are dense and positional: sorted order decides 1..N even across
// equal scores. Score ties order by member id asc, never by arrival order.
func buildRankings(category model.EventCategory, deltas []model.MemberEventDelta) rankings {
	var r rankings
	switch category {
	case model.CategorySiege:
		r.topContributors = rankMembers(deltas,
			func(d model.MemberEventDelta) bool { return d.ContributionDiff > 0 },
			func(d model.MemberEventDelta) int64 { return d.ContributionDiff })
		r.topAssisters = rankMembers(deltas,
			func(d model.MemberEventDelta) bool { return d.AssistDiff > 0 },
			func(d model.MemberEventDelta) int64 { return d.AssistDiff })
	case model.CategoryForbidden:
		r.violators = rankViolators(deltas)
	default: // battle
		r.topMembers = rankMembers(deltas,
			func(d model.MemberEventDelta) bool { return d.Participated },
			func(d model.MemberEventDelta) int64 { return d.MeritDiff })
	}
	return r
}

// rankMembers filters, orders by score desc (member id asc on ties), and
// assigns dense positional ranks.
func rankMembers(deltas []model.MemberEventDelta, keep func(model.MemberEventDelta) bool, score func(model.MemberEventDelta) int64) []TopMember {
	ranked := make([]model.MemberEventDelta, 0, len(deltas))
	for _, d := range deltas {
		if keep(d) {
			ranked = append(ranked, d)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := score(ranked[i]), score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].MemberID < ranked[j].MemberID
	})

	out := make([]TopMember, len(ranked))
	for i, d := range ranked {
		out[i] = TopMember{
			Rank:             i + 1,
			MemberID:         d.MemberID,
			MemberName:       d.MemberName,
			GroupName:        d.GroupName,
			Score:            score(d),
			MeritDiff:        d.MeritDiff,
			ContributionDiff: d.ContributionDiff,
			AssistDiff:       d.AssistDiff,
		}
	}
	return out
}

// rankViolators orders Forbidden violators by power_diff desc. Rank numbers
// denote severity order.
func rankViolators(deltas []model.MemberEventDelta) []Violator {
	ranked := make([]model.MemberEventDelta, 0)
	for _, d := range deltas {
		if IsViolator(d) {
			ranked = append(ranked, d)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PowerDiff != ranked[j].PowerDiff {
			return ranked[i].PowerDiff > ranked[j].PowerDiff
		}
		return ranked[i].MemberID < ranked[j].MemberID
	})

	out := make([]Violator, len(ranked))
	for i, d := range ranked {
		out[i] = Violator{
			Rank:       i + 1,
			MemberID:   d.MemberID,
			MemberName: d.MemberName,
			GroupName:  d.GroupName,
			PowerDiff:  d.PowerDiff,
		}
	}
	return out
}
