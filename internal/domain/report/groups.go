package report

import (
	"sort"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// buildGroupStats rolls classified deltas up to per-group statistics and
// applies the canonical category sort. Ungrouped members are skipped here;
// they still count toward the alliance summary.
//
// The returned slice order is final. Downstream consumers must not re-sort.
func buildGroupStats(category model.EventCategory, deltas []model.MemberEventDelta) []GroupStats {
	byGroup := make(map[string][]model.MemberEventDelta)
	names := make([]string, 0)
	for _, d := range deltas {
		if d.GroupName == "" {
			continue
		}
		if _, seen := byGroup[d.GroupName]; !seen {
			names = append(names, d.GroupName)
		}
		byGroup[d.GroupName] = append(byGroup[d.GroupName], d)
	}

	stats := make([]GroupStats, 0, len(names))
	for _, name := range names {
		stats = append(stats, groupStats(category, name, byGroup[name]))
	}

	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		ka, kb := groupSortKey(category, a), groupSortKey(category, b)
		if ka != kb {
			return ka > kb
		}
		return a.GroupName < b.GroupName
	})
	return stats
}

// groupSortKey is the category's primary group metric.
func groupSortKey(category model.EventCategory, g GroupStats) int64 {
	switch category {
	case model.CategorySiege:
		return g.TotalContribution + g.TotalAssist
	case model.CategoryForbidden:
		return int64(g.ViolatorCount)
	default: // battle
		return g.TotalMerit
	}
}

// groupStats computes one group's rollup.
func groupStats(category model.EventCategory, name string, members []model.MemberEventDelta) GroupStats {
	g := GroupStats{GroupName: name, MemberCount: len(members)}

	for _, d := range members {
		if d.IsNewMember {
			g.NewMemberCount++
		}
		if d.Participated {
			g.ParticipatedCount++
		}
		if d.IsAbsent {
			g.AbsentCount++
		}
	}
	if eligible := g.MemberCount - g.NewMemberCount; eligible > 0 {
		g.ParticipationRate = round1(float64(g.ParticipatedCount) / float64(eligible) * percentScale)
	}

	switch category {
	case model.CategoryBattle:
		first := true
		for _, d := range members {
			if !d.Participated {
				continue
			}
			g.TotalMerit += d.MeritDiff
			if first || d.MeritDiff < g.MeritMin {
				g.MeritMin = d.MeritDiff
			}
			if first || d.MeritDiff > g.MeritMax {
				g.MeritMax = d.MeritDiff
			}
			first = false
		}
		if g.ParticipatedCount > 0 {
			g.AvgMerit = round1(float64(g.TotalMerit) / float64(g.ParticipatedCount))
		}
	case model.CategorySiege:
		first := true
		for _, d := range members {
			if !d.Participated {
				continue
			}
			g.TotalContribution += d.ContributionDiff
			g.TotalAssist += d.AssistDiff
			combined := d.ContributionDiff + d.AssistDiff
			if first || combined < g.CombinedMin {
				g.CombinedMin = combined
			}
			if first || combined > g.CombinedMax {
				g.CombinedMax = combined
			}
			first = false
		}
		if g.ParticipatedCount > 0 {
			n := float64(g.ParticipatedCount)
			g.AvgContribution = round1(float64(g.TotalContribution) / n)
			g.AvgAssist = round1(float64(g.TotalAssist) / n)
		}
	case model.CategoryForbidden:
		for _, d := range members {
			if IsViolator(d) {
				g.ViolatorCount++
			}
		}
	}
	return g
}
