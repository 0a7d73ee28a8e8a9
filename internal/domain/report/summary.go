package report

import (
	"math"

	"github.com/alliancelab/warboard/internal/domain/model"
)

const percentScale = 100

// buildSummary computes the alliance-wide rollup from classified deltas.
func buildSummary(category model.EventCategory, deltas []model.MemberEventDelta) Summary {
	s := Summary{TotalMembers: len(deltas)}
	if category == model.CategoryForbidden {
		s.ComplianceRate = percentScale // guarded default for an empty alliance
	}
	if len(deltas) == 0 {
		return s
	}

	for _, d := range deltas {
		if d.Participated {
			s.ParticipatedCount++
			s.ParticipantNames = append(s.ParticipantNames, d.MemberName)
		}
		if d.IsAbsent {
			s.AbsentCount++
			s.AbsentNames = append(s.AbsentNames, d.MemberName)
		}
		if d.IsNewMember {
			s.NewMemberCount++
		}
		s.TotalMerit += d.MeritDiff
		s.TotalContribution += d.ContributionDiff
		s.TotalAssist += d.AssistDiff
	}

	// New members are not eligible, so they never enter the denominator.
	if eligible := s.TotalMembers - s.NewMemberCount; eligible > 0 {
		s.ParticipationRate = round1(float64(s.ParticipatedCount) / float64(eligible) * percentScale)
	}
	if s.ParticipatedCount > 0 {
		n := float64(s.ParticipatedCount)
		s.AvgMerit = round1(float64(s.TotalMerit) / n)
		s.AvgContribution = round1(float64(s.TotalContribution) / n)
		s.AvgAssist = round1(float64(s.TotalAssist) / n)
	}

	switch category {
	case model.CategorySiege:
		s.ContributionMVP = pickMVP(deltas, func(d model.MemberEventDelta) int64 { return d.ContributionDiff })
		s.AssistMVP = pickMVP(deltas, func(d model.MemberEventDelta) int64 { return d.AssistDiff })
		s.CombinedMVP = pickMVP(deltas, func(d model.MemberEventDelta) int64 { return d.ContributionDiff + d.AssistDiff })
	case model.CategoryForbidden:
		for _, d := range deltas {
			if IsViolator(d) {
				s.ViolatorCount++
			}
		}
		s.ComplianceRate = complianceRate(s.TotalMembers, s.ViolatorCount)
	default: // battle
		s.MVP = pickMVP(deltas, func(d model.MemberEventDelta) int64 { return d.MeritDiff })
	}
	return s
}

// pickMVP returns the member with the highest positive metric, or nil when
// nobody scored. Ties break by member id asc for determinism.
func pickMVP(deltas []model.MemberEventDelta, metric func(model.MemberEventDelta) int64) *MVP {
	var best *MVP
	for _, d := range deltas {
		score := metric(d)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score || (score == best.Score && d.MemberID < best.MemberID) {
			best = &MVP{MemberID: d.MemberID, MemberName: d.MemberName, Score: score}
		}
	}
	return best
}

// complianceRate is the complement of the violator share over the whole
// alliance. An empty alliance is fully compliant.
func complianceRate(total, violators int) float64 {
	if total == 0 {
		return percentScale
	}
	return round1(float64(total-violators) / float64(total) * percentScale)
}

// round1 rounds to one decimal place, matching the product-wide convention
// for rates and averages.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
