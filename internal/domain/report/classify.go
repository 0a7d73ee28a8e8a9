package report

import "github.com/alliancelab/warboard/internal/domain/model"

// Classify derives the participation flags for one delta. This is the single
// dispatch point for category semantics; the delta source and the assembler
// both go through it so the flags can never drift apart.
//
// Battle and Siege: participated when the primary metric increased and the
// member existed in both snapshots; absent when eligible but flat. Forbidden
// tracks violations instead of participation, so both flags stay false.
func Classify(category model.EventCategory, d model.MemberEventDelta) (participated, absent bool) {
	if d.IsNewMember || category == model.CategoryForbidden {
		return false, false
	}
	participated = primaryMetric(category, d) > 0
	return participated, !participated
}

// IsViolator reports whether a Forbidden-event member broke the restriction.
// Any measured power increase counts; there is no grace band.
func IsViolator(d model.MemberEventDelta) bool {
	return d.PowerDiff > 0
}

// primaryMetric returns the category's ranking metric for a delta.
func primaryMetric(category model.EventCategory, d model.MemberEventDelta) int64 {
	switch category {
	case model.CategorySiege:
		return d.ContributionDiff + d.AssistDiff
	case model.CategoryForbidden:
		return d.PowerDiff
	default: // battle
		return d.MeritDiff
	}
}

// classifyAll returns a copy of deltas with flags recomputed for category.
// The input slice is never mutated.
func classifyAll(category model.EventCategory, deltas []model.MemberEventDelta) []model.MemberEventDelta {
	out := make([]model.MemberEventDelta, len(deltas))
	copy(out, deltas)
	for i := range out {
		out[i].Participated, out[i].IsAbsent = Classify(category, out[i])
	}
	return out
}
