// Package delta turns an event's before/after snapshot pair into per-member
// metric deltas, the input records of the report engine.
package delta

import (
	"sort"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

// Compute pairs the two snapshots by member id and emits one delta per
// member, classified for the event category. Output is sorted by member id
// so downstream computation is reproducible.
//
// Cumulative counters only ever grow in the source data; a negative diff
// means a CSV correction and is clamped to zero. Power is a level, not a
// counter, so its diff keeps its sign.
func Compute(category model.EventCategory, before, after model.Snapshot) []model.MemberEventDelta {
	beforeByID := make(map[string]model.MemberRecord, len(before.Members))
	for _, m := range before.Members {
		beforeByID[m.MemberID] = m
	}
	afterByID := make(map[string]model.MemberRecord, len(after.Members))
	for _, m := range after.Members {
		afterByID[m.MemberID] = m
	}

	deltas := make([]model.MemberEventDelta, 0, len(after.Members))

	for _, cur := range after.Members {
		prev, existed := beforeByID[cur.MemberID]
		d := model.MemberEventDelta{
			MemberID:   cur.MemberID,
			MemberName: cur.Name,
			GroupName:  cur.Group,
		}
		if existed {
			d.MeritDiff = clamp(cur.Merit - prev.Merit)
			d.ContributionDiff = clamp(cur.Contribution - prev.Contribution)
			d.AssistDiff = clamp(cur.Assist - prev.Assist)
			d.DonationDiff = clamp(cur.Donation - prev.Donation)
			d.PowerDiff = cur.Power - prev.Power
		} else {
			// Only in the after snapshot: joined mid-event.
			d.IsNewMember = true
		}
		d.Participated, d.IsAbsent = report.Classify(category, d)
		deltas = append(deltas, d)
	}

	// Only in the before snapshot: left during the event, counted absent
	// wherever participation applies.
	for _, prev := range before.Members {
		if _, still := afterByID[prev.MemberID]; still {
			continue
		}
		d := model.MemberEventDelta{
			MemberID:   prev.MemberID,
			MemberName: prev.Name,
			GroupName:  prev.Group,
		}
		d.Participated, d.IsAbsent = report.Classify(category, d)
		deltas = append(deltas, d)
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i].MemberID < deltas[j].MemberID })
	return deltas
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
