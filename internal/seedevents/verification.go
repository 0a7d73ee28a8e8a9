package seedevents

import (
	"fmt"

	"github.com/alliancelab/warboard/internal/domain/model"
	"github.com/alliancelab/warboard/internal/domain/report"
)

// verifyReport checks the structural invariants every report must hold,
// regardless of the random roster that produced it.
func verifyReport(category model.EventCategory, rep *report.EventReport) error {
	if rep.Category != category {
		return fmt.Errorf("category mismatch: got %q want %q", rep.Category, category)
	}

	s := rep.Summary
	if s.TotalMembers != len(rep.Members) {
		return fmt.Errorf("summary total %d != %d members", s.TotalMembers, len(rep.Members))
	}
	if s.ParticipatedCount+s.AbsentCount+s.NewMemberCount > s.TotalMembers {
		return fmt.Errorf("summary counts exceed total: %d+%d+%d > %d",
			s.ParticipatedCount, s.AbsentCount, s.NewMemberCount, s.TotalMembers)
	}
	if s.ParticipationRate < 0 || s.ParticipationRate > 100 {
		return fmt.Errorf("participation rate %v out of range", s.ParticipationRate)
	}

	if err := verifyRanks(rep); err != nil {
		return err
	}
	return verifyDistribution(rep)
}

// verifyRanks checks that every ranked list is dense and 1-based.
func verifyRanks(rep *report.EventReport) error {
	for name, list := range map[string][]report.TopMember{
		"top_members":      rep.TopMembers,
		"top_contributors": rep.TopContributors,
		"top_assisters":    rep.TopAssisters,
	} {
		for i, entry := range list {
			if entry.Rank != i+1 {
				return fmt.Errorf("%s[%d] has rank %d", name, i, entry.Rank)
			}
		}
	}
	for i, v := range rep.Violators {
		if v.Rank != i+1 {
			return fmt.Errorf("violators[%d] has rank %d", i, v.Rank)
		}
		if v.PowerDiff <= 0 {
			return fmt.Errorf("violators[%d] has non-positive power diff %d", i, v.PowerDiff)
		}
	}
	return nil
}

// verifyDistribution checks bin contiguity and the box plot ordering.
func verifyDistribution(rep *report.EventReport) error {
	total := 0
	for i, bin := range rep.Distribution {
		if bin.Upper < bin.Lower {
			return fmt.Errorf("bin %d has upper %d < lower %d", i, bin.Upper, bin.Lower)
		}
		if i > 0 && bin.Lower != rep.Distribution[i-1].Upper+1 {
			return fmt.Errorf("bin %d is not contiguous with bin %d", i, i-1)
		}
		total += bin.Count
	}

	bp := rep.BoxPlot
	if bp == nil {
		if len(rep.Distribution) != 0 {
			return fmt.Errorf("distribution has %d bins but box plot is nil", len(rep.Distribution))
		}
		return nil
	}
	if total == 0 {
		return fmt.Errorf("box plot present but bins are empty")
	}
	if bp.Min > bp.Q1 || bp.Q1 > bp.Median || bp.Median > bp.Q3 || bp.Q3 > bp.Max {
		return fmt.Errorf("box plot is not ordered: %+v", bp)
	}
	if bp.ClosestMemberID == "" {
		return fmt.Errorf("box plot has no closest member id")
	}
	return nil
}
