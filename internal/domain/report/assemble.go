package report

import (
	"fmt"
	"sort"

	"github.com/alliancelab/warboard/internal/domain/model"
)

// Assemble turns one event's member deltas into the canonical EventReport.
//
// It is a pure function of (category, deltas): no hidden state, no I/O, and
// equal inputs always produce deeply equal reports, which is what lets three
// independent render surfaces show identical numbers. The input slice is
// never mutated.
//
// An invalid category is a caller bug and fails fast with
// model.ErrUnknownCategory.
func Assemble(category model.EventCategory, deltas []model.MemberEventDelta, opts ...Option) (*EventReport, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("assemble report: %w", model.ErrUnknownCategory)
	}

	cfg := assembleConfig{binCount: defaultDistributionBins}
	for _, opt := range opts {
		opt(&cfg)
	}

	// One classification pass so flags can never disagree with the rules,
	// whatever the delta source set.
	members := classifyAll(category, deltas)

	series, ids := metricSeries(category, members)
	r := &EventReport{
		EventID:      cfg.eventID,
		EventName:    cfg.eventName,
		Category:     category,
		EventStart:   cfg.eventStart,
		EventEnd:     cfg.eventEnd,
		Summary:      buildSummary(category, members),
		GroupStats:   buildGroupStats(category, members),
		Distribution: buildDistribution(series, cfg.binCount),
		BoxPlot:      buildBoxPlot(series, ids),
	}

	ranked := buildRankings(category, members)
	r.TopMembers = ranked.topMembers
	r.TopContributors = ranked.topContributors
	r.TopAssisters = ranked.topAssisters
	r.Violators = ranked.violators

	// Canonical member-table order: primary metric desc, member id asc.
	sort.Slice(members, func(i, j int) bool {
		mi, mj := primaryMetric(category, members[i]), primaryMetric(category, members[j])
		if mi != mj {
			return mi > mj
		}
		return members[i].MemberID < members[j].MemberID
	})
	r.Members = members

	return r, nil
}

// metricSeries extracts the filtered series feeding the distribution and
// box-plot: participants' primary metric for Battle/Siege, violators'
// power_diff for Forbidden. ids runs parallel to the values in input order.
func metricSeries(category model.EventCategory, deltas []model.MemberEventDelta) (series []int64, ids []string) {
	series = make([]int64, 0, len(deltas))
	ids = make([]string, 0, len(deltas))
	for _, d := range deltas {
		if category == model.CategoryForbidden {
			if !IsViolator(d) {
				continue
			}
		} else if !d.Participated {
			continue
		}
		series = append(series, primaryMetric(category, d))
		ids = append(ids, d.MemberID)
	}
	return series, ids
}
