package report

import (
	"math"
	"sort"
)

// buildBoxPlot computes the five-number summary of a metric series and the
// id of the member closest to the median. memberIDs runs parallel to series
// in input order; the first occurrence wins distance ties.
//
// Returns nil for an empty series: absent, not zero-filled.
func buildBoxPlot(series []int64, memberIDs []string) *BoxPlotStats {
	if len(series) == 0 {
		return nil
	}

	sorted := make([]float64, len(series))
	for i, v := range series {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	stats := &BoxPlotStats{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}

	best := math.Inf(1)
	for i, v := range series {
		if d := math.Abs(float64(v) - stats.Median); d < best {
			best = d
			stats.ClosestMemberID = memberIDs[i]
		}
	}
	return stats
}

// quantile is the R-7 (inclusive-median) estimator: linear interpolation
// between the order statistics around rank p*(n-1).
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if frac == 0 || lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
