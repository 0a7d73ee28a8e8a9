package report

import (
	"strconv"
)

// defaultDistributionBins is the bin count used when the caller does not
// override it. Every renderer reuses the same bins verbatim.
const defaultDistributionBins = 6

// buildDistribution buckets a metric series into at most binCount
// equal-width bins covering [min(series), max(series)] inclusive, with no
// overlap and no gaps. An empty series yields an empty (non-nil) slice.
func buildDistribution(series []int64, binCount int) []Bin {
	if binCount < 1 {
		binCount = defaultDistributionBins
	}
	if len(series) == 0 {
		return []Bin{}
	}

	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	// Integer bucketing: width is the ceiling of span/binCount so the bins
	// tile the whole domain; the tail bin is clamped to max.
	span := hi - lo + 1
	if span < int64(binCount) {
		binCount = int(span)
	}
	width := span / int64(binCount)
	if span%int64(binCount) != 0 {
		width++
	}
	// A ceiling width can tile the span in fewer bins than requested.
	binCount = int((span + width - 1) / width)

	bins := make([]Bin, binCount)
	for i := range bins {
		lower := lo + int64(i)*width
		upper := lower + width - 1
		if upper > hi {
			upper = hi
		}
		bins[i] = Bin{Label: binLabel(lower, upper), Lower: lower, Upper: upper}
	}
	for _, v := range series {
		idx := int((v - lo) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	return bins
}

func binLabel(lower, upper int64) string {
	if lower == upper {
		return strconv.FormatInt(lower, 10)
	}
	return strconv.FormatInt(lower, 10) + "-" + strconv.FormatInt(upper, 10)
}
