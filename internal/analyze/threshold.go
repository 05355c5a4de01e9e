// Package analyze turns raw label counts into a ranked, slot-bounded
// selection: threshold estimation ("water levels"), relevance scoring,
// and deterministic slot allocation across the two label spaces.
package analyze

import "sort"

const (
	// FallbackTagLevel is the water level used when the tag space is empty.
	FallbackTagLevel = 30
	// FallbackFileLevel is the water level used when the file-pattern space is empty.
	FallbackFileLevel = 2
	// maxVisibleLevel keeps total visible labels under a few hundred for
	// readability; counts above this collapse the estimate to a constant.
	maxVisibleLevel = 30
	// smallSpaceSize is the distinct-label count under which the median
	// rule applies instead of the distribution rules.
	smallSpaceSize = 10
)

// EstimateTagLevel derives a suggested water level for the tag space from
// its count distribution.
func EstimateTagLevel(counts map[string]int) int {
	if len(counts) == 0 {
		return FallbackTagLevel
	}

	sorted := sortedCounts(counts)
	if len(sorted) < smallSpaceSize {
		return max2(sorted[len(sorted)/2])
	}

	maxCount := sorted[len(sorted)-1]
	if maxCount <= maxVisibleLevel {
		return max2(maxCount * 3 / 10)
	}
	return maxVisibleLevel
}

// EstimateFileLevel derives a suggested water level for the file-pattern
// space. Larger spaces use a 90th-percentile rule: the count at index
// floor(0.1*n) from the top of the ascending-sorted distribution.
func EstimateFileLevel(counts map[string]int) int {
	if len(counts) == 0 {
		return FallbackFileLevel
	}

	sorted := sortedCounts(counts)
	if len(sorted) < smallSpaceSize {
		return max2(sorted[len(sorted)/2])
	}

	idx := len(sorted) - 1 - len(sorted)/10
	return sorted[idx]
}

// EligibleCount returns how many labels meet the water level.
func EligibleCount(counts map[string]int, level int) int {
	n := 0
	for _, c := range counts {
		if c >= level {
			n++
		}
	}
	return n
}

// Distribution summarizes a count distribution for display.
type Distribution struct {
	Min    int `json:"min" yaml:"min"`
	Median int `json:"median" yaml:"median"`
	Max    int `json:"max" yaml:"max"`
}

// Distribute computes min/median/max of a count table. Zeroes when empty.
func Distribute(counts map[string]int) Distribution {
	if len(counts) == 0 {
		return Distribution{}
	}
	sorted := sortedCounts(counts)
	return Distribution{
		Min:    sorted[0],
		Median: sorted[len(sorted)/2],
		Max:    sorted[len(sorted)-1],
	}
}

func sortedCounts(counts map[string]int) []int {
	sorted := make([]int, 0, len(counts))
	for _, c := range counts {
		sorted = append(sorted, c)
	}
	sort.Ints(sorted)
	return sorted
}

func max2(n int) int {
	if n < 2 {
		return 2
	}
	return n
}
