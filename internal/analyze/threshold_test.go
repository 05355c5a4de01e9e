package analyze

import "testing"

func countsOf(values ...int) map[string]int {
	counts := make(map[string]int, len(values))
	for i, v := range values {
		counts[string(rune('a'+i%26))+string(rune('a'+i/26))] = v
	}
	return counts
}

func TestEstimateTagLevelEmptySpace(t *testing.T) {
	if got := EstimateTagLevel(nil); got != FallbackTagLevel {
		t.Errorf("empty space level = %d, want %d", got, FallbackTagLevel)
	}
}

func TestEstimateTagLevelSmallSpaceUsesMedian(t *testing.T) {
	// 5 distinct labels: median of sorted counts, floored at 2
	counts := countsOf(1, 2, 7, 9, 30)
	if got := EstimateTagLevel(counts); got != 7 {
		t.Errorf("small space level = %d, want median 7", got)
	}

	// Median below 2 floors to 2
	counts = countsOf(1, 1, 1, 1, 1)
	if got := EstimateTagLevel(counts); got != 2 {
		t.Errorf("level = %d, want floor 2", got)
	}
}

func TestEstimateTagLevelModerateMax(t *testing.T) {
	// 12 labels, max 20 <= 30: level = max(2, 20*3/10) = 6
	counts := countsOf(2, 2, 3, 3, 4, 4, 5, 5, 6, 8, 10, 20)
	if got := EstimateTagLevel(counts); got != 6 {
		t.Errorf("level = %d, want 6", got)
	}
}

func TestEstimateTagLevelLargeMaxCollapsesToConstant(t *testing.T) {
	counts := countsOf(2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 500, 900)
	if got := EstimateTagLevel(counts); got != 30 {
		t.Errorf("level = %d, want constant 30", got)
	}
}

func TestEstimateFileLevelPercentile(t *testing.T) {
	if got := EstimateFileLevel(nil); got != FallbackFileLevel {
		t.Errorf("empty space level = %d, want %d", got, FallbackFileLevel)
	}

	// 20 ascending counts 1..20: idx = 20-1-2 = 17 -> value 18
	values := make([]int, 20)
	for i := range values {
		values[i] = i + 1
	}
	if got := EstimateFileLevel(countsOf(values...)); got != 18 {
		t.Errorf("percentile level = %d, want 18", got)
	}
}

func TestEstimateLevelsAreMonotoneWithScale(t *testing.T) {
	small := countsOf(2, 2, 3)
	big := countsOf(20, 22, 23)
	if EstimateTagLevel(small) > EstimateTagLevel(big) {
		t.Error("level should not shrink when every count grows")
	}
}

func TestEligibleCount(t *testing.T) {
	counts := countsOf(1, 2, 3, 10)
	if got := EligibleCount(counts, 3); got != 2 {
		t.Errorf("EligibleCount = %d, want 2", got)
	}
	if got := EligibleCount(counts, 100); got != 0 {
		t.Errorf("EligibleCount = %d, want 0", got)
	}
}

func TestDistribute(t *testing.T) {
	dist := Distribute(countsOf(4, 1, 9))
	if dist.Min != 1 || dist.Median != 4 || dist.Max != 9 {
		t.Errorf("Distribute = %+v, want 1/4/9", dist)
	}

	empty := Distribute(nil)
	if empty != (Distribution{}) {
		t.Errorf("empty distribution = %+v, want zeroes", empty)
	}
}
