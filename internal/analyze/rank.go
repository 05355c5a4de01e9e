package analyze

import "sort"

// DefaultSlotBudget is the fixed ceiling on total color groups emitted.
const DefaultSlotBudget = 60

// Params carries the externally chosen analysis parameters. The
// interactive prompt loop (or flags) fills this in; the core has no
// coupling back into parameter selection.
type Params struct {
	TagLevel   int
	FileLevel  int
	TagScheme  string
	FileScheme string
	SlotBudget int
	MinCount   int
}

// RankedLabel is one label that survived thresholding, scored and ranked
// within its space.
type RankedLabel struct {
	Label string  `json:"label" yaml:"label"`
	Count int     `json:"count" yaml:"count"`
	Score float64 `json:"score" yaml:"score"`
}

// AllocateSlots partitions the total budget between the two spaces. A
// space is included iff its water level is > 0; a zero level excludes the
// space entirely. Neither space included is a valid terminal state.
func AllocateSlots(budget, tagLevel, fileLevel int) (tagSlots, fileSlots int) {
	if budget <= 0 {
		budget = DefaultSlotBudget
	}
	tagIncluded := tagLevel > 0
	fileIncluded := fileLevel > 0

	switch {
	case tagIncluded && fileIncluded:
		return budget / 2, budget - budget/2
	case tagIncluded:
		return budget, 0
	case fileIncluded:
		return 0, budget
	default:
		return 0, 0
	}
}

// RankSpace scores every label in counts meeting the water level, sorts
// descending by score with deterministic tie-breaks (descending raw count,
// then lexicographic label), and truncates to the slot count.
func RankSpace(counts map[string]int, level, slots int, isFilePattern bool) []RankedLabel {
	if slots <= 0 || level <= 0 {
		return nil
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	ranked := make([]RankedLabel, 0, len(counts))
	for label, count := range counts {
		if count < level {
			continue
		}
		ranked = append(ranked, RankedLabel{
			Label: label,
			Count: count,
			Score: Score(ScoreInput{
				Label:         label,
				Count:         count,
				TotalInSpace:  total,
				IsFilePattern: isFilePattern,
			}),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})

	if len(ranked) > slots {
		ranked = ranked[:slots]
	}
	return ranked
}
