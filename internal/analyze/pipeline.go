package analyze

import (
	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
)

// Analysis is the outcome of one full analysis pass over a scanned
// registry: the filtered tables and the ranked, slot-bounded selection for
// each space.
type Analysis struct {
	Params Params

	FilteredTags  map[string]int
	FilteredFiles map[string]int

	TagSlots  int
	FileSlots int

	Tags  []RankedLabel
	Files []RankedLabel
}

// Run executes filtering, allocation, scoring, and ranking against a
// scanned registry. Water levels in params are taken as final: a zero
// level excludes that space. The registry must not be mutated concurrently.
func Run(reg *registry.Registry, params Params) *Analysis {
	if params.MinCount <= 0 {
		params.MinCount = registry.DefaultMinCount
	}
	if params.SlotBudget <= 0 {
		params.SlotBudget = DefaultSlotBudget
	}

	filteredTags := reg.FilteredTags(params.MinCount)
	filteredFiles := reg.FilteredFilePatterns(params.MinCount)

	tagSlots, fileSlots := AllocateSlots(params.SlotBudget, params.TagLevel, params.FileLevel)

	return &Analysis{
		Params:        params,
		FilteredTags:  filteredTags,
		FilteredFiles: filteredFiles,
		TagSlots:      tagSlots,
		FileSlots:     fileSlots,
		Tags:          RankSpace(filteredTags, params.TagLevel, tagSlots, false),
		Files:         RankSpace(filteredFiles, params.FileLevel, fileSlots, true),
	}
}
