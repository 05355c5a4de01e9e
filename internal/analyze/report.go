package analyze

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
)

// topN is how many ranked labels per space the report highlights.
const topN = 20

// Statistics aggregates corpus-wide label counts.
type Statistics struct {
	TotalUniqueTags         int `json:"totalUniqueTags" yaml:"totalUniqueTags"`
	FilteredUniqueTags      int `json:"filteredUniqueTags" yaml:"filteredUniqueTags"`
	TotalTagOccurrences     int `json:"totalTagOccurrences" yaml:"totalTagOccurrences"`
	ConversationTags        int `json:"conversationTags" yaml:"conversationTags"`
	KeywordTags             int `json:"keywordTags" yaml:"keywordTags"`
	ExcludedTags            int `json:"excludedTags" yaml:"excludedTags"`
	TotalUniquePatterns     int `json:"totalUniquePatterns" yaml:"totalUniquePatterns"`
	FilteredUniquePatterns  int `json:"filteredUniquePatterns" yaml:"filteredUniquePatterns"`
	TotalPatternOccurrences int `json:"totalPatternOccurrences" yaml:"totalPatternOccurrences"`
}

// Report is the secondary analysis artifact: a pure function of the scan
// and the analysis outcome, carrying no additional state.
type Report struct {
	Statistics Statistics `json:"statistics" yaml:"statistics"`

	TagWaterLevel  int    `json:"tagWaterLevel" yaml:"tagWaterLevel"`
	FileWaterLevel int    `json:"fileWaterLevel" yaml:"fileWaterLevel"`
	TagScheme      string `json:"tagScheme" yaml:"tagScheme"`
	FileScheme     string `json:"fileScheme" yaml:"fileScheme"`

	TagsInGraph     int `json:"tagsInGraph" yaml:"tagsInGraph"`
	PatternsInGraph int `json:"patternsInGraph" yaml:"patternsInGraph"`

	TopTags     []RankedLabel `json:"topTags" yaml:"topTags"`
	TopPatterns []RankedLabel `json:"topPatterns" yaml:"topPatterns"`

	AllFilteredTags     map[string]int `json:"allFilteredTags" yaml:"allFilteredTags"`
	AllFilteredPatterns map[string]int `json:"allFilteredPatterns" yaml:"allFilteredPatterns"`
}

// BuildReport assembles the report from a scanned registry and its analysis.
func BuildReport(reg *registry.Registry, a *Analysis) *Report {
	return &Report{
		Statistics: Statistics{
			TotalUniqueTags:         reg.UniqueTags(),
			FilteredUniqueTags:      len(a.FilteredTags),
			TotalTagOccurrences:     reg.TagOccurrences(),
			ConversationTags:        reg.ConversationTagCount(),
			KeywordTags:             reg.KeywordTagCount(),
			ExcludedTags:            reg.UniqueTags() - len(a.FilteredTags),
			TotalUniquePatterns:     reg.UniqueFilePatterns(),
			FilteredUniquePatterns:  len(a.FilteredFiles),
			TotalPatternOccurrences: reg.FilePatternOccurrences(),
		},
		TagWaterLevel:       a.Params.TagLevel,
		FileWaterLevel:      a.Params.FileLevel,
		TagScheme:           a.Params.TagScheme,
		FileScheme:          a.Params.FileScheme,
		TagsInGraph:         len(a.Tags),
		PatternsInGraph:     len(a.Files),
		TopTags:             truncate(a.Tags, topN),
		TopPatterns:         truncate(a.Files, topN),
		AllFilteredTags:     a.FilteredTags,
		AllFilteredPatterns: a.FilteredFiles,
	}
}

// Encode serializes the report as "json" or "yaml".
func (r *Report) Encode(format string) ([]byte, error) {
	switch format {
	case "", "json":
		return json.MarshalIndent(r, "", "  ")
	case "yaml":
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func truncate(labels []RankedLabel, n int) []RankedLabel {
	if len(labels) <= n {
		return labels
	}
	return labels[:n]
}
