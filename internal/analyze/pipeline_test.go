package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
)

// buildRegistry records n distinct tags and m distinct file patterns, each
// with enough occurrences to clear thresholds.
func buildRegistry(tags, patterns, perLabel int) *registry.Registry {
	reg := registry.New(nil)
	for i := 0; i < tags; i++ {
		label := fmt.Sprintf("topic-%03d", i)
		for j := 0; j < perLabel; j++ {
			reg.RecordTag(label, registry.OriginKeyword)
		}
	}
	for i := 0; i < patterns; i++ {
		pattern := fmt.Sprintf("Pattern%03d", i)
		for j := 0; j < perLabel; j++ {
			reg.RecordFilePattern(pattern)
		}
	}
	return reg
}

func TestRunSparseSpaceLeavesSlotsUnused(t *testing.T) {
	// 40 eligible tags and 10 eligible patterns under a 60 budget: each
	// space gets 30 slots, tags fill theirs, files emit only 10. Unused
	// file slots do not spill back to tags.
	reg := buildRegistry(40, 10, 5)

	a := Run(reg, Params{TagLevel: 2, FileLevel: 2, SlotBudget: 60, MinCount: 2})

	if a.TagSlots != 30 || a.FileSlots != 30 {
		t.Fatalf("slots = %d/%d, want 30/30", a.TagSlots, a.FileSlots)
	}
	if len(a.Tags) != 30 {
		t.Errorf("len(Tags) = %d, want 30", len(a.Tags))
	}
	if len(a.Files) != 10 {
		t.Errorf("len(Files) = %d, want 10", len(a.Files))
	}
	if len(a.Tags)+len(a.Files) > 60 {
		t.Error("total groups exceed budget")
	}
}

func TestRunZeroLevelExcludesSpace(t *testing.T) {
	reg := buildRegistry(20, 20, 5)

	a := Run(reg, Params{TagLevel: 2, FileLevel: 0, SlotBudget: 60, MinCount: 2})
	if len(a.Files) != 0 {
		t.Errorf("file space with level 0 should be empty, got %d", len(a.Files))
	}
	if len(a.Tags) != 20 {
		t.Errorf("tag space should use the whole budget, got %d", len(a.Tags))
	}
}

func TestRunDefaultsApplied(t *testing.T) {
	reg := buildRegistry(5, 5, 3)

	a := Run(reg, Params{TagLevel: 2, FileLevel: 2})
	if a.Params.MinCount != registry.DefaultMinCount {
		t.Errorf("MinCount = %d, want default %d", a.Params.MinCount, registry.DefaultMinCount)
	}
	if a.Params.SlotBudget != DefaultSlotBudget {
		t.Errorf("SlotBudget = %d, want default %d", a.Params.SlotBudget, DefaultSlotBudget)
	}
}

func TestBuildReportStatistics(t *testing.T) {
	reg := registry.New(map[string]struct{}{"noise": {}})
	for i := 0; i < 4; i++ {
		reg.RecordTag("python", registry.OriginKeyword)
		reg.RecordTag("noise", registry.OriginKeyword)
	}
	reg.RecordTag("conv-setup-ab12cd34", registry.OriginConversation)
	reg.RecordTag("once", registry.OriginKeyword)
	reg.RecordFilePattern("Notes")
	reg.RecordFilePattern("Notes")

	a := Run(reg, Params{TagLevel: 2, FileLevel: 2, TagScheme: "rainbow", FileScheme: "heatmap"})
	report := BuildReport(reg, a)

	if report.Statistics.TotalUniqueTags != 4 {
		t.Errorf("TotalUniqueTags = %d, want 4", report.Statistics.TotalUniqueTags)
	}
	// noise (excluded), conv tag (count 1), once (count 1) all filtered
	if report.Statistics.FilteredUniqueTags != 1 {
		t.Errorf("FilteredUniqueTags = %d, want 1", report.Statistics.FilteredUniqueTags)
	}
	if report.Statistics.ExcludedTags != 3 {
		t.Errorf("ExcludedTags = %d, want 3", report.Statistics.ExcludedTags)
	}
	if report.Statistics.ConversationTags != 1 || report.Statistics.KeywordTags != 3 {
		t.Errorf("origin counts = %d/%d, want 1/3",
			report.Statistics.ConversationTags, report.Statistics.KeywordTags)
	}
	if report.TagScheme != "rainbow" || report.FileScheme != "heatmap" {
		t.Errorf("schemes = %s/%s", report.TagScheme, report.FileScheme)
	}
	if report.TagsInGraph != len(a.Tags) || report.PatternsInGraph != len(a.Files) {
		t.Error("graph counts should mirror the analysis selection")
	}
}

func TestReportEncodeFormats(t *testing.T) {
	reg := buildRegistry(3, 3, 4)
	a := Run(reg, Params{TagLevel: 2, FileLevel: 2})
	report := BuildReport(reg, a)

	jsonData, err := report.Encode("json")
	if err != nil {
		t.Fatalf("json encode: %v", err)
	}
	var decodedJSON Report
	if err := json.Unmarshal(jsonData, &decodedJSON); err != nil {
		t.Fatalf("json round-trip: %v", err)
	}

	yamlData, err := report.Encode("yaml")
	if err != nil {
		t.Fatalf("yaml encode: %v", err)
	}
	var decodedYAML Report
	if err := yaml.Unmarshal(yamlData, &decodedYAML); err != nil {
		t.Fatalf("yaml round-trip: %v", err)
	}
	if decodedYAML.TagsInGraph != report.TagsInGraph {
		t.Error("yaml round-trip lost fields")
	}

	if _, err := report.Encode("xml"); err == nil {
		t.Error("unsupported format should error")
	}
	if !strings.Contains(string(jsonData), "statistics") {
		t.Error("json output missing statistics field")
	}
}
