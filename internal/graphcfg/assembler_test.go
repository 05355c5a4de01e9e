package graphcfg

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/aaronsb/claude-knowledge-converter/internal/analyze"
	"github.com/aaronsb/claude-knowledge-converter/internal/colorscheme"
	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
)

func sampleAnalysis() *analyze.Analysis {
	return &analyze.Analysis{
		Tags: []analyze.RankedLabel{
			{Label: "python", Count: 40, Score: 2.0},
			{Label: "golang", Count: 25, Score: 1.5},
		},
		Files: []analyze.RankedLabel{
			{Label: "Notes", Count: 12, Score: 1.0},
		},
	}
}

func TestBuildColorGroupsQueriesAndOrder(t *testing.T) {
	groups := BuildColorGroups(sampleAnalysis(), colorscheme.Rainbow, colorscheme.Heatmap)

	if len(groups) != 3 {
		t.Fatalf("len = %d, want 3", len(groups))
	}
	if groups[0].Query != "tag: #python" {
		t.Errorf("groups[0].Query = %q", groups[0].Query)
	}
	if groups[1].Query != "tag: #golang" {
		t.Errorf("groups[1].Query = %q", groups[1].Query)
	}
	if groups[2].Query != "file: Notes" {
		t.Errorf("groups[2].Query = %q", groups[2].Query)
	}
	for i, g := range groups {
		if g.Color.A != 1 {
			t.Errorf("groups[%d] alpha = %d, want 1", i, g.Color.A)
		}
		if g.Color.RGB < 0 || g.Color.RGB > 0xFFFFFF {
			t.Errorf("groups[%d] rgb = %d out of range", i, g.Color.RGB)
		}
	}
}

func TestBuildColorGroupsNormalizesPerSpace(t *testing.T) {
	a := sampleAnalysis()
	groups := BuildColorGroups(a, colorscheme.Viridis, colorscheme.Viridis)

	// The single file-pattern group sits at t=0, the same color as the
	// top-ranked tag: each space spans its own colormap.
	if groups[0].Color.RGB != groups[2].Color.RGB {
		t.Errorf("top of each space should share the t=0 color: %#x vs %#x",
			groups[0].Color.RGB, groups[2].Color.RGB)
	}
}

func TestMergePreservesTemplateBytes(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "graph.json")
	// Field order, spacing, and unrelated settings must survive the merge.
	body := `{"zeta":0.75,"collapse-filter":true,"search":"","colorGroups":[{"query":"old","color":{"a":1,"rgb":0}}],"alpha":[1,2,3]}`
	if err := os.WriteFile(template, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := Merge(template, BuildColorGroups(sampleAnalysis(), colorscheme.Rainbow, colorscheme.Rainbow))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	out := string(merged)
	for _, fragment := range []string{`"zeta":0.75`, `"collapse-filter":true`, `"search":""`, `"alpha":[1,2,3]`} {
		if !strings.Contains(out, fragment) {
			t.Errorf("merged output lost template fragment %s", fragment)
		}
	}
	if strings.Contains(out, `"query":"old"`) {
		t.Error("old color groups should be replaced")
	}
	if !gjson.ValidBytes(merged) {
		t.Fatal("merged output is not valid JSON")
	}
	if n := gjson.GetBytes(merged, "colorGroups.#").Int(); n != 3 {
		t.Errorf("colorGroups length = %d, want 3", n)
	}
	if q := gjson.GetBytes(merged, "colorGroups.0.query").String(); q != "tag: #python" {
		t.Errorf("first query = %q", q)
	}
}

func TestMergeAddsColorGroupsWhenAbsent(t *testing.T) {
	template := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(template, []byte(`{"nodeSize":1.2}`), 0644); err != nil {
		t.Fatal(err)
	}

	merged, err := Merge(template, BuildColorGroups(sampleAnalysis(), colorscheme.Rainbow, colorscheme.Rainbow))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !gjson.GetBytes(merged, "colorGroups").Exists() {
		t.Error("colorGroups should be added to a template without one")
	}
	if gjson.GetBytes(merged, "nodeSize").Float() != 1.2 {
		t.Error("existing settings must pass through")
	}
}

func TestMergeMissingTemplate(t *testing.T) {
	_, err := Merge(filepath.Join(t.TempDir(), "absent.json"), nil)
	if err == nil {
		t.Fatal("missing template must be fatal")
	}
	var ce *ckcerrors.CkcError
	if !errors.As(err, &ce) || ce.Code != ckcerrors.TemplateMissing {
		t.Errorf("error = %v, want code %s", err, ckcerrors.TemplateMissing)
	}
}

func TestMergeInvalidTemplate(t *testing.T) {
	for _, body := range []string{"not json at all", `[1,2,3]`, `"just a string"`} {
		template := filepath.Join(t.TempDir(), "graph.json")
		if err := os.WriteFile(template, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Merge(template, nil)
		var ce *ckcerrors.CkcError
		if !errors.As(err, &ce) || ce.Code != ckcerrors.TemplateInvalid {
			t.Errorf("template %q: error = %v, want code %s", body, err, ckcerrors.TemplateInvalid)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "graph.json")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(template, []byte(`{"scale":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	groups := BuildColorGroups(sampleAnalysis(), colorscheme.Lava, colorscheme.Lava)
	if err := Write(template, out, groups); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Scale       float64      `json:"scale"`
		ColorGroups []ColorGroup `json:"colorGroups"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if decoded.Scale != 1 || len(decoded.ColorGroups) != 3 {
		t.Errorf("unexpected output: %+v", decoded)
	}
}
