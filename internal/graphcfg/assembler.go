// Package graphcfg assembles the graph visualization configuration: the
// ranked, colorized label selection is merged into a template document,
// replacing only the colorGroups field and round-tripping every other
// template byte unmodified.
package graphcfg

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/aaronsb/claude-knowledge-converter/internal/analyze"
	"github.com/aaronsb/claude-knowledge-converter/internal/colorscheme"
	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
)

// GroupColor is the color of one group; alpha is fixed at 1.
type GroupColor struct {
	A   int `json:"a"`
	RGB int `json:"rgb"`
}

// ColorGroup is one ranked, colorized query/color pair.
type ColorGroup struct {
	Query string     `json:"query"`
	Color GroupColor `json:"color"`
}

// BuildColorGroups converts an analysis outcome into ordered color groups:
// ranked tag-space entries first, then ranked file-pattern entries. Rank
// position is normalized per space, so each space spans its full colormap.
func BuildColorGroups(a *analyze.Analysis, tagScheme, fileScheme colorscheme.Scheme) []ColorGroup {
	groups := make([]ColorGroup, 0, len(a.Tags)+len(a.Files))

	for i, ranked := range a.Tags {
		c := colorscheme.ColorFor(i, len(a.Tags), tagScheme)
		groups = append(groups, ColorGroup{
			Query: fmt.Sprintf("tag: #%s", ranked.Label),
			Color: GroupColor{A: 1, RGB: c.Pack()},
		})
	}

	for i, ranked := range a.Files {
		c := colorscheme.ColorFor(i, len(a.Files), fileScheme)
		groups = append(groups, ColorGroup{
			Query: fmt.Sprintf("file: %s", ranked.Label),
			Color: GroupColor{A: 1, RGB: c.Pack()},
		})
	}

	return groups
}

// Merge loads the template document and replaces exactly its colorGroups
// field with groups. All other fields, their ordering, and formatting pass
// through untouched. A missing or unreadable template is fatal: the
// assembler cannot proceed without a base document structure.
func Merge(templatePath string, groups []ColorGroup) ([]byte, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.TemplateMissing,
			fmt.Sprintf("cannot read graph template %s", templatePath), err)
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ckcerrors.New(ckcerrors.TemplateInvalid,
			fmt.Sprintf("graph template %s is not a JSON object", templatePath), nil)
	}

	merged, err := sjson.SetBytes(data, "colorGroups", groups)
	if err != nil {
		return nil, ckcerrors.New(ckcerrors.InternalError, "failed to merge color groups", err)
	}
	return merged, nil
}

// Write merges the template and writes the result to outPath.
func Write(templatePath, outPath string, groups []ColorGroup) error {
	merged, err := Merge(templatePath, groups)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, merged, 0644)
}
