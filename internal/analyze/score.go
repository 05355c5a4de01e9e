package analyze

import (
	"math"
	"strings"
)

// conversationPrefix marks per-conversation grouping tags, which get a
// relevance boost over extracted keywords.
const conversationPrefix = "conv-"

// ScoreInput carries everything the relevance scorer needs for one label.
type ScoreInput struct {
	Label         string
	Count         int
	TotalInSpace  int
	IsFilePattern bool

	// Optional corpus-level rarity weighting. Used only when HasDocFreq
	// is set and TotalDocs > 0.
	HasDocFreq bool
	DocFreq    int
	TotalDocs  int
}

// Score computes the weighted relevance score for a label: normalized
// frequency blended with a shape/origin prior and optional
// inverse-document-frequency weighting. Higher is more relevant.
func Score(in ScoreInput) float64 {
	tf := 0.0
	if in.TotalInSpace > 0 {
		tf = float64(in.Count) / float64(in.TotalInSpace)
	}

	prior := 1.0
	if strings.HasPrefix(in.Label, conversationPrefix) {
		prior *= 1.2
	}
	if in.IsFilePattern {
		// Single-token patterns are inherently broad and preferred
		prior *= 1.5
	} else if len(in.Label) < 4 {
		prior *= 0.5
	} else if len(in.Label) > 8 {
		prior *= 1.1
	}

	if in.HasDocFreq && in.TotalDocs > 0 {
		return tf * math.Log(float64(in.TotalDocs)/float64(1+in.DocFreq)) * prior
	}
	return tf * prior * math.Log(float64(in.Count)+1)
}
