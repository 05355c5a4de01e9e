// Package keywords extracts topical keywords from conversation text using
// term-frequency scoring with incremental inverse-document-frequency
// weighting over the corpus processed so far.
package keywords

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxKeywords is the per-document keyword cap.
const DefaultMaxKeywords = 7

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern = regexp.MustCompile("`[^`]+`")
	markdownSymbols   = regexp.MustCompile(`[#*_\[\]()]`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	tokenPattern      = regexp.MustCompile(`[a-z][a-z0-9'-]*`)
)

// Extractor scores candidate keywords by tf-idf. Document frequencies
// accumulate across UpdateCorpusStats calls, refining idf as more of the
// corpus is processed.
type Extractor struct {
	stopWords map[string]struct{}
	docFreq   map[string]int
	totalDocs int
}

// NewExtractor creates an extractor with the default stop-word list.
func NewExtractor() *Extractor {
	return &Extractor{
		stopWords: defaultStopWords(),
		docFreq:   make(map[string]int),
	}
}

// tokenize strips markdown, code, and URLs, lowercases, and returns the
// tokens worth scoring.
func (e *Extractor) tokenize(text string) []string {
	text = codeBlockPattern.ReplaceAllString(text, "")
	text = inlineCodePattern.ReplaceAllString(text, "")
	text = markdownSymbols.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)

	var tokens []string
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := e.stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Extract returns the top maxKeywords keywords of text by tf-idf score.
func (e *Extractor) Extract(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	termFreq := make(map[string]int)
	for _, token := range tokens {
		termFreq[token]++
	}

	type scored struct {
		term  string
		score float64
	}
	scores := make([]scored, 0, len(termFreq))
	for term, freq := range termFreq {
		tf := float64(freq) / float64(len(tokens))
		idf := math.Log(math.Max(2, float64(e.totalDocs)/float64(1+e.docFreq[term])))
		scores = append(scores, scored{term: term, score: tf * idf})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].term < scores[j].term
	})

	if len(scores) > maxKeywords {
		scores = scores[:maxKeywords]
	}
	keywords := make([]string, len(scores))
	for i, s := range scores {
		keywords[i] = s.term
	}
	return keywords
}

// UpdateCorpusStats folds one document's distinct terms into the document
// frequency table.
func (e *Extractor) UpdateCorpusStats(text string) {
	seen := make(map[string]struct{})
	for _, token := range e.tokenize(text) {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		e.docFreq[token]++
	}
	e.totalDocs++
}

// TotalDocs returns how many documents have fed the corpus statistics.
func (e *Extractor) TotalDocs() int {
	return e.totalDocs
}
