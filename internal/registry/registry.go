// Package registry accumulates label frequencies for the two label spaces
// (hashtag labels and file-name patterns) together with the origin
// classification of tags. A Registry is an explicit owned state object:
// construction and reset are explicit lifecycle operations, and partial
// registries built by scan workers merge additively.
package registry

import (
	"bufio"
	"os"
	"strings"
)

// TagOrigin classifies how a tag entered the corpus.
type TagOrigin string

const (
	// OriginConversation marks per-conversation grouping tags (conv-* identifiers)
	OriginConversation TagOrigin = "conversation"
	// OriginKeyword marks extracted topical keyword tags
	OriginKeyword TagOrigin = "keyword"
)

// DefaultMinCount is the minimum occurrence count below which a label is
// treated as noise.
const DefaultMinCount = 2

// Registry tracks tag and file-pattern occurrence counts.
type Registry struct {
	tagCounts         map[string]int
	filePatternCounts map[string]int
	conversationTags  map[string]struct{}
	keywordTags       map[string]struct{}
	exclusions        map[string]struct{}
}

// New creates an empty registry with the given exclusion set. The exclusion
// set keys must already be lowercase; LoadExclusions produces such a set.
func New(exclusions map[string]struct{}) *Registry {
	r := &Registry{exclusions: exclusions}
	r.Reset()
	return r
}

// Reset clears all four collections so a corpus can be re-scanned
// idempotently. The exclusion set is immutable for the process lifetime and
// is not touched.
func (r *Registry) Reset() {
	r.tagCounts = make(map[string]int)
	r.filePatternCounts = make(map[string]int)
	r.conversationTags = make(map[string]struct{})
	r.keywordTags = make(map[string]struct{})
}

// RecordTag increments the count for a tag label and records its origin.
// A leading '#' is stripped. A label never belongs to both origin sets:
// conversation membership takes precedence, since conversation tags are
// exempt from exclusion.
func (r *Registry) RecordTag(label string, origin TagOrigin) {
	label = strings.TrimPrefix(label, "#")
	if label == "" {
		return
	}

	if origin == OriginConversation {
		r.conversationTags[label] = struct{}{}
		delete(r.keywordTags, label)
	} else if _, conv := r.conversationTags[label]; !conv {
		r.keywordTags[label] = struct{}{}
	}

	r.tagCounts[label]++
}

// RecordFilePattern increments the count for a file-name pattern.
func (r *Registry) RecordFilePattern(pattern string) {
	if pattern == "" {
		return
	}
	r.filePatternCounts[pattern]++
}

// Merge adds the counts and origin sets of other into r. Counts are
// monotonic and merge-commutative, so partial tables from any partition of
// the corpus combine to the same totals regardless of order.
func (r *Registry) Merge(other *Registry) {
	for label, count := range other.tagCounts {
		r.tagCounts[label] += count
	}
	for pattern, count := range other.filePatternCounts {
		r.filePatternCounts[pattern] += count
	}
	for label := range other.conversationTags {
		r.conversationTags[label] = struct{}{}
		delete(r.keywordTags, label)
	}
	for label := range other.keywordTags {
		if _, conv := r.conversationTags[label]; !conv {
			r.keywordTags[label] = struct{}{}
		}
	}
}

// FilteredTags returns tag labels with count >= minCount, excluding
// keyword-origin labels whose lowercase form is in the exclusion set.
// Conversation-origin labels are never excluded.
func (r *Registry) FilteredTags(minCount int) map[string]int {
	filtered := make(map[string]int)
	for label, count := range r.tagCounts {
		if count < minCount {
			continue
		}
		if r.isExcluded(label) {
			continue
		}
		filtered[label] = count
	}
	return filtered
}

// FilteredFilePatterns returns file patterns with count >= minCount.
// The exclusion set applies only to keyword tags, not file patterns.
func (r *Registry) FilteredFilePatterns(minCount int) map[string]int {
	filtered := make(map[string]int)
	for pattern, count := range r.filePatternCounts {
		if count >= minCount {
			filtered[pattern] = count
		}
	}
	return filtered
}

func (r *Registry) isExcluded(label string) bool {
	if _, conv := r.conversationTags[label]; conv {
		return false
	}
	_, excluded := r.exclusions[strings.ToLower(label)]
	return excluded
}

// IsConversationTag reports whether a label was recorded with conversation origin.
func (r *Registry) IsConversationTag(label string) bool {
	_, ok := r.conversationTags[label]
	return ok
}

// TagCount returns the raw occurrence count for a tag label.
func (r *Registry) TagCount(label string) int {
	return r.tagCounts[label]
}

// UniqueTags returns the number of distinct tag labels observed.
func (r *Registry) UniqueTags() int {
	return len(r.tagCounts)
}

// UniqueFilePatterns returns the number of distinct file patterns observed.
func (r *Registry) UniqueFilePatterns() int {
	return len(r.filePatternCounts)
}

// TagOccurrences returns the sum of all tag counts.
func (r *Registry) TagOccurrences() int {
	total := 0
	for _, c := range r.tagCounts {
		total += c
	}
	return total
}

// FilePatternOccurrences returns the sum of all file-pattern counts.
func (r *Registry) FilePatternOccurrences() int {
	total := 0
	for _, c := range r.filePatternCounts {
		total += c
	}
	return total
}

// ConversationTagCount returns the number of distinct conversation-origin tags.
func (r *Registry) ConversationTagCount() int {
	return len(r.conversationTags)
}

// KeywordTagCount returns the number of distinct keyword-origin tags.
func (r *Registry) KeywordTagCount() int {
	return len(r.keywordTags)
}

// LoadExclusions loads a case-insensitive exclusion set from a
// newline-delimited file. Blank lines and lines beginning with '#' are
// ignored. A missing file yields an empty set, not an error.
func LoadExclusions(path string) (map[string]struct{}, error) {
	exclusions := make(map[string]struct{})

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return exclusions, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exclusions[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return exclusions, nil
}
